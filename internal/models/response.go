package models

type ParseResumeResponse struct {
	Success bool      `json:"success"`
	Data    EntitySet `json:"data"`
}

type ATSScoreRequest struct {
	FreelancerID string `json:"freelancer_id" validate:"required,uuid"`
}

type ATSScoreResponse struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
}

type RecommendedJob struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

type RankedApplicant struct {
	ApplicationID string            `json:"application_id"`
	FreelancerID  string            `json:"freelancer_id"`
	Name          string            `json:"name"`
	Status        ApplicationStatus `json:"status"`
	MatchScore    float64           `json:"match_score"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
