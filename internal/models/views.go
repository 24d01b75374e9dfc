package models

// ProfileView is the read-only part of a freelancer profile used for matching.
type ProfileView interface {
	SkillNames() []string
	Summary() string
}

// JobView is the read-only part of a job posting used for matching.
type JobView interface {
	JobID() string
	JobTitle() string
	JobDescription() string
	RequiredSkillNames() []string
	Active() bool
	// Filled reports whether at least one application was accepted.
	Filled() bool
}

type ApplicationView interface {
	ApplicationID() string
	Applicant() ProfileView
}
