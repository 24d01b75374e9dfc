package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationDeclined ApplicationStatus = "DECLINED"
)

type Skill struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"type:varchar(100);uniqueIndex" json:"name"`
}

func (Skill) TableName() string {
	return "skills"
}

type Freelancer struct {
	UserID         uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	FirstName      string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string    `gorm:"type:varchar(100)" json:"last_name"`
	Email          string    `gorm:"type:varchar(254)" json:"email"`
	PhoneNumber    string    `gorm:"type:varchar(25)" json:"phone_number"`
	ProfileSummary string    `gorm:"type:text" json:"profile_summary"`
	ResumePath     string    `gorm:"type:text" json:"-"`
	Skills         []Skill   `gorm:"many2many:freelancer_skills;joinForeignKey:FreelancerUserID" json:"skills"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Freelancer) TableName() string {
	return "freelancers"
}

func (f Freelancer) SkillNames() []string {
	return skillNames(f.Skills)
}

func (f Freelancer) Summary() string {
	return f.ProfileSummary
}

type Job struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title          string        `gorm:"type:varchar(100)" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	Location       string        `gorm:"type:varchar(100)" json:"location"`
	IsActive       bool          `gorm:"not null;default:true" json:"is_active"`
	RequiredSkills []Skill       `gorm:"many2many:job_required_skills" json:"required_skills"`
	Applications   []Application `gorm:"foreignKey:JobID" json:"-"`
	PostedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"posted_at"`
	UpdatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j Job) JobID() string {
	return j.ID.String()
}

func (j Job) JobTitle() string {
	return j.Title
}

func (j Job) JobDescription() string {
	return j.Description
}

func (j Job) RequiredSkillNames() []string {
	return skillNames(j.RequiredSkills)
}

func (j Job) Active() bool {
	return j.IsActive
}

func (j Job) Filled() bool {
	for _, app := range j.Applications {
		if app.Status == ApplicationAccepted {
			return true
		}
	}
	return false
}

type Application struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_id"`
	FreelancerUserID uuid.UUID         `gorm:"type:uuid;not null" json:"freelancer_id"`
	Freelancer       Freelancer        `gorm:"foreignKey:FreelancerUserID;references:UserID" json:"-"`
	Status           ApplicationStatus `gorm:"type:varchar(10);not null;default:'PENDING'" json:"status"`
	AppliedAt        time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"applied_at"`
}

func (Application) TableName() string {
	return "applications"
}

func (a Application) ApplicationID() string {
	return a.ID.String()
}

func (a Application) Applicant() ProfileView {
	return a.Freelancer
}

func skillNames(skills []Skill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}
