// Package types provides type definitions for structured data used throughout the resume wizard.
//
//nolint:revive // types is a standard Go package name pattern
package types

// BasicInfo holds the scalar contact section of a profile.
// Only FullName, Email and Phone are required for completion.
type BasicInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Headline string `json:"headline,omitempty"`
}

// WorkExperience is one entry of the experience list.
// EndDate is nil while IsCurrent is true.
type WorkExperience struct {
	JobTitle     string  `json:"job_title"`
	CompanyName  string  `json:"company_name"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	IsCurrent    bool    `json:"is_current"`
	Description  string  `json:"description"`
	DisplayOrder int     `json:"display_order"`
}

// ProjectStatus is the lifecycle state of a project entry.
type ProjectStatus string

const (
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusFinished   ProjectStatus = "finished"
)

// Project is one entry of the projects list.
type Project struct {
	ProjectTitle string        `json:"project_title"`
	Client       string        `json:"client"`
	Status       ProjectStatus `json:"status"`
	StartDate    string        `json:"start_date"`
	EndDate      *string       `json:"end_date"`
	Description  string        `json:"description"`
	DisplayOrder int           `json:"display_order"`
}

// Education is one entry of the education list. Dates are "YYYY-MM".
type Education struct {
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// Skill is one entry of the skills list.
type Skill struct {
	SkillName    string `json:"skill_name"`
	Category     string `json:"category,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// ProfileSummary is the read-only snapshot handed off when the wizard completes.
type ProfileSummary struct {
	BasicInfo        BasicInfo `json:"basic_info"`
	ExperiencesCount int       `json:"experiences_count"`
	ProjectsCount    int       `json:"projects_count"`
	EducationCount   int       `json:"education_count"`
	SkillsCount      int       `json:"skills_count"`
}

// ResumeFile describes an accepted upload. The content itself lives in a blob store under Key.
type ResumeFile struct {
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
