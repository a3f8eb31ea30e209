package listedit

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

const (
	experienceDescriptionMax = 2000
	projectDescriptionMax    = 1000
)

// ExperienceSchema describes work experience entries.
var ExperienceSchema = &Schema[types.WorkExperience]{
	Entity: "experience",
	Fields: []Field[types.WorkExperience]{
		TextField("job_title", 0, func(r *types.WorkExperience) *string { return &r.JobTitle }),
		TextField("company_name", 0, func(r *types.WorkExperience) *string { return &r.CompanyName }),
		DateField("start_date", func(r *types.WorkExperience) *string { return &r.StartDate }),
		NullableDateField("end_date", func(r *types.WorkExperience) **string { return &r.EndDate }),
		BoolField("is_current", func(r *types.WorkExperience) *bool { return &r.IsCurrent }),
		TextField("description", experienceDescriptionMax, func(r *types.WorkExperience) *string { return &r.Description }),
	},
	Required: []string{"job_title", "company_name"},
	Defaults: func() types.WorkExperience { return types.WorkExperience{} },
	Order:    func(r *types.WorkExperience) *int { return &r.DisplayOrder },
	Normalize: func(r *types.WorkExperience) {
		if r.IsCurrent {
			r.EndDate = nil
		}
	},
}

// ProjectSchema describes project entries.
var ProjectSchema = &Schema[types.Project]{
	Entity: "projects",
	Fields: []Field[types.Project]{
		TextField("project_title", 0, func(r *types.Project) *string { return &r.ProjectTitle }),
		TextField("client", 0, func(r *types.Project) *string { return &r.Client }),
		EnumField("status",
			[]string{string(types.ProjectStatusInProgress), string(types.ProjectStatusFinished)},
			func(r *types.Project) string { return string(r.Status) },
			func(r *types.Project, v string) { r.Status = types.ProjectStatus(v) },
		),
		DateField("start_date", func(r *types.Project) *string { return &r.StartDate }),
		NullableDateField("end_date", func(r *types.Project) **string { return &r.EndDate }),
		TextField("description", projectDescriptionMax, func(r *types.Project) *string { return &r.Description }),
	},
	Required: []string{"project_title", "client"},
	Defaults: func() types.Project { return types.Project{Status: types.ProjectStatusInProgress} },
	Order:    func(r *types.Project) *int { return &r.DisplayOrder },
}

// EducationSchema describes education entries.
var EducationSchema = &Schema[types.Education]{
	Entity: "education",
	Fields: []Field[types.Education]{
		TextField("degree", 0, func(r *types.Education) *string { return &r.Degree }),
		TextField("institution", 0, func(r *types.Education) *string { return &r.Institution }),
		TextField("field_of_study", 0, func(r *types.Education) *string { return &r.FieldOfStudy }),
		DateField("start_date", func(r *types.Education) *string { return &r.StartDate }),
		DateField("end_date", func(r *types.Education) *string { return &r.EndDate }),
	},
	Required: []string{"degree", "institution"},
	Defaults: func() types.Education { return types.Education{} },
	Order:    func(r *types.Education) *int { return &r.DisplayOrder },
}

// SkillSchema describes skill entries.
var SkillSchema = &Schema[types.Skill]{
	Entity: "skills",
	Fields: []Field[types.Skill]{
		TextField("skill_name", 0, func(r *types.Skill) *string { return &r.SkillName }),
		TextField("category", 0, func(r *types.Skill) *string { return &r.Category }),
	},
	Required: []string{"skill_name"},
	Defaults: func() types.Skill { return types.Skill{} },
	Order:    func(r *types.Skill) *int { return &r.DisplayOrder },
}

// BasicInfoSchema describes the scalar basic info record. It has no display order.
var BasicInfoSchema = &Schema[types.BasicInfo]{
	Entity: "basic",
	Fields: []Field[types.BasicInfo]{
		TextField("full_name", 0, func(r *types.BasicInfo) *string { return &r.FullName }),
		TextField("email", 0, func(r *types.BasicInfo) *string { return &r.Email }),
		TextField("phone", 0, func(r *types.BasicInfo) *string { return &r.Phone }),
		TextField("location", 0, func(r *types.BasicInfo) *string { return &r.Location }),
		TextField("headline", 0, func(r *types.BasicInfo) *string { return &r.Headline }),
	},
	Required: []string{"full_name", "email", "phone"},
	Defaults: func() types.BasicInfo { return types.BasicInfo{} },
}

var (
	Experiences = New(ExperienceSchema)
	Projects    = New(ProjectSchema)
	Educations  = New(EducationSchema)
	Skills      = New(SkillSchema)
)

var skillSeparator = regexp.MustCompile(`[,\n]`)

// SplitSkills splits text on commas and newlines, trimming and dropping empty names.
func SplitSkills(text string) []string {
	var names []string
	for _, part := range skillSeparator.Split(text, -1) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// AppendSkills appends one skill per name with display_order continuing from len(list).
func AppendSkills(list []types.Skill, names []string) []types.Skill {
	out := make([]types.Skill, len(list), len(list)+len(names))
	copy(out, list)
	for i, name := range names {
		out = append(out, types.Skill{SkillName: name, DisplayOrder: len(list) + i})
	}
	return out
}
