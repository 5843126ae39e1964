package models

import "fmt"

type EducationLevel string

const (
	EducationDiploma  EducationLevel = "Diploma"
	EducationBachelor EducationLevel = "Bachelor"
	EducationMaster   EducationLevel = "Master"
	EducationPhD      EducationLevel = "PhD"
	EducationAny      EducationLevel = "Any"
)

type WorkMode string

const (
	WorkModeOnsite WorkMode = "On-site"
	WorkModeRemote WorkMode = "Remote"
	WorkModeHybrid WorkMode = "Hybrid"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "Full-time"
	EmploymentPartTime EmploymentType = "Part-time"
	EmploymentContract EmploymentType = "Contract"
	EmploymentIntern   EmploymentType = "Internship"
)

type MilitaryServiceRequirement string

const (
	MilitaryRequired   MilitaryServiceRequirement = "Completed or Exempted"
	MilitaryNotBlocked MilitaryServiceRequirement = "Not a Blocker"
	MilitaryIrrelevant MilitaryServiceRequirement = "Irrelevant"
)

type SalaryRange struct {
	Min      int    `json:"min,omitempty" bson:"min,omitempty"`
	Max      int    `json:"max,omitempty" bson:"max,omitempty"`
	Currency string `json:"currency,omitempty" bson:"currency,omitempty"`
}

// JobDescriptionRequest is gathered by the JD interview agent and fed to
// the one-shot writer step.
type JobDescriptionRequest struct {
	JobTitle           string                     `json:"job_title" bson:"job_title"`
	SeniorityLevel     SeniorityLevel             `json:"seniority_level" bson:"seniority_level"`
	Location           string                     `json:"location" bson:"location"`
	EducationLevel     EducationLevel             `json:"education_level" bson:"education_level"`
	StudyFields        []string                   `json:"study_fields" bson:"study_fields"`
	WorkMode           WorkMode                   `json:"work_mode" bson:"work_mode"`
	EmploymentType     EmploymentType             `json:"employment_type" bson:"employment_type"`
	MilitaryService    MilitaryServiceRequirement `json:"military_service" bson:"military_service"`
	MinExperienceYears int                        `json:"min_experience_years" bson:"min_experience_years"`
	DaysAndHours       string                     `json:"days_and_hours" bson:"days_and_hours"`
	HardSkills         []string                   `json:"hard_skills" bson:"hard_skills"`
	SoftSkills         []string                   `json:"soft_skills" bson:"soft_skills"`
	Responsibilities   []string                   `json:"responsibilities" bson:"responsibilities"`
	TargetLanguage     string                     `json:"target_language" bson:"target_language"`
	Benefits           []string                   `json:"benefits" bson:"benefits"`
	Salary             *SalaryRange               `json:"salary,omitempty" bson:"salary,omitempty"`
	AdvantageSkills    []string                   `json:"advantage_skills,omitempty" bson:"advantage_skills,omitempty"`
}

func (j *JobDescriptionRequest) Validate() error {
	if j.JobTitle == "" {
		return fmt.Errorf("job_title is required")
	}
	if j.SeniorityLevel == "" {
		return fmt.Errorf("seniority_level is required")
	}
	if len(j.HardSkills) == 0 {
		return fmt.Errorf("hard_skills must not be empty")
	}
	if j.MinExperienceYears < 0 {
		return fmt.Errorf("min_experience_years must not be negative")
	}
	return nil
}
