package models

import "fmt"

// SeniorityLevel of the role being hired for.
type SeniorityLevel string

const (
	SeniorityIntern   SeniorityLevel = "Intern"
	SeniorityJunior   SeniorityLevel = "Junior"
	SeniorityMidLevel SeniorityLevel = "Mid-Level"
	SenioritySenior   SeniorityLevel = "Senior"
	SeniorityLead     SeniorityLevel = "Lead"
	SeniorityManager  SeniorityLevel = "Manager"
)

// PriorityWeights holds one weight per scoring category, each in [0,10].
type PriorityWeights struct {
	HardSkills     int `json:"hard_skills_weight" bson:"hard_skills_weight"`
	Experience     int `json:"experience_weight" bson:"experience_weight"`
	Education      int `json:"education_weight" bson:"education_weight"`
	SoftSkills     int `json:"soft_skills_weight" bson:"soft_skills_weight"`
	UniversityTier int `json:"university_tier_weight" bson:"university_tier_weight"`
	MilitaryStatus int `json:"military_status_weight" bson:"military_status_weight"`
}

// Total returns the sum of all category weights.
func (w PriorityWeights) Total() int {
	return w.HardSkills + w.Experience + w.Education + w.SoftSkills + w.UniversityTier + w.MilitaryStatus
}

// Validate checks the [0,10] bound per weight and that at least one
// weight is positive. A zero total would make the weighted average
// undefined downstream.
func (w PriorityWeights) Validate() error {
	for name, v := range map[string]int{
		"hard_skills_weight":     w.HardSkills,
		"experience_weight":      w.Experience,
		"education_weight":       w.Education,
		"soft_skills_weight":     w.SoftSkills,
		"university_tier_weight": w.UniversityTier,
		"military_status_weight": w.MilitaryStatus,
	} {
		if v < 0 || v > 10 {
			return fmt.Errorf("%s must be between 0 and 10, got %d", name, v)
		}
	}
	if w.Total() == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	return nil
}

// HiringRequirements is gathered once per session by the interview agent
// and immutable afterwards.
type HiringRequirements struct {
	RoleTitle               string          `json:"role_title" bson:"role_title"`
	Seniority               SeniorityLevel  `json:"seniority" bson:"seniority"`
	MilitaryServiceRequired bool            `json:"military_service_required" bson:"military_service_required"`
	EssentialHardSkills     []string        `json:"essential_hard_skills" bson:"essential_hard_skills"`
	NiceToHaveSkills        []string        `json:"nice_to_have_skills,omitempty" bson:"nice_to_have_skills,omitempty"`
	SoftSkills              []string        `json:"soft_skills,omitempty" bson:"soft_skills,omitempty"`
	MinExperienceYears      int             `json:"min_experience_years" bson:"min_experience_years"`
	EducationLevel          string          `json:"education_level,omitempty" bson:"education_level,omitempty"`
	UniversityTier          int             `json:"university_tier" bson:"university_tier"`
	Weights                 PriorityWeights `json:"weights" bson:"weights"`
}

// Validate rejects requirement objects the scoring stage cannot use.
func (h *HiringRequirements) Validate() error {
	if h.RoleTitle == "" {
		return fmt.Errorf("role_title is required")
	}
	if h.Seniority == "" {
		return fmt.Errorf("seniority is required")
	}
	if len(h.EssentialHardSkills) == 0 {
		return fmt.Errorf("essential_hard_skills must not be empty")
	}
	if h.MinExperienceYears < 0 {
		return fmt.Errorf("min_experience_years must not be negative")
	}
	return h.Weights.Validate()
}
