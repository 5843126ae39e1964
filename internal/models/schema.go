package models

import "google.golang.org/genai"

// genai response/parameter schemas for schema-constrained generation and
// tool calling. Kept next to the record types they mirror.

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func integer(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger, Description: desc}
}

func strList(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: desc}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func list(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

// ResumeSchema is the target shape for the structuring stage.
func ResumeSchema() *genai.Schema {
	personalInfo := object(map[string]*genai.Schema{
		"full_name":               str("Candidate's full legal name."),
		"email":                   str("Primary email address."),
		"phone_number":            str("Mobile or landline number."),
		"location":                str("City and country."),
		"linkedin_url":            str(""),
		"github_url":              str(""),
		"website":                 str(""),
		"date_of_birth":           str("Date of birth as written in the resume."),
		"age":                     integer("Age in years."),
		"professional_summary":    str("Brief intro or objective statement."),
		"marital_status":          str("Single or Married."),
		"military_service_status": str("Completed, Exempted, Educational Exemption or Subject to Service."),
		"gender":                  str(""),
	})

	skills := object(map[string]*genai.Schema{
		"hard_skills": strList("Technical tools, frameworks, programming languages."),
		"soft_skills": strList("Interpersonal skills like leadership or communication."),
		"languages": list(object(map[string]*genai.Schema{
			"language": str(""),
			"level":    str("Native, Fluent, Intermediate, ..."),
		})),
	})

	education := list(object(map[string]*genai.Schema{
		"degree":          str("B.Sc, M.Sc, PhD, Diploma, ..."),
		"major":           str("Field of study."),
		"school":          str("University or institution name."),
		"university_tier": integer("Prestige rank of the university, 1 to 4. Omit if foreign or unknown."),
		"location":        str(""),
		"start_date":      str(""),
		"end_date":        str(""),
		"gpa":             str("Grade point average as written."),
	}))

	experience := list(object(map[string]*genai.Schema{
		"job_title":        str(""),
		"company_name":     str(""),
		"employment_type":  str("Full-time, Part-time, Contract, Remote."),
		"location":         str(""),
		"company_tier":     str("Inferred: Big Tech, Startup, Enterprise, Gov."),
		"start_date":       str(""),
		"end_date":         str(""),
		"extracted_skills": strList("Hard skills mentioned in this specific role."),
		"technologies_used": strList("Tech stack used in this role."),
	}))

	return object(map[string]*genai.Schema{
		"personal_info": personalInfo,
		"skills":        skills,
		"education":     education,
		"work_experience": experience,
		"certifications": list(object(map[string]*genai.Schema{
			"certificate_name": str(""),
			"issuer":           str(""),
			"issue_date":       str(""),
		})),
		"projects": list(object(map[string]*genai.Schema{
			"project_name": str(""),
			"description":  str(""),
			"technologies": strList(""),
			"github_repo":  str(""),
			"start_date":   str(""),
			"end_date":     str(""),
		})),
		"publications": list(object(map[string]*genai.Schema{
			"title":                 str(""),
			"publication_date":      str(""),
			"journal_or_conference": str(""),
		})),
		"resume_language": str("Language of the original resume."),
	})
}

// EvaluationSchema is the target shape for the scoring stage.
func EvaluationSchema() *genai.Schema {
	category := object(map[string]*genai.Schema{
		"score":     integer("Score from 0 to 100."),
		"reasoning": str("Short explanation."),
	}, "score", "reasoning")

	return object(map[string]*genai.Schema{
		"hard_skills_score":     category,
		"experience_score":      category,
		"education_score":       category,
		"university_tier_score": category,
		"soft_skills_score":     category,
		"military_status_score": category,
		"summary_explanation":   str("Overall judgement in two or three sentences."),
	},
		"hard_skills_score", "experience_score", "education_score",
		"university_tier_score", "soft_skills_score", "military_status_score",
		"summary_explanation",
	)
}

// WeightsSchema describes the six category weights for the interview tool.
func WeightsSchema() *genai.Schema {
	weight := integer("Importance from 0 to 10.")
	return object(map[string]*genai.Schema{
		"hard_skills_weight":     weight,
		"experience_weight":      weight,
		"education_weight":       weight,
		"soft_skills_weight":     weight,
		"university_tier_weight": weight,
		"military_status_weight": weight,
	},
		"hard_skills_weight", "experience_weight", "education_weight",
		"soft_skills_weight", "university_tier_weight", "military_status_weight",
	)
}

// HiringRequirementsSchema describes the hiring interview submission tool.
func HiringRequirementsSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"role_title": str("Title of the role being hired for."),
		"seniority": {
			Type: genai.TypeString,
			Enum: []string{"Intern", "Junior", "Mid-Level", "Senior", "Lead", "Manager"},
		},
		"military_service_required": {Type: genai.TypeBoolean},
		"essential_hard_skills":     strList("Hard skills the candidate must have."),
		"nice_to_have_skills":       strList("Hard skills that are a plus."),
		"soft_skills":               strList("Desired soft skills."),
		"min_experience_years":      integer("Minimum years of relevant experience."),
		"education_level":           str("Minimum education level, if any."),
		"university_tier":           integer("Minimum acceptable university tier, 1 to 4."),
		"weights":                   WeightsSchema(),
	},
		"role_title", "seniority", "military_service_required",
		"essential_hard_skills", "min_experience_years", "university_tier", "weights",
	)
}

// JDRequestSchema describes the JD interview submission tool.
func JDRequestSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"job_title": str(""),
		"seniority_level": {
			Type: genai.TypeString,
			Enum: []string{"Intern", "Junior", "Mid-Level", "Senior", "Lead", "Manager"},
		},
		"location": str("City, or 'Remote'."),
		"education_level": {
			Type: genai.TypeString,
			Enum: []string{"Diploma", "Bachelor", "Master", "PhD", "Any"},
		},
		"study_fields": strList("Acceptable fields of study."),
		"work_mode": {
			Type: genai.TypeString,
			Enum: []string{"On-site", "Remote", "Hybrid"},
		},
		"employment_type": {
			Type: genai.TypeString,
			Enum: []string{"Full-time", "Part-time", "Contract", "Internship"},
		},
		"military_service": {
			Type: genai.TypeString,
			Enum: []string{"Completed or Exempted", "Not a Blocker", "Irrelevant"},
		},
		"min_experience_years": integer(""),
		"days_and_hours":       str("Working schedule."),
		"hard_skills":          strList(""),
		"soft_skills":          strList(""),
		"responsibilities":     strList(""),
		"target_language":      str("Language the JD should be written in."),
		"benefits":             strList(""),
		"salary": object(map[string]*genai.Schema{
			"min":      integer(""),
			"max":      integer(""),
			"currency": str(""),
		}),
		"advantage_skills": strList(""),
	},
		"job_title", "seniority_level", "location", "education_level", "study_fields",
		"work_mode", "employment_type", "military_service", "min_experience_years",
		"days_and_hours", "hard_skills", "soft_skills", "responsibilities",
		"target_language", "benefits",
	)
}

// RouterSchema describes the intent routing tool.
func RouterSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"path": {
			Type:        genai.TypeString,
			Enum:        []string{"REVIEW", "WRITE", "COMPARE"},
			Description: "REVIEW to score resumes, WRITE to author a job description, COMPARE to compare a few resumes.",
		},
	}, "path")
}
