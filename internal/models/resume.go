package models

// Structured resume record produced by the structuring stage. Extraction
// from free text is inherently partial, so every field is optional; only
// SourceFile is guaranteed once the record leaves the pipeline.

type PersonalInfo struct {
	FullName              string `json:"full_name,omitempty" bson:"full_name,omitempty"`
	Email                 string `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber           string `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Location              string `json:"location,omitempty" bson:"location,omitempty"`
	LinkedinURL           string `json:"linkedin_url,omitempty" bson:"linkedin_url,omitempty"`
	GithubURL             string `json:"github_url,omitempty" bson:"github_url,omitempty"`
	Website               string `json:"website,omitempty" bson:"website,omitempty"`
	DateOfBirth           string `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Age                   int    `json:"age,omitempty" bson:"age,omitempty"`
	ProfessionalSummary   string `json:"professional_summary,omitempty" bson:"professional_summary,omitempty"`
	MaritalStatus         string `json:"marital_status,omitempty" bson:"marital_status,omitempty"`
	MilitaryServiceStatus string `json:"military_service_status,omitempty" bson:"military_service_status,omitempty"`
	Gender                string `json:"gender,omitempty" bson:"gender,omitempty"`
}

type LanguageSkill struct {
	Language string `json:"language,omitempty" bson:"language,omitempty"`
	Level    string `json:"level,omitempty" bson:"level,omitempty"`
}

type Skills struct {
	HardSkills []string        `json:"hard_skills,omitempty" bson:"hard_skills,omitempty"`
	SoftSkills []string        `json:"soft_skills,omitempty" bson:"soft_skills,omitempty"`
	Languages  []LanguageSkill `json:"languages,omitempty" bson:"languages,omitempty"`
}

type EducationEntry struct {
	Degree         string `json:"degree,omitempty" bson:"degree,omitempty"`
	Major          string `json:"major,omitempty" bson:"major,omitempty"`
	School         string `json:"school,omitempty" bson:"school,omitempty"`
	UniversityTier int    `json:"university_tier,omitempty" bson:"university_tier,omitempty"`
	Location       string `json:"location,omitempty" bson:"location,omitempty"`
	StartDate      string `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty" bson:"end_date,omitempty"`
	GPA            string `json:"gpa,omitempty" bson:"gpa,omitempty"`

	// DurationMonths is computed by Enrich, never by the model.
	DurationMonths int `json:"duration_months,omitempty" bson:"duration_months,omitempty"`
}

type ExperienceEntry struct {
	JobTitle        string   `json:"job_title,omitempty" bson:"job_title,omitempty"`
	CompanyName     string   `json:"company_name,omitempty" bson:"company_name,omitempty"`
	EmploymentType  string   `json:"employment_type,omitempty" bson:"employment_type,omitempty"`
	Location        string   `json:"location,omitempty" bson:"location,omitempty"`
	CompanyTier     string   `json:"company_tier,omitempty" bson:"company_tier,omitempty"`
	StartDate       string   `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate         string   `json:"end_date,omitempty" bson:"end_date,omitempty"`
	ExtractedSkills []string `json:"extracted_skills,omitempty" bson:"extracted_skills,omitempty"`
	Technologies    []string `json:"technologies_used,omitempty" bson:"technologies_used,omitempty"`

	// DurationMonths is computed by Enrich, never by the model.
	DurationMonths int `json:"duration_months,omitempty" bson:"duration_months,omitempty"`
}

type Certification struct {
	CertificateName string `json:"certificate_name,omitempty" bson:"certificate_name,omitempty"`
	Issuer          string `json:"issuer,omitempty" bson:"issuer,omitempty"`
	IssueDate       string `json:"issue_date,omitempty" bson:"issue_date,omitempty"`
}

type Project struct {
	ProjectName  string   `json:"project_name,omitempty" bson:"project_name,omitempty"`
	Description  string   `json:"description,omitempty" bson:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty" bson:"technologies,omitempty"`
	GithubRepo   string   `json:"github_repo,omitempty" bson:"github_repo,omitempty"`
	StartDate    string   `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty" bson:"end_date,omitempty"`
}

type Publication struct {
	Title                string `json:"title,omitempty" bson:"title,omitempty"`
	PublicationDate      string `json:"publication_date,omitempty" bson:"publication_date,omitempty"`
	JournalOrConference  string `json:"journal_or_conference,omitempty" bson:"journal_or_conference,omitempty"`
}

// ResumeData is the root of the parsed resume.
type ResumeData struct {
	PersonalInfo   *PersonalInfo     `json:"personal_info,omitempty" bson:"personal_info,omitempty"`
	Skills         *Skills           `json:"skills,omitempty" bson:"skills,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty" bson:"education,omitempty"`
	WorkExperience []ExperienceEntry `json:"work_experience,omitempty" bson:"work_experience,omitempty"`
	Certifications []Certification   `json:"certifications,omitempty" bson:"certifications,omitempty"`
	Projects       []Project         `json:"projects,omitempty" bson:"projects,omitempty"`
	Publications   []Publication     `json:"publications,omitempty" bson:"publications,omitempty"`
	ResumeLanguage string            `json:"resume_language,omitempty" bson:"resume_language,omitempty"`

	// SourceFile is the object-store key the record was extracted from.
	// Stamped by the structuring worker, never by the model.
	SourceFile string `json:"_source_file" bson:"_source_file"`
}

// Email returns the candidate's email, if extracted.
func (r *ResumeData) Email() string {
	if r == nil || r.PersonalInfo == nil {
		return ""
	}
	return r.PersonalInfo.Email
}
