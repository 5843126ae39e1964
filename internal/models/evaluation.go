package models

import "math"

// CategoryScore is one model-judged score plus its reasoning.
type CategoryScore struct {
	Score     int    `json:"score" bson:"score"`
	Reasoning string `json:"reasoning" bson:"reasoning"`
}

// ResumeEvaluation holds the six category scores returned by the model.
// FinalWeightedScore is computed in code, never trusted from the model.
type ResumeEvaluation struct {
	HardSkillsScore     CategoryScore `json:"hard_skills_score" bson:"hard_skills_score"`
	ExperienceScore     CategoryScore `json:"experience_score" bson:"experience_score"`
	EducationScore      CategoryScore `json:"education_score" bson:"education_score"`
	UniversityTierScore CategoryScore `json:"university_tier_score" bson:"university_tier_score"`
	SoftSkillsScore     CategoryScore `json:"soft_skills_score" bson:"soft_skills_score"`
	MilitaryStatusScore CategoryScore `json:"military_status_score" bson:"military_status_score"`

	FinalWeightedScore float64 `json:"final_weighted_score" bson:"final_weighted_score"`
	SummaryExplanation string  `json:"summary_explanation" bson:"summary_explanation"`
}

// FinalWeightedScore computes round(sum(score*weight)/sum(weight), 2).
// A zero total weight yields 0 rather than a division by zero.
func FinalWeightedScore(e *ResumeEvaluation, w PriorityWeights) float64 {
	total := w.Total()
	if total == 0 {
		return 0
	}

	sum := float64(e.HardSkillsScore.Score*w.HardSkills) +
		float64(e.ExperienceScore.Score*w.Experience) +
		float64(e.EducationScore.Score*w.Education) +
		float64(e.SoftSkillsScore.Score*w.SoftSkills) +
		float64(e.UniversityTierScore.Score*w.UniversityTier) +
		float64(e.MilitaryStatusScore.Score*w.MilitaryStatus)

	return math.Round(sum/float64(total)*100) / 100
}

// ScoredResume is the unit persisted to the document store. FinalScore
// duplicates the evaluation's weighted score so the store can sort on an
// indexed top-level field.
type ScoredResume struct {
	Resume     ResumeData       `json:"resume" bson:"resume"`
	Evaluation ResumeEvaluation `json:"evaluation" bson:"evaluation"`
	FinalScore float64          `json:"final_score" bson:"final_score"`
	SourceFile string           `json:"_source_file" bson:"_source_file"`
}
