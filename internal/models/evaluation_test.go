package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func evalWithScores(hard, exp, edu, tier, soft, military int) *ResumeEvaluation {
	return &ResumeEvaluation{
		HardSkillsScore:     CategoryScore{Score: hard},
		ExperienceScore:     CategoryScore{Score: exp},
		EducationScore:      CategoryScore{Score: edu},
		UniversityTierScore: CategoryScore{Score: tier},
		SoftSkillsScore:     CategoryScore{Score: soft},
		MilitaryStatusScore: CategoryScore{Score: military},
	}
}

func TestFinalWeightedScoreEqualWeights(t *testing.T) {
	e := evalWithScores(60, 70, 80, 50, 60, 70)
	w := PriorityWeights{HardSkills: 1, Experience: 1, Education: 1, SoftSkills: 1, UniversityTier: 1, MilitaryStatus: 1}

	assert.Equal(t, 65.0, FinalWeightedScore(e, w))
}

func TestFinalWeightedScoreWeightedScenario(t *testing.T) {
	// hard 80 at weight 10, experience 60 at 5, tier 40 at 5:
	// (800 + 300 + 200) / 20 = 65.0
	e := evalWithScores(80, 60, 0, 40, 0, 0)
	w := PriorityWeights{HardSkills: 10, Experience: 5, UniversityTier: 5}

	assert.Equal(t, 65.0, FinalWeightedScore(e, w))
}

func TestFinalWeightedScoreRoundsToTwoDecimals(t *testing.T) {
	// (75*3 + 80*4) / 7 = 77.857142...
	e := evalWithScores(75, 80, 0, 0, 0, 0)
	w := PriorityWeights{HardSkills: 3, Experience: 4}

	assert.Equal(t, 77.86, FinalWeightedScore(e, w))
}

func TestFinalWeightedScoreIgnoresZeroWeightCategories(t *testing.T) {
	e := evalWithScores(90, 10, 10, 10, 10, 10)
	w := PriorityWeights{HardSkills: 5}

	assert.Equal(t, 90.0, FinalWeightedScore(e, w))
}

func TestFinalWeightedScoreZeroTotalWeight(t *testing.T) {
	e := evalWithScores(90, 90, 90, 90, 90, 90)

	assert.Equal(t, 0.0, FinalWeightedScore(e, PriorityWeights{}))
}

func TestPriorityWeightsValidate(t *testing.T) {
	valid := PriorityWeights{HardSkills: 5, Experience: 3}
	assert.NoError(t, valid.Validate())

	assert.Error(t, PriorityWeights{}.Validate(), "all-zero weights are unusable")
	assert.Error(t, PriorityWeights{HardSkills: 11}.Validate())
	assert.Error(t, PriorityWeights{HardSkills: -1, Experience: 5}.Validate())
}

func TestHiringRequirementsValidate(t *testing.T) {
	reqs := &HiringRequirements{
		RoleTitle:           "Backend Engineer",
		Seniority:           SenioritySenior,
		EssentialHardSkills: []string{"Go"},
		MinExperienceYears:  3,
		Weights:             PriorityWeights{HardSkills: 5, Experience: 4},
	}
	assert.NoError(t, reqs.Validate())

	missingTitle := *reqs
	missingTitle.RoleTitle = ""
	assert.Error(t, missingTitle.Validate())

	noSkills := *reqs
	noSkills.EssentialHardSkills = nil
	assert.Error(t, noSkills.Validate())

	badWeights := *reqs
	badWeights.Weights = PriorityWeights{}
	assert.Error(t, badWeights.Validate())
}
