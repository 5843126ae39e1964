package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hiresift/hiresift/internal/models"
)

func TestCandidateSelectorPrefersEmail(t *testing.T) {
	c := &models.ScoredResume{
		Resume: models.ResumeData{
			PersonalInfo: &models.PersonalInfo{Email: "ada@example.com"},
		},
		SourceFile: "ada.pdf",
	}

	assert.Equal(t, bson.M{"resume.personal_info.email": "ada@example.com"}, CandidateSelector(c))
}

func TestCandidateSelectorFallsBackToSourceFile(t *testing.T) {
	noEmail := &models.ScoredResume{
		Resume:     models.ResumeData{PersonalInfo: &models.PersonalInfo{FullName: "Ada"}},
		SourceFile: "ada.pdf",
	}
	assert.Equal(t, bson.M{"_source_file": "ada.pdf"}, CandidateSelector(noEmail))

	noInfo := &models.ScoredResume{SourceFile: "anon.pdf"}
	assert.Equal(t, bson.M{"_source_file": "anon.pdf"}, CandidateSelector(noInfo))
}
