package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/hiresift/hiresift/config"
	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/models"
	"github.com/hiresift/hiresift/pkg/logger"
)

// stubGenerator implements llm.Generator with scriptable behavior.
type stubGenerator struct {
	mu          sync.Mutex
	objectCalls int
	objectFn    func(call int, out any) error
	textFn      func(prompt string) (string, error)
	visionFn    func(prompt string, png []byte) (string, error)
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	if s.textFn != nil {
		return s.textFn(prompt)
	}
	return "", nil
}

func (s *stubGenerator) GenerateVision(_ context.Context, prompt string, png []byte, _ ...llm.Option) (string, error) {
	if s.visionFn != nil {
		return s.visionFn(prompt, png)
	}
	return "", nil
}

func (s *stubGenerator) GenerateObject(_ context.Context, _ string, _ *genai.Schema, out any, _ ...llm.Option) error {
	s.mu.Lock()
	s.objectCalls++
	call := s.objectCalls
	s.mu.Unlock()

	if s.objectFn != nil {
		return s.objectFn(call, out)
	}
	return nil
}

func (s *stubGenerator) Converse(_ context.Context, _ string, _ []llm.Message, _ []*genai.FunctionDeclaration, _ ...llm.Option) (*llm.Reply, error) {
	return &llm.Reply{}, nil
}

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objectCalls
}

func testLimits() *Limits {
	return NewLimits(&config.PipelineConfig{OCRWorkers: 2, StructureWorkers: 2, EvalWorkers: 2})
}

func newTestStructureWorker(gen *stubGenerator) (*StructureWorker, *[]time.Duration) {
	w := NewStructureWorker(gen, testLimits(), 3, logger.NewTestLogger())
	sleeps := &[]time.Duration{}
	w.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return w, sleeps
}

func TestStructureSkipsEmptyText(t *testing.T) {
	gen := &stubGenerator{}
	w, _ := newTestStructureWorker(gen)

	resume, err := w.Process(context.Background(), "a.pdf", "", "test")

	assert.NoError(t, err)
	assert.Nil(t, resume)
	assert.Equal(t, 0, gen.calls(), "empty text must not reach the model")
}

func TestStructureStampsSourceFile(t *testing.T) {
	gen := &stubGenerator{}
	w, _ := newTestStructureWorker(gen)

	resume, err := w.Process(context.Background(), "a.pdf", "some text", "test")

	require.NoError(t, err)
	require.NotNil(t, resume)
	assert.Equal(t, "a.pdf", resume.SourceFile)
	assert.Equal(t, 1, gen.calls())
}

func TestStructureEnrichesRecord(t *testing.T) {
	gen := &stubGenerator{objectFn: func(_ int, out any) error {
		r := out.(*models.ResumeData)
		r.PersonalInfo = &models.PersonalInfo{DateOfBirth: "1995-04-12"}
		r.WorkExperience = []models.ExperienceEntry{{StartDate: "2019-01", EndDate: "2021-01"}}
		return nil
	}}
	w, _ := newTestStructureWorker(gen)

	resume, err := w.Process(context.Background(), "a.pdf", "some text", "test")

	require.NoError(t, err)
	require.NotNil(t, resume)
	assert.Equal(t, 24, resume.WorkExperience[0].DurationMonths)
	assert.Empty(t, resume.PersonalInfo.DateOfBirth, "birth date is dropped before the record leaves the stage")
	assert.Positive(t, resume.PersonalInfo.Age)
}

func TestStructureRetryExhaustion(t *testing.T) {
	boom := errors.New("malformed json")
	gen := &stubGenerator{objectFn: func(int, any) error { return boom }}
	w, sleeps := newTestStructureWorker(gen)

	resume, err := w.Process(context.Background(), "a.pdf", "some text", "test")

	assert.Nil(t, resume)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, gen.calls(), "exactly maxRetries attempts")
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps,
		"linear backoff between attempts, none after the last")
}

func TestStructureRecoversOnRetry(t *testing.T) {
	gen := &stubGenerator{objectFn: func(call int, out any) error {
		if call == 1 {
			return errors.New("transient")
		}
		out.(*models.ResumeData).ResumeLanguage = "en"
		return nil
	}}
	w, sleeps := newTestStructureWorker(gen)

	resume, err := w.Process(context.Background(), "a.pdf", "some text", "test")

	require.NoError(t, err)
	require.NotNil(t, resume)
	assert.Equal(t, "en", resume.ResumeLanguage)
	assert.Equal(t, 2, gen.calls())
	assert.Equal(t, []time.Duration{time.Second}, *sleeps)
}
