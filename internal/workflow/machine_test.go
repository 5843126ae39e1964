package workflow

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"google.golang.org/genai"

	"github.com/hiresift/hiresift/internal/agent"
	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/models"
	"github.com/hiresift/hiresift/internal/pipeline"
	"github.com/hiresift/hiresift/pkg/logger"
)

// scriptedGenerator pops queued Converse replies; GenerateText answers
// from a fixed map by node-independent call order.
type scriptedGenerator struct {
	converseReplies []*llm.Reply
	textReplies     []string
}

func (s *scriptedGenerator) GenerateText(context.Context, string, ...llm.Option) (string, error) {
	reply := s.textReplies[0]
	s.textReplies = s.textReplies[1:]
	return reply, nil
}

func (s *scriptedGenerator) GenerateVision(context.Context, string, []byte, ...llm.Option) (string, error) {
	return "page text", nil
}

func (s *scriptedGenerator) GenerateObject(context.Context, string, *genai.Schema, any, ...llm.Option) error {
	return nil
}

func (s *scriptedGenerator) Converse(context.Context, string, []llm.Message, []*genai.FunctionDeclaration, ...llm.Option) (*llm.Reply, error) {
	reply := s.converseReplies[0]
	s.converseReplies = s.converseReplies[1:]
	return reply, nil
}

type stubObjects struct {
	buckets map[string][]string
}

func (s *stubObjects) List(_ context.Context, bucket string) ([]string, error) {
	return s.buckets[bucket], nil
}

type stubCandidates struct {
	upserted []models.ScoredResume
}

func (s *stubCandidates) UpsertCandidate(_ context.Context, c *models.ScoredResume) error {
	s.upserted = append(s.upserted, *c)
	return nil
}

func (s *stubCandidates) TopByScore(_ context.Context, n int) ([]models.ScoredResume, error) {
	top := make([]models.ScoredResume, len(s.upserted))
	copy(top, s.upserted)
	sort.Slice(top, func(i, j int) bool { return top[i].FinalScore > top[j].FinalScore })
	if len(top) > n {
		top = top[:n]
	}
	return top, nil
}

func (s *stubCandidates) SampleDocument(context.Context) (bson.M, error) {
	if len(s.upserted) == 0 {
		return nil, nil
	}
	return bson.M{"final_score": 80.0, "resume": bson.M{"personal_info": bson.M{"email": "a@b.c"}}}, nil
}

func (s *stubCandidates) RawQuery(context.Context, bson.M, bson.M) ([]bson.M, error) {
	return []bson.M{{"final_score": 80.0}}, nil
}

type stubRunner struct {
	ranBatches []pipeline.Batch
}

func (s *stubRunner) RunAll(_ context.Context, batches []pipeline.Batch) []models.ScoredResume {
	s.ranBatches = batches
	var out []models.ScoredResume
	score := 90.0
	for _, b := range batches {
		for _, key := range b.Keys {
			out = append(out, models.ScoredResume{FinalScore: score, SourceFile: key})
			score--
		}
	}
	return out
}

type stubCompareOCR struct {
	buckets []string
	keys    []string
}

func (s *stubCompareOCR) Process(_ context.Context, bucket, key, _ string) (string, error) {
	s.buckets = append(s.buckets, bucket)
	s.keys = append(s.keys, key)
	return "transcript of " + key, nil
}

type fixture struct {
	checkpoints *MemoryCheckpoints
	objects     *stubObjects
	candidates  *stubCandidates
	runner      *stubRunner
	ocr         *stubCompareOCR
}

func newFixture() *fixture {
	return &fixture{
		checkpoints: NewMemoryCheckpoints(),
		objects:     &stubObjects{buckets: map[string][]string{}},
		candidates:  &stubCandidates{},
		runner:      &stubRunner{},
		ocr:         &stubCompareOCR{},
	}
}

func (f *fixture) machine(gen llm.Generator) *Machine {
	return NewMachine(Config{
		Generator:     gen,
		Objects:       f.objects,
		Candidates:    f.candidates,
		Checkpoints:   f.checkpoints,
		Runner:        f.runner,
		OCR:           f.ocr,
		ResumeBucket:  "resumes",
		CompareBucket: "resumes-compare",
		Logger:        logger.NewTestLogger(),
	})
}

func routeCall(path string) *llm.Reply {
	return &llm.Reply{Call: &llm.ToolCall{Name: agent.ToolRoute, Args: map[string]any{"path": path}}}
}

func hiringSubmitCall() *llm.Reply {
	return &llm.Reply{Call: &llm.ToolCall{Name: agent.ToolSubmitHiring, Args: map[string]any{
		"role_title":                "Backend Engineer",
		"seniority":                 "Senior",
		"military_service_required": false,
		"essential_hard_skills":     []any{"Go"},
		"min_experience_years":      4,
		"university_tier":           2,
		"weights": map[string]any{
			"hard_skills_weight": 8,
			"experience_weight":  6,
		},
	}}}
}

func TestReviewPathSurvivesProcessRestart(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.objects.buckets["resumes"] = []string{"a.pdf", "b.pdf"}
	const session = "sess-review"

	gen1 := &scriptedGenerator{converseReplies: []*llm.Reply{
		routeCall("REVIEW"),
		{Text: "Which skills are essential?"}, // hiring interview asks
		hiringSubmitCall(),
	}}
	m1 := f.machine(gen1)

	turn, err := m1.Start(ctx, session)
	require.NoError(t, err)
	require.NotNil(t, turn.Suspended)
	assert.Equal(t, PhaseRouter, turn.Suspended.Phase)

	turn, err = m1.Resume(ctx, session, "score resumes for a backend role")
	require.NoError(t, err)
	require.NotNil(t, turn.Suspended)
	assert.Equal(t, PhaseHiring, turn.Suspended.Phase)
	assert.Equal(t, "Which skills are essential?", turn.Suspended.Prompt)

	turn, err = m1.Resume(ctx, session, "Go is essential, four years minimum")
	require.NoError(t, err)
	require.NotNil(t, turn.Suspended)
	assert.Equal(t, PhaseAwaitUpload, turn.Suspended.Phase)
	assert.Equal(t, SuspendUpload, turn.Suspended.Kind)
	assert.Equal(t, "resumes", turn.Suspended.Bucket)

	// New process, new machine, same checkpoint store.
	gen2 := &scriptedGenerator{
		converseReplies: []*llm.Reply{{Text: "Ada scored highest."}},
		textReplies:     []string{"Top candidate narrative."},
	}
	m2 := f.machine(gen2)

	turn, err = m2.Start(ctx, session)
	require.NoError(t, err)
	require.NotNil(t, turn.Suspended)
	assert.Equal(t, PhaseAwaitUpload, turn.Suspended.Phase, "restart lands on the open wait")

	turn, err = m2.Resume(ctx, session, "done")
	require.NoError(t, err)
	require.NotNil(t, turn.Suspended)
	assert.Equal(t, PhaseQA, turn.Suspended.Phase)
	assert.Contains(t, turn.Replies, "Top candidate narrative.")

	require.Len(t, f.candidates.upserted, 2)
	require.NotEmpty(t, f.runner.ranBatches)
	assert.Equal(t, &models.HiringRequirements{
		RoleTitle:           "Backend Engineer",
		Seniority:           models.SenioritySenior,
		EssentialHardSkills: []string{"Go"},
		MinExperienceYears:  4,
		UniversityTier:      2,
		Weights:             models.PriorityWeights{HardSkills: 8, Experience: 6},
	}, f.runner.ranBatches[0].Reqs, "requirements survive the checkpoint round trip")

	turn, err = m2.Resume(ctx, session, "who scored highest?")
	require.NoError(t, err)
	assert.Contains(t, turn.Replies, "Ada scored highest.")
	assert.Equal(t, PhaseQA, turn.Suspended.Phase)

	turn, err = m2.Resume(ctx, session, "exit")
	require.NoError(t, err)
	assert.True(t, turn.Done)

	raw, err := f.checkpoints.LoadCheckpoint(ctx, session)
	require.NoError(t, err)
	assert.Nil(t, raw, "finished sessions leave no checkpoint")
}

func TestReviewPathEmptyBucketAsksAgain(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	const session = "sess-empty"

	gen := &scriptedGenerator{converseReplies: []*llm.Reply{
		routeCall("REVIEW"),
		hiringSubmitCall(),
	}}
	m := f.machine(gen)

	_, err := m.Start(ctx, session)
	require.NoError(t, err)
	_, err = m.Resume(ctx, session, "review resumes, here is everything")
	require.NoError(t, err)

	turn, err := m.Resume(ctx, session, "done")
	require.NoError(t, err)
	require.NotNil(t, turn.Suspended)
	assert.Equal(t, PhaseAwaitUpload, turn.Suspended.Phase, "stays at the upload wait")
	assert.Empty(t, f.candidates.upserted)
}

func TestJDPathWritesAndFinishes(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	const session = "sess-jd"

	gen := &scriptedGenerator{
		converseReplies: []*llm.Reply{
			routeCall("WRITE"),
			{Text: "What's the job title?"},
			{Call: &llm.ToolCall{Name: agent.ToolSubmitJD, Args: map[string]any{
				"job_title":            "Data Engineer",
				"seniority_level":      "Mid-Level",
				"location":             "Berlin",
				"hard_skills":          []any{"SQL", "Airflow"},
				"min_experience_years": 2,
				"target_language":      "English",
			}}},
		},
		textReplies: []string{"# Data Engineer\nGreat job ad text."},
	}
	m := f.machine(gen)

	_, err := m.Start(ctx, session)
	require.NoError(t, err)

	turn, err := m.Resume(ctx, session, "write a job description")
	require.NoError(t, err)
	assert.Equal(t, PhaseJD, turn.Suspended.Phase)

	turn, err = m.Resume(ctx, session, "Data Engineer, mid level, Berlin")
	require.NoError(t, err)
	assert.True(t, turn.Done)
	assert.Contains(t, turn.Replies, "# Data Engineer\nGreat job ad text.")

	raw, err := f.checkpoints.LoadCheckpoint(ctx, session)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestComparePathDefaultsToCompareBucket(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.objects.buckets["resumes-compare"] = []string{"x.pdf", "y.pdf"}
	f.objects.buckets["resumes"] = []string{"stale1.pdf", "stale2.pdf"}
	const session = "sess-compare"

	gen := &scriptedGenerator{
		converseReplies: []*llm.Reply{routeCall("COMPARE")},
		textReplies:     []string{"X edges out Y.", "Because of deeper Go experience."},
	}
	m := f.machine(gen)

	_, err := m.Start(ctx, session)
	require.NoError(t, err)

	turn, err := m.Resume(ctx, session, "compare two candidates")
	require.NoError(t, err)
	require.NotNil(t, turn.Suspended)
	assert.Equal(t, PhaseCompareUpload, turn.Suspended.Phase)
	assert.Equal(t, maxCompareFiles, turn.Suspended.MaxFiles)

	turn, err = m.Resume(ctx, session, "done")
	require.NoError(t, err)
	assert.Equal(t, PhaseCompareQA, turn.Suspended.Phase)
	assert.Contains(t, turn.Replies, "X edges out Y.")

	// A bare confirmation compares the whole compare bucket, never the
	// intake bucket.
	assert.Equal(t, []string{"x.pdf", "y.pdf"}, f.ocr.keys)
	for _, bucket := range f.ocr.buckets {
		assert.Equal(t, "resumes-compare", bucket)
	}

	turn, err = m.Resume(ctx, session, "why does X win?")
	require.NoError(t, err)
	assert.Contains(t, turn.Replies, "Because of deeper Go experience.")
	assert.Equal(t, PhaseCompareQA, turn.Suspended.Phase)
}

func TestComparePathHonorsUploadedKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	// Stale contents must lose to the freshly named uploads.
	f.objects.buckets["resumes-compare"] = []string{"old1.pdf", "old2.pdf", "old3.pdf", "old4.pdf"}
	const session = "sess-compare-keys"

	gen := &scriptedGenerator{
		converseReplies: []*llm.Reply{routeCall("COMPARE")},
		textReplies:     []string{"A beats B."},
	}
	m := f.machine(gen)

	_, err := m.Start(ctx, session)
	require.NoError(t, err)
	_, err = m.Resume(ctx, session, "compare these")
	require.NoError(t, err)

	turn, err := m.Resume(ctx, session, "a.pdf, b.pdf")
	require.NoError(t, err)
	assert.Equal(t, PhaseCompareQA, turn.Suspended.Phase)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, f.ocr.keys)
}

func TestComparePathEmptyBucketAsksAgain(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	const session = "sess-compare-empty"

	gen := &scriptedGenerator{converseReplies: []*llm.Reply{routeCall("COMPARE")}}
	m := f.machine(gen)

	_, err := m.Start(ctx, session)
	require.NoError(t, err)
	_, err = m.Resume(ctx, session, "compare candidates")
	require.NoError(t, err)

	turn, err := m.Resume(ctx, session, "done")
	require.NoError(t, err)
	require.NotNil(t, turn.Suspended)
	assert.Equal(t, PhaseCompareUpload, turn.Suspended.Phase, "stays at the upload wait")
	assert.Empty(t, f.ocr.keys)
}

func TestExitSentinelAtAnyWait(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for _, input := range []string{"exit", "quit", "", "  EXIT  "} {
		session := "sess-exit-" + input
		m := f.machine(&scriptedGenerator{})

		_, err := m.Start(ctx, session)
		require.NoError(t, err)

		turn, err := m.Resume(ctx, session, input)
		require.NoError(t, err)
		assert.True(t, turn.Done, "input %q", input)

		raw, err := f.checkpoints.LoadCheckpoint(ctx, session)
		require.NoError(t, err)
		assert.Nil(t, raw)
	}
}

func TestResumeWithoutSessionFails(t *testing.T) {
	f := newFixture()
	m := f.machine(&scriptedGenerator{})

	_, err := m.Resume(context.Background(), "ghost", "hello")
	assert.Error(t, err)
}
