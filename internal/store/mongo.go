package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hiresift/hiresift/config"
	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/models"
	"github.com/hiresift/hiresift/pkg/logger"
)

// maxQueryResults caps free-form query results so the bounded observation
// fed back to the Q&A agent cannot blow up its context.
const maxQueryResults = 10

// Store is the MongoDB-backed document store for evaluated candidates,
// usage logs and workflow checkpoints.
type Store struct {
	client      *mongo.Client
	candidates  *mongo.Collection
	usageLogs   *mongo.Collection
	checkpoints *mongo.Collection
	logger      logger.Logger
}

func Connect(ctx context.Context, cfg *config.MongoConfig, log logger.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI()))
	if err != nil {
		return nil, &PersistenceError{Op: "connect", Err: err}
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, &PersistenceError{Op: "ping", Err: err}
	}

	db := client.Database(cfg.Database)
	return &Store{
		client:      client,
		candidates:  db.Collection(cfg.CandidateCollection),
		usageLogs:   db.Collection(cfg.UsageLogCollection),
		checkpoints: db.Collection(cfg.CheckpointCollection),
		logger:      log.Named("store"),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CandidateSelector picks the upsert selector: the candidate email when
// extraction found one, else the source document key. Re-processing the
// same résumé therefore overwrites, never duplicates.
func CandidateSelector(c *models.ScoredResume) bson.M {
	if email := c.Resume.Email(); email != "" {
		return bson.M{"resume.personal_info.email": email}
	}
	return bson.M{"_source_file": c.SourceFile}
}

// UpsertCandidate stores one evaluated candidate idempotently.
func (s *Store) UpsertCandidate(ctx context.Context, c *models.ScoredResume) error {
	_, err := s.candidates.ReplaceOne(ctx, CandidateSelector(c), c, options.Replace().SetUpsert(true))
	if err != nil {
		return &PersistenceError{Op: "upsert", Err: err}
	}
	return nil
}

// TopByScore returns the n best candidates, highest final score first.
func (s *Store) TopByScore(ctx context.Context, n int) ([]models.ScoredResume, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "final_score", Value: -1}}).
		SetLimit(int64(n))

	cursor, err := s.candidates.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &PersistenceError{Op: "top_by_score", Err: err}
	}
	defer cursor.Close(ctx)

	var out []models.ScoredResume
	if err := cursor.All(ctx, &out); err != nil {
		return nil, &PersistenceError{Op: "top_by_score", Err: err}
	}
	return out, nil
}

// RawQuery executes a free-form filter with an optional projection and
// returns at most maxQueryResults documents.
func (s *Store) RawQuery(ctx context.Context, filter, projection bson.M) ([]bson.M, error) {
	opts := options.Find().SetLimit(maxQueryResults)
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := s.candidates.Find(ctx, filter, opts)
	if err != nil {
		return nil, &PersistenceError{Op: "query", Err: err}
	}
	defer cursor.Close(ctx)

	var out []bson.M
	if err := cursor.All(ctx, &out); err != nil {
		return nil, &PersistenceError{Op: "query", Err: err}
	}
	return out, nil
}

// SampleDocument returns one stored candidate, or nil when the collection
// is empty. Used to derive the Q&A schema sketch.
func (s *Store) SampleDocument(ctx context.Context) (bson.M, error) {
	var doc bson.M
	err := s.candidates.FindOne(ctx, bson.M{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "sample", Err: err}
	}
	return doc, nil
}

// Record implements llm.UsageSink. It runs on the gateway's detached
// goroutine, so it carries its own timeout.
func (s *Store) Record(record llm.UsageRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.usageLogs.InsertOne(ctx, record); err != nil {
		return &PersistenceError{Op: "usage", Err: err}
	}
	return nil
}

type checkpointDoc struct {
	SessionID string    `bson:"_id"`
	State     []byte    `bson:"state"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SaveCheckpoint durably stores the serialized workflow state for a
// session, overwriting any previous checkpoint.
func (s *Store) SaveCheckpoint(ctx context.Context, sessionID string, state []byte) error {
	doc := checkpointDoc{SessionID: sessionID, State: state, UpdatedAt: time.Now().UTC()}
	_, err := s.checkpoints.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return &PersistenceError{Op: "checkpoint_save", Err: err}
	}
	return nil
}

// LoadCheckpoint returns the serialized state for a session, or nil when
// no checkpoint exists.
func (s *Store) LoadCheckpoint(ctx context.Context, sessionID string) ([]byte, error) {
	var doc checkpointDoc
	err := s.checkpoints.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "checkpoint_load", Err: err}
	}
	return doc.State, nil
}

// DeleteCheckpoint drops a finished session's checkpoint.
func (s *Store) DeleteCheckpoint(ctx context.Context, sessionID string) error {
	if _, err := s.checkpoints.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return &PersistenceError{Op: "checkpoint_delete", Err: err}
	}
	return nil
}
