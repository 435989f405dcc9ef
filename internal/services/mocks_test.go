package services

import (
	"context"
	"errors"

	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"studymate/internal/models/db_models"
	"studymate/internal/models/response_models"
	"studymate/pkg/memcache"
	"studymate/pkg/utils"
)

// Shared fakes for service tests.

type stubEntitlement struct {
	allow      bool
	increments []db_models.Feature
}

func (s *stubEntitlement) CheckUsageLimit(ctx context.Context, userID string, feature db_models.Feature) bool {
	return s.allow
}

func (s *stubEntitlement) IncrementUsage(ctx context.Context, userID string, feature db_models.Feature) {
	s.increments = append(s.increments, feature)
}

func (s *stubEntitlement) GetUserUsage(ctx context.Context, userID string) (response_models.UsageReport, error) {
	return response_models.UsageReport{}, nil
}

func (s *stubEntitlement) UpdateTier(ctx context.Context, userID string, tier db_models.Tier, reason string) error {
	return nil
}

// stubChat returns canned responses in order, or an error for every call.
type stubChat struct {
	responses []string
	err       error
	calls     int
}

func (s *stubChat) Complete(ctx context.Context, system, user string, opts utils.ChatOptions) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("no canned response")
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

type stubEmbeddings struct {
	err error
}

func (s *stubEmbeddings) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if s.err != nil {
		return pgvector.Vector{}, s.err
	}
	return pgvector.NewVector(make([]float32, 4)), nil
}

type stubContentRepo struct {
	inserted   []*db_models.ContentRecord
	embeddings []*db_models.ContentEmbedding
	searchHits []db_models.ContentRecord
	insertErr  error
}

func (s *stubContentRepo) Insert(ctx context.Context, record *db_models.ContentRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	record.ID = uuid.New()
	s.inserted = append(s.inserted, record)
	return nil
}

func (s *stubContentRepo) ListByUser(ctx context.Context, userID uuid.UUID, contentType db_models.ContentType, limit int) ([]db_models.ContentRecord, error) {
	return nil, nil
}

func (s *stubContentRepo) InsertEmbedding(ctx context.Context, embedding *db_models.ContentEmbedding) error {
	s.embeddings = append(s.embeddings, embedding)
	return nil
}

func (s *stubContentRepo) SearchByEmbedding(ctx context.Context, userID uuid.UUID, query pgvector.Vector, limit int) ([]db_models.ContentRecord, error) {
	return s.searchHits, nil
}

func newTestRecents() memcache.RecentItemStore {
	return memcache.NewRecentItems(5, time.Hour)
}
