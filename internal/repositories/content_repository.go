package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"studymate/internal/models/db_models"
)

type ContentRepository interface {
	Insert(ctx context.Context, record *db_models.ContentRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, contentType db_models.ContentType, limit int) ([]db_models.ContentRecord, error)

	InsertEmbedding(ctx context.Context, embedding *db_models.ContentEmbedding) error
	SearchByEmbedding(ctx context.Context, userID uuid.UUID, query pgvector.Vector, limit int) ([]db_models.ContentRecord, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (c *contentRepository) Insert(ctx context.Context, record *db_models.ContentRecord) error {
	return c.db.WithContext(ctx).Create(record).Error
}

func (c *contentRepository) ListByUser(ctx context.Context, userID uuid.UUID, contentType db_models.ContentType, limit int) ([]db_models.ContentRecord, error) {
	var records []db_models.ContentRecord
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, contentType).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *contentRepository) InsertEmbedding(ctx context.Context, embedding *db_models.ContentEmbedding) error {
	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "content_id"}}, DoNothing: true}).
		Create(embedding).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func (c *contentRepository) SearchByEmbedding(ctx context.Context, userID uuid.UUID, query pgvector.Vector, limit int) ([]db_models.ContentRecord, error) {
	var records []db_models.ContentRecord
	err := c.db.WithContext(ctx).Raw(`
		SELECT r.* FROM content_records r
		JOIN content_embeddings e ON e.content_id = r.id
		WHERE r.user_id = ? AND r.deleted_at IS NULL
		ORDER BY e.embedding <-> ?
		LIMIT ?`, userID, query, limit).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
