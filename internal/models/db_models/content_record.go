package db_models

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ContentType string

const (
	ContentTypeVideo      ContentType = "video"
	ContentTypeFlashcards ContentType = "flashcards"
)

// ContentRecord stores the output of a successful generation. Content is a
// JSON document whose shape depends on Type: for video it carries
// {video_id, summary, transcript, duration}, for flashcards {cards}.
// Records are never updated in place.
type ContentRecord struct {
	BaseModel
	UserID  uuid.UUID   `gorm:"index;not null"`
	Type    ContentType `gorm:"size:16;index"`
	Title   string
	Content datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

// ContentEmbedding holds the summary embedding used by lecture search.
// Written best-effort after a lecture is persisted; a missing embedding just
// means the lecture won't show up in semantic search.
type ContentEmbedding struct {
	BaseModel
	ContentID uuid.UUID       `gorm:"uniqueIndex;not null"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}
