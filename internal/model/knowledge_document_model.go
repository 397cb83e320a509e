package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// KnowledgeDocument is one ingested summary. The primary key is
// content-addressed (uuid5 of the source URL), so an upsert for the same
// source always lands on the same row.
type KnowledgeDocument struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Content        string            `gorm:"type:text"`
	EmbeddingValue pgvector.Vector   `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
