package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// TravelPlanRecord is one generated plan saved for history and
// similarity search. AccountID is nil for anonymous callers.
type TravelPlanRecord struct {
	BaseModel
	AccountID    *uuid.UUID      `gorm:"type:uuid;index"`
	Destination  string
	DurationDays int
	Travelers    int
	Budget       string
	Interests    pq.StringArray  `gorm:"type:text[]"`
	SelectedMode string
	TotalBudget  string
	Payload      datatypes.JSON  `gorm:"type:jsonb"`
	Embedding    pgvector.Vector `gorm:"type:vector(1536)"`
}
