package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"wayfarer/internal/models/db_models"
)

// PlanSimilarity pairs a saved plan with its cosine similarity to a
// query vector.
type PlanSimilarity struct {
	db_models.TravelPlanRecord
	Similarity float64
}

type IPlanRepository interface {
	SavePlan(ctx context.Context, record *db_models.TravelPlanRecord) error
	ListByAccount(ctx context.Context, accountID string, limit int) ([]db_models.TravelPlanRecord, error)
	FindSimilarByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]PlanSimilarity, error)
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{
		db: db,
	}
}

func (p *PlanRepository) SavePlan(ctx context.Context, record *db_models.TravelPlanRecord) error {
	return p.db.WithContext(ctx).Create(record).Error
}

func (p *PlanRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]db_models.TravelPlanRecord, error) {
	var records []db_models.TravelPlanRecord
	err := p.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *PlanRepository) FindSimilarByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]PlanSimilarity, error) {
	var results []PlanSimilarity

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM travel_plan_records
        WHERE embedding IS NOT NULL
        ORDER BY embedding <=> $1
        LIMIT $2
    `

	err := p.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
