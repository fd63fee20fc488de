package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/evaluation"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

// GormEvaluationRunRepository implements RunRepository using GORM
type GormEvaluationRunRepository struct {
	db *gorm.DB
}

// NewGormEvaluationRunRepository creates a new GORM evaluation run repository
func NewGormEvaluationRunRepository(db *gorm.DB) *GormEvaluationRunRepository {
	return &GormEvaluationRunRepository{db: db}
}

// Save persists a run and its blueprint results in one transaction.
// Runs are immutable, so saving an id that already exists is an error.
func (r *GormEvaluationRunRepository) Save(ctx context.Context, run *evaluation.Run) error {
	model := r.runToModel(run)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&EvaluationRunModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("run %s already exists", model.ID)
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save evaluation run: %w", err)
	}

	return nil
}

// FindByID retrieves a run with its results ordered as evaluated
func (r *GormEvaluationRunRepository) FindByID(ctx context.Context, id string) (*evaluation.Run, error) {
	var model EvaluationRunModel
	result := r.db.WithContext(ctx).
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &evaluation.ErrRunNotFound{RunID: id}
		}
		return nil, fmt.Errorf("failed to find evaluation run: %w", result.Error)
	}

	return r.modelToRun(&model), nil
}

// List returns runs newest first
func (r *GormEvaluationRunRepository) List(ctx context.Context, opts evaluation.ListOptions) ([]*evaluation.Run, error) {
	query := r.db.WithContext(ctx).
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("started_at DESC").
		Order("id ASC")

	if opts.Mode != "" {
		query = query.Where("mode = ?", opts.Mode)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []EvaluationRunModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list evaluation runs: %w", err)
	}

	runs := make([]*evaluation.Run, 0, len(models))
	for i := range models {
		runs = append(runs, r.modelToRun(&models[i]))
	}
	return runs, nil
}

func (r *GormEvaluationRunRepository) runToModel(run *evaluation.Run) *EvaluationRunModel {
	results := make([]BlueprintResultModel, 0, len(run.Results()))
	for i, outcome := range run.Results() {
		results = append(results, BlueprintResultModel{
			RunID:        run.ID(),
			BlueprintID:  outcome.BlueprintID,
			Position:     i,
			Yield:        outcome.Yield,
			Explored:     outcome.Explored,
			Deduplicated: outcome.Deduplicated,
			BoundPruned:  outcome.BoundPruned,
			PeakFrontier: outcome.PeakFrontier,
			DurationNs:   int64(outcome.Duration),
		})
	}

	return &EvaluationRunModel{
		ID:          run.ID(),
		Source:      run.Source(),
		Mode:        run.Mode().String(),
		Horizon:     run.Horizon(),
		PrefixLimit: run.PrefixLimit(),
		Aggregate:   run.Aggregate(),
		StartedAt:   run.StartedAt().UTC(),
		DurationNs:  int64(run.Duration()),
		Results:     results,
	}
}

func (r *GormEvaluationRunRepository) modelToRun(model *EvaluationRunModel) *evaluation.Run {
	outcomes := make([]*evaluation.BlueprintOutcome, 0, len(model.Results))
	for _, res := range model.Results {
		outcomes = append(outcomes, &evaluation.BlueprintOutcome{
			BlueprintID:  res.BlueprintID,
			Yield:        res.Yield,
			Explored:     res.Explored,
			Deduplicated: res.Deduplicated,
			BoundPruned:  res.BoundPruned,
			PeakFrontier: res.PeakFrontier,
			Duration:     time.Duration(res.DurationNs),
		})
	}

	return evaluation.ReconstructRun(
		model.ID,
		model.Source,
		production.AggregationMode(model.Mode),
		model.Horizon,
		model.PrefixLimit,
		model.Aggregate,
		model.StartedAt,
		time.Duration(model.DurationNs),
		outcomes,
	)
}
