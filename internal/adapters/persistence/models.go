package persistence

import (
	"time"
)

// EvaluationRunModel represents the evaluation_runs table
type EvaluationRunModel struct {
	ID          string                 `gorm:"column:id;primaryKey;not null"`
	Source      string                 `gorm:"column:source"`
	Mode        string                 `gorm:"column:mode;not null;index"`
	Horizon     int                    `gorm:"column:horizon;not null"`
	PrefixLimit int                    `gorm:"column:prefix_limit;not null;default:0"`
	Aggregate   uint64                 `gorm:"column:aggregate;not null"`
	StartedAt   time.Time              `gorm:"column:started_at;not null;index"`
	DurationNs  int64                  `gorm:"column:duration_ns;not null"`
	Results     []BlueprintResultModel `gorm:"foreignKey:RunID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (EvaluationRunModel) TableName() string {
	return "evaluation_runs"
}

// BlueprintResultModel represents the blueprint_results table
type BlueprintResultModel struct {
	ID           int    `gorm:"column:id;primaryKey;autoIncrement"`
	RunID        string `gorm:"column:run_id;not null;index;uniqueIndex:idx_run_blueprint"`
	BlueprintID  int    `gorm:"column:blueprint_id;not null;uniqueIndex:idx_run_blueprint"`
	Position     int    `gorm:"column:position;not null"`
	Yield        uint64 `gorm:"column:yield;not null"`
	Explored     int    `gorm:"column:explored;not null;default:0"`
	Deduplicated int    `gorm:"column:deduplicated;not null;default:0"`
	BoundPruned  int    `gorm:"column:bound_pruned;not null;default:0"`
	PeakFrontier int    `gorm:"column:peak_frontier;not null;default:0"`
	DurationNs   int64  `gorm:"column:duration_ns;not null"`
}

func (BlueprintResultModel) TableName() string {
	return "blueprint_results"
}
