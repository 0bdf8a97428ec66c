package scheduler

import (
	"context"
	"time"

	"github.com/fadedpez/crazyeights/internal/logging"
)

// Maintenance task names
const (
	TaskTableSweep      = "table_sweep"
	TaskResultRetention = "result_retention"
	TaskIndexRotation   = "index_rotation"
)

// TableSweeper drops tables that have been idle for longer than idleFor
type TableSweeper interface {
	CleanupIdleTables(ctx context.Context, idleFor time.Duration) (int, error)
}

// ResultPruner deletes stored results completed before a point in time
type ResultPruner interface {
	PruneResults(ctx context.Context, before time.Time) (int64, error)
}

// IndexRotator starts a new search index when the current one is due
type IndexRotator interface {
	RotateIndices(ctx context.Context) error
}

// MaintenanceConfig configures the maintenance tasks
type MaintenanceConfig struct {
	IdleTimeout     time.Duration
	SweepInterval   time.Duration
	ResultRetention time.Duration

	// Rotator is optional; without it no index rotation task is scheduled
	Rotator          IndexRotator
	RotationInterval time.Duration
}

// MaintenanceScheduler runs the periodic housekeeping of the bot
type MaintenanceScheduler struct {
	scheduler *Scheduler
	sweeper   TableSweeper
	pruner    ResultPruner
	config    MaintenanceConfig
	now       func() time.Time
	log       *logging.Logger
}

// NewMaintenanceScheduler creates a scheduler for table sweeps and result retention
func NewMaintenanceScheduler(sweeper TableSweeper, pruner ResultPruner, config MaintenanceConfig) *MaintenanceScheduler {
	if config.SweepInterval <= 0 {
		config.SweepInterval = 5 * time.Minute
	}
	if config.RotationInterval <= 0 {
		config.RotationInterval = 24 * time.Hour
	}

	m := &MaintenanceScheduler{
		scheduler: NewScheduler(),
		sweeper:   sweeper,
		pruner:    pruner,
		config:    config,
		now:       time.Now,
		log:       logging.Default.WithField("component", "maintenance"),
	}

	if sweeper != nil && config.IdleTimeout > 0 {
		m.scheduler.AddTask(TaskTableSweep, config.SweepInterval, m.sweepTables)
	}
	if pruner != nil && config.ResultRetention > 0 {
		// Retention is coarse; once a day is enough
		m.scheduler.AddTask(TaskResultRetention, 24*time.Hour, m.pruneResults)
	}
	if config.Rotator != nil {
		m.scheduler.AddTask(TaskIndexRotation, config.RotationInterval, m.rotateIndices)
	}
	return m
}

// TaskNames returns the names of the scheduled maintenance tasks
func (m *MaintenanceScheduler) TaskNames() []string {
	return m.scheduler.TaskNames()
}

// Start starts the maintenance scheduler
func (m *MaintenanceScheduler) Start(ctx context.Context) {
	m.scheduler.Start(ctx)
	m.log.Info("Maintenance scheduler started")
}

// Stop stops the maintenance scheduler
func (m *MaintenanceScheduler) Stop() {
	m.scheduler.Stop()
	m.log.Info("Maintenance scheduler stopped")
}

// sweepTables drops idle tables, cancelling their pending opponent moves
func (m *MaintenanceScheduler) sweepTables(ctx context.Context) error {
	removed, err := m.sweeper.CleanupIdleTables(ctx, m.config.IdleTimeout)
	if err != nil {
		return err
	}
	if removed > 0 {
		m.log.Info("Removed %d idle tables", removed)
	}
	return nil
}

// pruneResults deletes results older than the retention period
func (m *MaintenanceScheduler) pruneResults(ctx context.Context) error {
	cutoff := m.now().Add(-m.config.ResultRetention)
	removed, err := m.pruner.PruneResults(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		m.log.Info("Pruned %d game results completed before %s", removed, cutoff.Format(time.RFC3339))
	}
	return nil
}

func (m *MaintenanceScheduler) rotateIndices(ctx context.Context) error {
	return m.config.Rotator.RotateIndices(ctx)
}
