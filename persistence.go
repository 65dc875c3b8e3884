package genetic_tsp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	gorm "gorm.io/gorm"
)

const (
	RunRunning   = "running"
	RunFinished  = "finished"
	RunFailed    = "failed"
	RunCancelled = "cancelled"
)

type PersistenceConfig struct {
	Name          string   `toml:"name" yaml:"name"`
	Path          string   `toml:"path" yaml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas" yaml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options" yaml:"sqlite_options"`
}

// Run is one invocation of the optimiser.
type Run struct {
	ID                   string `gorm:"primaryKey;size:36"`
	Input                string
	PointCount           int
	PopulationSize       int
	Generations          int
	MutationChance       float64
	Seed                 int64
	Status               string
	BestLength           float64
	BestGeneration       int
	CompletedGenerations int
	Error                string
	StartedAt            time.Time
	FinishedAt           *time.Time
}

// GenerationStat is the per-generation summary of a run.
type GenerationStat struct {
	ID            uint
	RunID         string `gorm:"index;size:36"`
	Generation    int
	BestLength    float64
	MeanLength    float64
	WorstLength   float64
	GlobalBest    float64
	DistinctTours int
	Improved      bool
}

// TourStop is one position of a run's best tour.
type TourStop struct {
	ID       uint
	RunID    string `gorm:"index;size:36"`
	Position int
	PointID  int
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
	log    logrus.FieldLogger
}

func NewPersistence(config *PersistenceConfig, log logrus.FieldLogger) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	db, err := gorm.Open(sqlite.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db, log: log}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

// DSN joins path and name and appends pragmas and options as query
// parameters.
func (c *PersistenceConfig) DSN() string {
	var params []string
	for _, prag := range c.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, c.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(c.Path, c.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}
	return path.String()
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(
		&Run{},
		&GenerationStat{},
		&TourStop{},
	)
}

func (p *Persistence) Shutdown() error {
	sqldb, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return sqldb.Close()
}

// StartRun stores a new run in the running state.
func (p *Persistence) StartRun(input string, pointCount int, config EngineConfig, seed int64) (*Run, error) {
	run := &Run{
		ID:             uuid.NewString(),
		Input:          input,
		PointCount:     pointCount,
		PopulationSize: config.PopulationSize,
		Generations:    config.Generations,
		MutationChance: config.MutationChance,
		Seed:           seed,
		Status:         RunRunning,
		StartedAt:      time.Now(),
	}
	if result := p.DB.Create(run); result.Error != nil {
		return nil, fmt.Errorf("failed to create run: %w", result.Error)
	}
	p.log.WithField("run", run.ID).Debug("Run recorded")
	return run, nil
}

// FinishRun stores the final state of run. result may be nil when the run
// failed before generation 0 was evaluated. The best tour is only stored for
// runs that were not aborted by an error.
func (p *Persistence) FinishRun(run *Run, result *Result, runErr error) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      RunFinished,
		"finished_at": &now,
	}
	switch {
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		updates["status"] = RunCancelled
	case runErr != nil:
		updates["status"] = RunFailed
		updates["error"] = runErr.Error()
	}

	storeTour := result != nil && result.Best.IsSet() && updates["status"] != RunFailed
	if result != nil {
		updates["completed_generations"] = result.Generations
		updates["best_length"] = result.Best.Length
		updates["best_generation"] = result.Best.Generation
	}

	return p.DB.Transaction(func(tx *gorm.DB) error {
		if storeTour {
			stops := make([]TourStop, len(result.Best.Tour))
			for i, pt := range result.Best.Tour {
				stops[i] = TourStop{RunID: run.ID, Position: i, PointID: pt.ID}
			}
			if err := tx.CreateInBatches(stops, 500).Error; err != nil {
				return fmt.Errorf("failed to save best tour: %w", err)
			}
		}
		if err := tx.Model(run).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to finish run %s: %w", run.ID, err)
		}
		return nil
	})
}

func (p *Persistence) ListRuns() ([]Run, error) {
	var runs []Run
	if err := p.DB.Order("started_at desc").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// LoadRun returns a run with its generation statistics and best tour ids.
func (p *Persistence) LoadRun(id string) (*Run, []GenerationStat, []int, error) {
	var run Run
	if err := p.DB.First(&run, "id = ?", id).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	var stats []GenerationStat
	if err := p.DB.Where("run_id = ?", id).Order("generation").Find(&stats).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load stats for run %s: %w", id, err)
	}

	var stops []TourStop
	if err := p.DB.Where("run_id = ?", id).Order("position").Find(&stops).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load tour for run %s: %w", id, err)
	}
	ids := make([]int, len(stops))
	for i, s := range stops {
		ids[i] = s.PointID
	}
	return &run, stats, ids, nil
}

// Recorder is a GenerationObserver that buffers generation statistics and
// writes them in batches.
type Recorder struct {
	persist   *Persistence
	run       *Run
	batchSize int
	batch     []GenerationStat
}

func (p *Persistence) NewRecorder(run *Run, batchSize int) *Recorder {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Recorder{
		persist:   p,
		run:       run,
		batchSize: batchSize,
		batch:     make([]GenerationStat, 0, batchSize),
	}
}

func (r *Recorder) ObserveGeneration(ctx context.Context, report *GenerationReport) error {
	r.batch = append(r.batch, GenerationStat{
		RunID:         r.run.ID,
		Generation:    report.Generation,
		BestLength:    report.Metrics.BestLength,
		MeanLength:    report.Metrics.MeanLength,
		WorstLength:   report.Metrics.WorstLength,
		GlobalBest:    report.BestLength,
		DistinctTours: report.Metrics.DistinctTours,
		Improved:      report.Improved,
	})
	if len(r.batch) < r.batchSize {
		return nil
	}
	return r.Flush()
}

// Flush writes any buffered statistics.
func (r *Recorder) Flush() error {
	if len(r.batch) == 0 {
		return nil
	}
	if err := r.persist.DB.CreateInBatches(r.batch, r.batchSize).Error; err != nil {
		return fmt.Errorf("failed to save generation stats: %w", err)
	}
	if DEBUG {
		r.persist.log.WithField("rows", len(r.batch)).Debug("Flushed generation stats")
	}
	r.batch = r.batch[:0]
	return nil
}

// PruneResult counts what PruneRuns removed, or would remove on a dry run.
type PruneResult struct {
	TotalRuns    int
	KeptRuns     int
	DeletedRuns  int
	DeletedStats int64
	DeletedStops int64
}

// PruneRuns keeps the newest keep runs and deletes the rest along with their
// statistics and tours. Runs still in the running state are never deleted.
func (p *Persistence) PruneRuns(keep int, dryRun bool) (*PruneResult, error) {
	if keep < 0 {
		return nil, fmt.Errorf("%w: keep must not be negative, got %d", ErrConfiguration, keep)
	}
	runs, err := p.ListRuns()
	if err != nil {
		return nil, err
	}

	result := &PruneResult{TotalRuns: len(runs)}
	var doomed []string
	for i, r := range runs {
		if i < keep || r.Status == RunRunning {
			result.KeptRuns++
			continue
		}
		doomed = append(doomed, r.ID)
	}
	result.DeletedRuns = len(doomed)
	if len(doomed) == 0 {
		return result, nil
	}

	if dryRun {
		if err := p.DB.Model(&GenerationStat{}).Where("run_id IN ?", doomed).Count(&result.DeletedStats).Error; err != nil {
			return nil, fmt.Errorf("failed to count stats: %w", err)
		}
		if err := p.DB.Model(&TourStop{}).Where("run_id IN ?", doomed).Count(&result.DeletedStops).Error; err != nil {
			return nil, fmt.Errorf("failed to count tour stops: %w", err)
		}
		return result, nil
	}

	err = p.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("run_id IN ?", doomed).Delete(&GenerationStat{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete stats: %w", res.Error)
		}
		result.DeletedStats = res.RowsAffected

		res = tx.Where("run_id IN ?", doomed).Delete(&TourStop{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete tour stops: %w", res.Error)
		}
		result.DeletedStops = res.RowsAffected

		if err := tx.Where("id IN ?", doomed).Delete(&Run{}).Error; err != nil {
			return fmt.Errorf("failed to delete runs: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"runs":  result.DeletedRuns,
		"stats": result.DeletedStats,
		"stops": result.DeletedStops,
	}).Info("Pruned run history")
	return result, nil
}
