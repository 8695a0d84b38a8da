// Package generator drives a generation run: it writes one access-log file
// per requested size, verifies each file reached its target, compresses old
// rotations and moves the clock to the next day between files.
package generator

import (
	"time"

	"github.com/google/uuid"

	"github.com/wayneeseguin/loggen/internal/logging"
	"github.com/wayneeseguin/loggen/internal/metrics"
	"github.com/wayneeseguin/loggen/pkg/backends"
	"github.com/wayneeseguin/loggen/pkg/clock"
	"github.com/wayneeseguin/loggen/pkg/notify"
	"github.com/wayneeseguin/loggen/pkg/record"
	"github.com/wayneeseguin/loggen/pkg/rotation"
)

// State is a step of the run loop.
type State int

const (
	StateIdle State = iota
	StatePreparingFile
	StateWritingRecords
	StateVerifyingSize
	StateCompressingFile
	StateSkippingCompression
	StateAdvancingDay
	StateDone
	StateFailed
)

var stateNames = [...]string{
	"Idle",
	"PreparingFile",
	"WritingRecords",
	"VerifyingSize",
	"CompressingFile",
	"SkippingCompression",
	"AdvancingDay",
	"Done",
	"Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// FileResult describes one file the run produced.
type FileResult struct {
	Task        FileTask
	ActualBytes uint64
	Records     uint64
	FinalPath   string
	Compressed  bool
	FirstRecord time.Time
	LastRecord  time.Time
}

// Result is the outcome of a run. On failure it holds the files completed
// before the failing one.
type Result struct {
	RunID   string
	Files   []FileResult
	Metrics metrics.Metrics
}

// Generator writes rotated access-log fixtures. A Generator runs one file at
// a time and is not safe for concurrent use.
type Generator struct {
	config     *Config
	log        *logging.Logger
	notifier   notify.Notifier
	metrics    *metrics.Collector
	records    *record.Generator
	compressor *rotation.Compressor
	state      State
}

// NewWithOptions creates a Generator from the defaults plus options.
func NewWithOptions(options ...Option) (*Generator, error) {
	config := DefaultConfig()
	for _, opt := range options {
		if err := opt(config); err != nil {
			return nil, err
		}
	}
	return NewWithConfig(config)
}

// NewWithConfig creates a Generator from a complete config.
func NewWithConfig(config *Config) (*Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.OutputDir == "" {
		return nil, NewError(ErrCodeArgument, "config", "", nil).
			WithContext("error", "output directory cannot be empty")
	}

	compressor, err := rotation.NewCompressor(config.Codec)
	if err != nil {
		return nil, NewError(ErrCodeArgument, "config", "", err)
	}

	g := &Generator{
		config:     config,
		log:        config.Logger,
		notifier:   config.Notifier,
		metrics:    config.Metrics,
		compressor: compressor,
	}
	if g.log == nil {
		g.log = logging.Discard()
	}
	if g.notifier == nil {
		g.notifier = notify.Nop{}
	}
	if g.metrics == nil {
		g.metrics = metrics.NewCollector()
	}
	if config.Opener == nil {
		config.Opener = backends.OpenFile
	}
	if config.StartTime.IsZero() {
		config.StartTime = clock.DefaultStart
	}

	provider := config.Provider
	if provider == nil {
		provider = record.NewSeededProvider(0)
	}
	g.records = record.NewGenerator(provider)
	compressor.SetMetricsHandler(g.metrics.TrackEvent)

	return g, nil
}

// State returns the step the last run is at; StateDone or StateFailed once
// Run has returned.
func (g *Generator) State() State {
	return g.state
}

// Metrics returns the collector used for runs.
func (g *Generator) Metrics() *metrics.Collector {
	return g.metrics
}

func (g *Generator) enter(s State, task *FileTask) {
	g.state = s
	if task != nil {
		g.log.DebugWithFields("State change", map[string]interface{}{
			"state": s.String(),
			"file":  task.Name,
		})
	}
}

// Run writes every file of spec in order. Files finished before a failure
// are left on disk.
func (g *Generator) Run(spec TargetSpec) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	dir := g.config.OutputDir

	fail := func(source string, err error) (*Result, error) {
		g.state = StateFailed
		g.metrics.TrackError(source)
		result.Metrics = g.metrics.GetMetrics()
		g.log.ErrorWithFields("Run failed", map[string]interface{}{
			"run_id": result.RunID,
			"error":  err.Error(),
		})
		g.notify(notify.Event{Type: notify.EventRunFailed, RunID: result.RunID, OutputDir: dir, Error: err.Error()})
		return result, err
	}

	if spec.Len() == 0 {
		return fail("argument", ErrArgument("not enough arguments"))
	}

	lock, err := LockOutputDir(dir)
	if err != nil {
		return fail("lock", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			g.log.Warnf("Failed to release output directory lock: %v", err)
		}
	}()

	if g.config.ResetDir {
		err = PrepareOutputDir(dir)
	} else {
		err = EnsureOutputDir(dir)
	}
	if err != nil {
		return fail("prepare", err)
	}

	g.notify(notify.Event{Type: notify.EventRunStarted, RunID: result.RunID, OutputDir: dir, Files: spec.Len()})

	clk := clock.New(g.config.StartTime)
	for _, task := range Plan(spec, dir) {
		task := task
		fr, source, err := g.writeFile(&task, clk)
		if err != nil {
			return fail(source, err)
		}
		result.Files = append(result.Files, fr)

		g.notify(notify.Event{
			Type:      notify.EventFileCompleted,
			RunID:     result.RunID,
			OutputDir: dir,
			File: &notify.FileInfo{
				Name:           task.Name,
				Path:           fr.FinalPath,
				TargetBytes:    task.TargetBytes,
				PlannedRecords: task.PlannedRecords,
				ActualBytes:    fr.ActualBytes,
				Compressed:     fr.Compressed,
			},
		})

		g.enter(StateAdvancingDay, &task)
		clk.AdvanceToNextMidnight()
	}

	g.state = StateDone
	result.Metrics = g.metrics.GetMetrics()
	g.log.InfoWithFields("Run completed", map[string]interface{}{
		"run_id":  result.RunID,
		"files":   len(result.Files),
		"records": result.Metrics.RecordsWritten,
		"bytes":   result.Metrics.BytesWritten,
	})
	g.notify(notify.Event{Type: notify.EventRunCompleted, RunID: result.RunID, OutputDir: dir, Files: len(result.Files)})

	return result, nil
}

// writeFile runs one file through create, write, verify and compress.
// On error it also returns the metrics source to charge.
func (g *Generator) writeFile(task *FileTask, clk *clock.Clock) (FileResult, string, error) {
	started := time.Now()
	fr := FileResult{Task: *task}

	g.enter(StatePreparingFile, task)
	g.log.Infof("Creating file of %v GB, writing %d logs", task.Gigabytes, task.PlannedRecords)

	w, err := g.config.Opener(task.Path, g.config.BufferSize)
	if err != nil {
		return fr, "create", ErrIO("create", task.Path, err)
	}

	g.enter(StateWritingRecords, task)
	fr.FirstRecord = clk.Now()
	for i := uint64(0); i < task.PlannedRecords; i++ {
		fr.LastRecord = clk.Now()
		if err := w.WriteRecord(g.records.Generate(fr.LastRecord)); err != nil {
			_ = w.Close()
			return fr, "write", ErrIO("write", task.Path, err)
		}
		clk.AdvanceOneSecond()
	}
	fr.Records = w.GetStats().WriteCount

	if err := w.Close(); err != nil {
		return fr, "write", ErrIO("close", task.Path, err)
	}

	g.enter(StateVerifyingSize, task)
	actual, err := backends.FileSize(task.Path)
	if err != nil {
		return fr, "verify", ErrIO("stat", task.Path, err)
	}
	fr.ActualBytes = actual
	if actual < task.TargetBytes {
		return fr, "verify", ErrSizeShortfall(task.Path, task.TargetBytes, actual)
	}
	g.log.Infof("The file `%s` of %d bytes has been created", task.Path, actual)

	fr.FinalPath = task.Path
	if rotation.IsEligible(task.Name) {
		g.enter(StateCompressingFile, task)
		g.log.Infof("Compressing the file")
		compressed, err := g.compressor.Compress(task.Path)
		if err != nil {
			return fr, "compress", ErrIO("compress", task.Path, err)
		}
		fr.FinalPath = compressed
		fr.Compressed = true
		g.log.DebugWithFields("File compressed", map[string]interface{}{
			"path":  compressed,
			"codec": g.compressor.Codec().String(),
		})
	} else {
		g.enter(StateSkippingCompression, task)
	}

	g.metrics.TrackFile(fr.Records, actual, time.Since(started))
	return fr, "", nil
}

func (g *Generator) notify(event notify.Event) {
	event.Time = time.Now()
	if err := g.notifier.Notify(event); err != nil {
		g.log.WarnWithFields("Failed to publish event", map[string]interface{}{
			"event": event.Type,
			"error": err.Error(),
		})
	}
}

// Run is a convenience wrapper creating a Generator from options and running spec.
func Run(spec TargetSpec, options ...Option) (*Result, error) {
	g, err := NewWithOptions(options...)
	if err != nil {
		return nil, err
	}
	return g.Run(spec)
}
