package sweep

import (
	"fmt"
	"io"
	"log"
	"time"

	"path-sweep/internal/database"
	"path-sweep/internal/fsops"
	"path-sweep/internal/metrics"
	"path-sweep/internal/safety"

	"github.com/prometheus/client_golang/prometheus"
)

// SweepLogger interface for structured diagnostic logging
type SweepLogger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// sweepStdLogger wraps standard log.Logger to implement SweepLogger
type sweepStdLogger struct {
	*log.Logger
}

func (l *sweepStdLogger) Info(msg string, args ...interface{}) {
	l.logWithLevel("INFO", msg, args...)
}

func (l *sweepStdLogger) Error(msg string, args ...interface{}) {
	l.logWithLevel("ERROR", msg, args...)
}

func (l *sweepStdLogger) logWithLevel(level, msg string, args ...interface{}) {
	var parts []interface{}
	parts = append(parts, fmt.Sprintf("[%s]", level), msg)
	parts = append(parts, args...)
	l.Logger.Println(parts...)
}

// Metrics interface for sweep metrics
type Metrics interface {
	FilesRemovedTotal() prometheus.Counter
	DirsRemovedTotal() prometheus.Counter
	NotFoundTotal() prometheus.Counter
	ErrorsTotal() prometheus.Counter
	BytesFreedTotal() prometheus.Counter
}

// sweepMetrics wraps global metrics to implement Metrics interface
type sweepMetrics struct{}

func (m *sweepMetrics) FilesRemovedTotal() prometheus.Counter { return metrics.FilesRemovedTotal }
func (m *sweepMetrics) DirsRemovedTotal() prometheus.Counter  { return metrics.DirsRemovedTotal }
func (m *sweepMetrics) NotFoundTotal() prometheus.Counter     { return metrics.NotFoundTotal }
func (m *sweepMetrics) ErrorsTotal() prometheus.Counter       { return metrics.ErrorsTotal }
func (m *sweepMetrics) BytesFreedTotal() prometheus.Counter   { return metrics.BytesFreedTotal }

// Runner removes a fixed list of targets in order, writing one outcome
// line per operation to out. A failed delete never aborts the run.
type Runner struct {
	out       io.Writer
	logger    SweepLogger
	metrics   Metrics
	deleter   fsops.Deleter
	validator *safety.Validator
	db        *database.SweepDB // history of delete attempts, optional
}

// NewRunner creates a Runner writing outcome lines to out.
// The out stream carries only the outcome lines; diagnostics go to the
// logger.
func NewRunner(out io.Writer, logger *log.Logger, db *database.SweepDB) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		out:     out,
		logger:  &sweepStdLogger{Logger: logger},
		metrics: &sweepMetrics{},
		deleter: fsops.OSDeleter{},
		db:      db,
	}
}

// SetDeleter replaces the filesystem capability (used in tests)
func (r *Runner) SetDeleter(d fsops.Deleter) {
	r.deleter = d
}

// SetValidator enables safety validation of every target before deletion
func (r *Runner) SetValidator(v *safety.Validator) {
	r.validator = v
}

// Run processes every file target in order, then the directory target,
// then writes the final completion line. Always returns one Result per
// attempted target; an absent directory produces neither a Result nor
// an outcome line.
func (r *Runner) Run(targets Targets) []Result {
	results := make([]Result, 0, len(targets.Files)+1)

	for _, path := range targets.Files {
		res := r.sweepFile(path)
		r.record(res)
		results = append(results, res)
	}

	if targets.Directory != "" {
		if res, attempted := r.sweepDirectory(targets.Directory); attempted {
			r.record(res)
			results = append(results, res)
		}
	}

	fmt.Fprintln(r.out, "Cleanup complete")
	return results
}

func (r *Runner) sweepFile(path string) Result {
	if !r.deleter.Exists(path) {
		fmt.Fprintf(r.out, "File not found: %s\n", path)
		return Result{Path: path, Outcome: OutcomeNotFound}
	}

	if r.validator != nil {
		if err := r.validator.ValidateTarget(path); err != nil {
			fmt.Fprintf(r.out, "Error removing %s: %v\n", path, err)
			return Result{Path: path, Outcome: OutcomeFailed, Err: err}
		}
	}

	size := r.deleter.Size(path)
	if err := r.deleter.Remove(path); err != nil {
		fmt.Fprintf(r.out, "Error removing %s: %v\n", path, err)
		return Result{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	fmt.Fprintf(r.out, "Removed %s\n", path)
	return Result{Path: path, Outcome: OutcomeRemoved, Size: size}
}

// sweepDirectory reports attempted=false when the directory is absent:
// an absent directory target is silent, unlike absent files.
func (r *Runner) sweepDirectory(path string) (Result, bool) {
	if !r.deleter.Exists(path) {
		return Result{}, false
	}

	if r.validator != nil {
		if err := r.validator.ValidateTarget(path); err != nil {
			fmt.Fprintf(r.out, "Error removing directory %s: %v\n", path, err)
			return Result{Path: path, Dir: true, Outcome: OutcomeFailed, Err: err}, true
		}
	}

	size := r.deleter.Size(path)
	if err := r.deleter.RemoveAll(path); err != nil {
		fmt.Fprintf(r.out, "Error removing directory %s: %v\n", path, err)
		return Result{Path: path, Dir: true, Outcome: OutcomeFailed, Err: err}, true
	}

	fmt.Fprintf(r.out, "Removed directory %s\n", path)
	return Result{Path: path, Dir: true, Outcome: OutcomeRemoved, Size: size}, true
}

// record updates metrics, the history database, and the structured log
// for one result. History write failures are logged, never fatal.
func (r *Runner) record(res Result) {
	objectType := "file"
	if res.Dir {
		objectType = "directory"
	}

	switch res.Outcome {
	case OutcomeRemoved:
		if res.Dir {
			r.metrics.DirsRemovedTotal().Inc()
		} else {
			r.metrics.FilesRemovedTotal().Inc()
		}
		r.metrics.BytesFreedTotal().Add(float64(res.Size))
	case OutcomeNotFound:
		r.metrics.NotFoundTotal().Inc()
	case OutcomeFailed:
		r.metrics.ErrorsTotal().Inc()
	}

	if r.db != nil {
		errMsg := ""
		if res.Err != nil {
			errMsg = res.Err.Error()
		}
		if dbErr := r.db.RecordSweep(res.Outcome.String(), res.Path, objectType, res.Size, errMsg); dbErr != nil {
			r.logger.Error("Failed to record to database", "error", dbErr)
		}
	}

	r.logStructured(res, objectType)
}

// logStructured logs with structured format: timestamp, action, path, object type, size
func (r *Runner) logStructured(res Result, objectType string) {
	entry := fmt.Sprintf("[%s] %s path=%s object=%s size=%d",
		time.Now().UTC().Format(time.RFC3339),
		res.Outcome.String(),
		res.Path,
		objectType,
		res.Size,
	)
	if res.Err != nil {
		entry += fmt.Sprintf(" error=%q", res.Err.Error())
	}
	r.logger.Info(entry)
}
