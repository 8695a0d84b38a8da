package generator

import (
	"math"
	"path/filepath"

	"github.com/wayneeseguin/loggen/pkg/naming"
	"github.com/wayneeseguin/loggen/pkg/sizing"
)

// TargetSpec is the validated, ordered list of file sizes in gigabytes.
type TargetSpec struct {
	sizes []float64
}

// NewTargetSpec validates sizes: at least one, each finite and > 0.
func NewTargetSpec(sizes ...float64) (TargetSpec, error) {
	if len(sizes) == 0 {
		return TargetSpec{}, ErrArgument("not enough arguments")
	}
	for _, s := range sizes {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return TargetSpec{}, ErrArgument("size `%v` cannot be parsed, it must be a finite number", s)
		}
		if s <= 0 {
			return TargetSpec{}, ErrArgument("size `%v` cannot be parsed, it must be greater than 0", s)
		}
	}
	return TargetSpec{sizes: append([]float64(nil), sizes...)}, nil
}

// Sizes returns a copy of the sizes in emission order.
func (t TargetSpec) Sizes() []float64 {
	return append([]float64(nil), t.sizes...)
}

// Len returns the number of files to produce.
func (t TargetSpec) Len() int {
	return len(t.sizes)
}

// FileTask describes one output file before it is written.
type FileTask struct {
	Index          int
	Name           string
	Path           string
	Gigabytes      float64
	TargetBytes    uint64
	PlannedRecords uint64
}

// Plan computes the tasks for spec, in emission order, rooted at dir.
func Plan(spec TargetSpec, dir string) []FileTask {
	namer := naming.NewNamer(naming.DefaultBaseName, spec.Len())
	tasks := make([]FileTask, spec.Len())
	for i, gb := range spec.sizes {
		name, _ := namer.Next()
		target := sizing.BytesFor(gb)
		tasks[i] = FileTask{
			Index:          i,
			Name:           name,
			Path:           filepath.Join(dir, name),
			Gigabytes:      gb,
			TargetBytes:    target,
			PlannedRecords: sizing.RecordCountFor(target),
		}
	}
	return tasks
}
