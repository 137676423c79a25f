// Package telemetry records per-iteration growth statistics and exports
// them as CSV.
package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"sfgen/internal/lattice"
)

// Sample captures one iteration of growth statistics.
type Sample struct {
	Iteration     int     `csv:"iteration"`
	Radius        int     `csv:"radius"`
	DiffusiveMass float64 `csv:"diffusive_mass"`
	BoundaryMass  float64 `csv:"boundary_mass"`
	CrystalMass   float64 `csv:"crystal_mass"`
	Attached      int     `csv:"attached"`
}

// Collector accumulates samples over a growth run.
type Collector struct {
	samples []Sample
}

// NewCollector returns an empty collector.
func NewCollector() *Collector { return &Collector{} }

// Record appends the lattice's current statistics.
func (c *Collector) Record(l *lattice.Lattice) {
	d, b, cm := l.MassTotals()
	c.samples = append(c.samples, Sample{
		Iteration:     l.Iteration(),
		Radius:        l.SnowflakeRadius(lattice.DefaultAngle),
		DiffusiveMass: d,
		BoundaryMass:  b,
		CrystalMass:   cm,
		Attached:      l.AttachedCount(),
	})
}

// Samples returns the recorded samples in iteration order.
func (c *Collector) Samples() []Sample { return c.samples }

// WriteCSV writes all samples as CSV, header included.
func (c *Collector) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(&c.samples, w); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}

// SaveCSV writes the samples to a file at path.
func (c *Collector) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	if err := c.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
