package utils

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter defines methods for reporting progress.
type ProgressReporter interface {
	// SetTotal reinitializes the progress bar with the new total count.
	SetTotal(total int)
	// Increment increases the progress by one.
	Increment()
}

// BarProgressReporter is a concrete implementation using progressbar. The bar
// renders on stderr so the metric lines on stdout stay machine-readable.
type BarProgressReporter struct {
	description string
	bar         *progressbar.ProgressBar
	total       int
}

// NewBarProgressReporter creates a new BarProgressReporter with the given total and description.
func NewBarProgressReporter(total int, description string) *BarProgressReporter {
	return &BarProgressReporter{
		description: description,
		bar:         newBar(total, description),
		total:       total,
	}
}

// SetTotal reinitializes the progress bar with the new total count.
func (p *BarProgressReporter) SetTotal(total int) {
	p.total = total
	p.bar = newBar(total, p.description)
}

// Increment increases the progress bar by one.
func (p *BarProgressReporter) Increment() {
	_ = p.bar.Add(1)
}

func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100e6), // rate-limit updates
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionUseANSICodes(true),
	)
}

// NullProgressReporter satisfies ProgressReporter without rendering anything.
type NullProgressReporter struct{}

func (NullProgressReporter) SetTotal(total int) {}

func (NullProgressReporter) Increment() {}
