// Package summarizer renders human-readable reports of conversion runs.
package summarizer

import "time"

// Summary contains everything reported about one run.
type Summary struct {
	GeneratedAt time.Time
	RunID       string

	Input  InputInfo
	Frames FrameStats
	Output OutputInfo
}

// InputInfo describes the frame source.
type InputInfo struct {
	Path      string
	Width     int
	Height    int
	Format    string
	Range     string
	Matrix    string
	FrameRate float64
}

// FrameStats counts frames through the run.
type FrameStats struct {
	Read        int
	Converted   int
	Dropped     int
	DropReasons map[string]int
	ElapsedMs   int64
}

// OutputInfo lists what was written.
type OutputInfo struct {
	SnapshotDir    string
	SnapshotFormat string
	Files          int
	BytesWritten   int64
	GIFPath        string
	GIFFrames      int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

func (b *Builder) WithRunID(id string) *Builder {
	b.summary.RunID = id
	return b
}

func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithFrames sets frame counts. Dropped is derived from the reasons when not set.
func (b *Builder) WithFrames(stats FrameStats) *Builder {
	if stats.Dropped == 0 {
		for _, n := range stats.DropReasons {
			stats.Dropped += n
		}
	}
	b.summary.Frames = stats
	return b
}

func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
