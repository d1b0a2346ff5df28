package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSummaryJSON saves the run summary as JSON.
	SaveSummaryJSON(data []byte) error

	// SaveRawFrame saves the untouched YUV bytes of a frame.
	SaveRawFrame(index int, data []byte) error

	// SaveConvertedFrame saves a converted frame.
	SaveConvertedFrame(index int, img image.Image) error
}
