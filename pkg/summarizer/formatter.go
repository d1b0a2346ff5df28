package summarizer

import (
	"fmt"
	"sort"
	"strings"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate func(string) string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Conversion Summary"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))
	if s.RunID != "" {
		fmt.Fprintf(&b, "- %s: `%s`\n", t("Run ID"), s.RunID)
	}

	fmt.Fprintf(&b, "\n## %s\n\n", t("Input"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Input.Path != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Source"), s.Input.Path)
	}
	fmt.Fprintf(&b, "| %s | %dx%d |\n", t("Size"), s.Input.Width, s.Input.Height)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Pixel Format"), orNA(t, s.Input.Format))
	fmt.Fprintf(&b, "| %s | %s / %s |\n", t("Color"), orNA(t, s.Input.Matrix), orNA(t, s.Input.Range))
	if s.Input.FrameRate > 0 {
		fmt.Fprintf(&b, "| %s | %.2f fps |\n", t("Frame Rate"), s.Input.FrameRate)
	} else {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Frame Rate"), t("N/A"))
	}

	fmt.Fprintf(&b, "\n## %s\n\n", t("Frames"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %d |\n", t("Read"), s.Frames.Read)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Converted"), s.Frames.Converted)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Dropped"), s.Frames.Dropped)
	fmt.Fprintf(&b, "| %s | %d ms |\n", t("Elapsed"), s.Frames.ElapsedMs)

	if len(s.Frames.DropReasons) > 0 {
		reasons := make([]string, 0, len(s.Frames.DropReasons))
		for r := range s.Frames.DropReasons {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)

		fmt.Fprintf(&b, "\n### %s\n\n", t("Dropped Frames"))
		for _, r := range reasons {
			fmt.Fprintf(&b, "- %s: %d\n", r, s.Frames.DropReasons[r])
		}
	}

	fmt.Fprintf(&b, "\n## %s\n\n", t("Output"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Output.SnapshotDir != "" {
		fmt.Fprintf(&b, "| %s | %s (%s) |\n", t("Snapshots"), s.Output.SnapshotDir, s.Output.SnapshotFormat)
	}
	if s.Output.GIFPath != "" {
		fmt.Fprintf(&b, "| %s | %s (%d %s) |\n", t("Animation"), s.Output.GIFPath, s.Output.GIFFrames, t("frames"))
	}
	fmt.Fprintf(&b, "| %s | %d |\n", t("Files"), s.Output.Files)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Bytes Written"), FormatBytes(s.Output.BytesWritten))

	return b.String()
}

func orNA(t func(string) string, s string) string {
	if s == "" {
		return t("N/A")
	}
	return s
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.2f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(unit*unit))
	}
}
