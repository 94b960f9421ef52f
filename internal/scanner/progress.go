package scanner

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Progress reports scan progress to the user
type Progress interface {
	StartTask(description string, total int) Task
}

// Task is one tracked unit of work
type Task interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// IsInteractive reports whether stderr is a terminal outside CI
func IsInteractive() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// NewProgress returns a progress bar on stderr when enabled and interactive,
// and a no-op reporter otherwise
func NewProgress(enabled bool) Progress {
	if enabled && IsInteractive() {
		return &barProgress{writer: os.Stderr}
	}
	return NoOpProgress{}
}

type barProgress struct {
	writer io.Writer
}

func (p *barProgress) StartTask(description string, total int) Task {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(24),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &barTask{bar: bar}
}

type barTask struct {
	bar *progressbar.ProgressBar
}

func (t *barTask) Increment(n int)             { _ = t.bar.Add(n) }
func (t *barTask) Describe(description string) { t.bar.Describe(description) }
func (t *barTask) Complete()                   { _ = t.bar.Finish() }

// NoOpProgress discards all progress
type NoOpProgress struct{}

// StartTask returns a task that does nothing
func (NoOpProgress) StartTask(string, int) Task { return noOpTask{} }

type noOpTask struct{}

func (noOpTask) Increment(int)   {}
func (noOpTask) Describe(string) {}
func (noOpTask) Complete()       {}
