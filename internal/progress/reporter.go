// Package progress reports on a static export as its files are written.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// File is one exported file.
type File struct {
	Name  string
	Bytes int
}

// Reporter receives export progress. Begin is called once with the number of
// files, Wrote after each file lands on disk, and End once with the output
// directory, including when the export stops early.
type Reporter interface {
	Begin(title string, files int)
	Wrote(f File)
	End(dir string)
}

// NewReporter returns a LogReporter in CI, where a redrawn bar would only
// clutter the log, and a TerminalReporter otherwise.
func NewReporter(logger *zap.Logger) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LogReporter{Logger: logger}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// TerminalReporter draws a progress bar naming the file being written and
// prints a one-line summary when the export ends.
type TerminalReporter struct {
	Out io.Writer

	bar   *progressbar.ProgressBar
	title string
	tally tally
}

func (r *TerminalReporter) Begin(title string, files int) {
	r.title, r.tally = title, tally{}
	r.bar = progressbar.NewOptions(files,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("Exporting "+title),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Wrote(f File) {
	r.tally.add(f)
	if r.bar != nil {
		r.bar.Describe(f.Name)
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) End(dir string) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintf(r.Out, "%s: %s\n", r.title, r.tally.summary(dir))
}

// LogReporter writes one structured log entry per file.
type LogReporter struct {
	Logger *zap.Logger

	tally tally
}

func (r *LogReporter) Begin(title string, files int) {
	r.tally = tally{}
	r.logger().Info("exporting presentation", zap.String("title", title), zap.Int("files", files))
}

func (r *LogReporter) Wrote(f File) {
	r.tally.add(f)
	r.logger().Info("exported file", zap.String("name", f.Name), zap.Int("bytes", f.Bytes))
}

func (r *LogReporter) End(dir string) {
	r.logger().Info("export finished",
		zap.String("dir", dir),
		zap.Int("files", r.tally.files),
		zap.Int64("bytes", r.tally.bytes))
}

func (r *LogReporter) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Begin(string, int) {}
func (Nop) Wrote(File)        {}
func (Nop) End(string)        {}

type tally struct {
	files int
	bytes int64
}

func (t *tally) add(f File) {
	t.files++
	t.bytes += int64(f.Bytes)
}

func (t tally) summary(dir string) string {
	noun := "files"
	if t.files == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%d %s, %s written to %s", t.files, noun, humanize.Bytes(uint64(t.bytes)), dir)
}
