package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogReporter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := &LogReporter{Logger: zap.New(core)}

	r.Begin("Deck", 2)
	r.Wrote(File{Name: "index.html", Bytes: 1500})
	r.Wrote(File{Name: "style.css", Bytes: 500})
	r.End("site")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "exporting presentation", entries[0].Message)
	assert.Equal(t, "index.html", entries[1].ContextMap()["name"])
	done := entries[3].ContextMap()
	assert.Equal(t, int64(2), done["files"])
	assert.Equal(t, int64(2000), done["bytes"])
}

func TestTerminalReporterSummary(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{Out: &buf}

	r.Begin("Deck", 1)
	r.Wrote(File{Name: "index.html", Bytes: 2000})
	r.End("out")

	assert.Contains(t, buf.String(), "Deck: 1 file, 2.0 kB written to out\n")
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	_, ok := NewReporter(zap.NewNop()).(*LogReporter)
	assert.True(t, ok)
}

func TestNop(t *testing.T) {
	var r Reporter = Nop{}
	r.Begin("Deck", 1)
	r.Wrote(File{Name: "x"})
	r.End("out")
}
