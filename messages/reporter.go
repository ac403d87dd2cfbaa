package messages

import (
	"io"
	"strings"
	"sync"

	"github.com/Swind/markbench/core"
	"github.com/charmbracelet/lipgloss"
)

// Style decorates reporter output. The zero value prints text unchanged.
type Style struct {
	Enabled bool
	Heading lipgloss.Style
	Result  lipgloss.Style
	Score   lipgloss.Style
}

// TerminalStyle is the colored style used when writing to a terminal.
func TerminalStyle() Style {
	return Style{
		Enabled: true,
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4")),
		Result:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54")),
		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2CD7C7")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#16858E")).
			Padding(0, 1),
	}
}

func (s Style) render(st lipgloss.Style, text string) string {
	if !s.Enabled {
		return text
	}
	return st.Render(strings.TrimSuffix(text, "\n")) + "\n"
}

// WriterReporter writes generator output to an io.Writer. The first write
// error is kept and later writes are skipped.
type WriterReporter struct {
	mu    sync.Mutex
	w     io.Writer
	gen   Generator
	style Style
	err   error
}

var _ core.Reporter = (*WriterReporter)(nil)

// NewWriterReporter creates a reporter writing to w.
func NewWriterReporter(w io.Writer, gen Generator, style Style) *WriterReporter {
	return &WriterReporter{w: w, gen: gen, style: style}
}

func (r *WriterReporter) BeginRun(workloadID string, threads int) {
	r.write(r.style.render(r.style.Heading, r.gen.TestMessage(workloadID, threads)))
}

func (r *WriterReporter) EndRun(result *core.RunResult) {
	r.write(r.style.render(r.style.Result, r.gen.ListResults(result)))
}

func (r *WriterReporter) Finish(scores core.Scores) {
	r.write(r.style.render(r.style.Score, r.gen.ListRhedstoneCount(scores)))
}

// Err returns the first write error, if any.
func (r *WriterReporter) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *WriterReporter) write(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}
