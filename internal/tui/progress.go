package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Reporter renders aggregation progress. Report matches porekit.ProgressFunc
// and may be called from any goroutine.
type Reporter interface {
	Report(processed, total int)
	Finish()
}

// NewReporter returns a live bar in interactive mode and plain lines
// otherwise. cancel is invoked if the user quits the bar.
func NewReporter(mode Mode, w io.Writer, cancel func()) Reporter {
	if mode == ModeInteractive {
		return StartBar(w, cancel)
	}
	return NewPlain(w)
}

// Plain prints a line whenever progress crosses another tenth of the total.
type Plain struct {
	mu      sync.Mutex
	w       io.Writer
	decile  int
	total   int
	started bool
}

func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w, decile: -1}
}

func (p *Plain) Report(processed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total <= 0 {
		return
	}
	p.total = total
	if !p.started {
		p.started = true
		fmt.Fprintf(p.w, "Processing %d files\n", total)
	}
	if d := processed * 10 / total; d > p.decile {
		p.decile = d
		fmt.Fprintf(p.w, "  %3d%% (%d/%d)\n", d*10, processed, total)
	}
}

func (p *Plain) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started && p.decile < 10 {
		p.decile = 10
		fmt.Fprintf(p.w, "  100%% (%d/%d)\n", p.total, p.total)
	}
}

type progressMsg struct{ processed, total int }

type finishMsg struct{}

const maxBarWidth = 60

// barModel is the bubbletea model behind Bar.
type barModel struct {
	bar       progress.Model
	keys      KeyMap
	processed int
	total     int
	finished  bool
	cancelled bool
}

func newBarModel() barModel {
	return barModel{
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		keys: DefaultKeyMap(),
	}
}

func (m barModel) Init() tea.Cmd { return nil }

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.processed, m.total = msg.processed, msg.total
		return m, nil
	case finishMsg:
		m.finished = true
		if m.total > 0 {
			m.processed = m.total
		}
		return m, tea.Quit
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-20, maxBarWidth)
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}
	}
	return m, nil
}

func (m barModel) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.processed) / float64(m.total)
}

func (m barModel) View() string {
	counts := fmt.Sprintf(" %d/%d", m.processed, m.total)
	switch {
	case m.cancelled:
		return WarningStyle.Render(SymbolWarning+" cancelled at"+counts) + "\n"
	case m.finished:
		return m.bar.ViewAs(1) + SuccessStyle.Render(counts+" "+SymbolCheck) + "\n"
	default:
		return m.bar.ViewAs(m.percent()) + counts + "\n" + HelpStyle.Render(m.keys.HelpText()) + "\n"
	}
}

// Bar draws a live progress bar on a terminal.
type Bar struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// StartBar starts rendering to w.
func StartBar(w io.Writer, cancel func()) *Bar {
	b := &Bar{
		program: tea.NewProgram(newBarModel(), tea.WithOutput(w), tea.WithoutSignalHandler()),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(b.done)
		final, err := b.program.Run()
		if err != nil {
			return
		}
		if m, ok := final.(barModel); ok && m.cancelled && cancel != nil {
			cancel()
		}
	}()
	return b
}

func (b *Bar) Report(processed, total int) {
	b.program.Send(progressMsg{processed: processed, total: total})
}

// Finish completes the bar and waits for the final frame.
func (b *Bar) Finish() {
	b.once.Do(func() {
		b.program.Send(finishMsg{})
		<-b.done
	})
}
