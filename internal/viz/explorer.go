package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/polyroot/internal/newton"
	"github.com/san-kum/polyroot/internal/poly"
)

const autoplayInterval = 300 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(autoplayInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Explorer steps through Newton-Raphson one iteration at a time and draws
// every iterate with its tangent line on a plot of the polynomial.
type Explorer struct {
	p, derivative poly.Poly
	cfg           newton.Config
	lo, hi        float64

	start, guess float64
	steps        []newton.Step
	converged    bool
	err          error

	autoplay       bool
	showDerivative bool
	theme          int
	width, height  int
}

func NewExplorer(p poly.Poly, guess float64, cfg newton.Config, lo, hi float64) Explorer {
	return Explorer{
		p:          p,
		derivative: p.Differentiate(),
		cfg:        cfg,
		lo:         lo,
		hi:         hi,
		start:      guess,
		guess:      guess,
		width:      80,
		height:     24,
	}
}

// RunExplorer starts the explorer in the alternate screen and blocks until
// the user quits.
func RunExplorer(p poly.Poly, guess float64, cfg newton.Config, lo, hi float64) error {
	_, err := tea.NewProgram(NewExplorer(p, guess, cfg, lo, hi), tea.WithAltScreen()).Run()
	return err
}

func (m Explorer) Init() tea.Cmd { return nil }

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		if !m.autoplay {
			return m, nil
		}
		m = m.Step()
		if m.Done() {
			m.autoplay = false
			return m, nil
		}
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nudge := (m.hi - m.lo) / 50
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "n", " ", "enter":
		m = m.Step()
	case "a":
		m.autoplay = !m.autoplay
		if m.autoplay {
			return m, tick()
		}
	case "r":
		m = m.Reset(m.start)
	case "left", "h":
		m = m.Reset(m.start - nudge)
	case "right", "l":
		m = m.Reset(m.start + nudge)
	case "d":
		m.showDerivative = !m.showDerivative
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	}
	return m, nil
}

// Step performs one Newton iteration unless the search already ended.
func (m Explorer) Step() Explorer {
	if m.Done() {
		return m
	}
	st, err := newton.Iterate(m.p, m.derivative, m.guess)
	if err != nil {
		m.err = err
		return m
	}
	st.Iteration = len(m.steps) + 1
	m.steps = append(m.steps, st)

	switch {
	case m.cfg.Diverged(st.Next):
		m.err = newton.ErrDiverged
	case m.cfg.Converged(st.Guess, st.Next):
		m.converged = true
	case m.cfg.MaxIterations > 0 && len(m.steps) >= m.cfg.MaxIterations:
		m.err = newton.ErrMaxIterations
	}
	m.guess = st.Next
	return m
}

// Reset restarts the search from guess.
func (m Explorer) Reset(guess float64) Explorer {
	m.start, m.guess = guess, guess
	m.steps = nil
	m.converged, m.err = false, nil
	return m
}

func (m Explorer) Done() bool {
	return m.converged || m.err != nil
}

func (m Explorer) Guess() float64 { return m.guess }

func (m Explorer) Converged() bool { return m.converged }

func (m Explorer) Err() error { return m.err }

func (m Explorer) Steps() []newton.Step { return m.steps }

func (m Explorer) View() string {
	th := Themes[m.theme]

	var b strings.Builder
	b.WriteString(Title.Render("newton explorer") + "  " + Subtle.Render(th.Name) + "\n")
	b.WriteString(KV("p(x)", m.p.String()) + "\n")
	b.WriteString(KV("p'(x)", m.derivative.String()) + "\n\n")

	plotW := max(m.width-4, 20)
	plotH := max(m.height-12, 6)
	pl := FitPlot(m.p, plotW, plotH, m.lo, m.hi)
	pl.DrawPoly(m.p)
	if m.showDerivative {
		pl.DrawOverlay(m.derivative)
	}
	for _, st := range m.steps {
		pl.DrawSegment(st.Guess, st.Value, st.Next, 0)
		pl.Mark(st.Guess, st.Value, IterateMark)
	}
	if m.converged {
		pl.Mark(m.guess, 0, RootMark)
	} else {
		pl.Mark(m.guess, m.p.Eval(m.guess), IterateMark)
	}
	b.WriteString(Panel.Render(strings.TrimRight(pl.Render(th), "\n")) + "\n")

	b.WriteString(KV("start", fmt.Sprintf("%.8g", m.start)) + "  ")
	b.WriteString(KV("iteration", fmt.Sprintf("%d", len(m.steps))) + "  ")
	b.WriteString(KV("x", fmt.Sprintf("%.10g", m.guess)) + "  ")
	b.WriteString(KV("p(x)", fmt.Sprintf("%.3e", m.p.Eval(m.guess))) + "\n")

	switch {
	case m.converged:
		b.WriteString(Good.Render("converged") + "\n")
	case errors.Is(m.err, newton.ErrZeroDerivative):
		b.WriteString(Bad.Render("derivative is zero, pick another start") + "\n")
	case m.err != nil:
		b.WriteString(Bad.Render(m.err.Error()) + "\n")
	case m.autoplay:
		b.WriteString(Value.Render("running") + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString(KeyHint.Render("n step  a autoplay  ←/→ move start  r reset  d derivative  t theme  q quit"))
	return b.String()
}
