package viz

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chaosbloom/internal/audio"
	"github.com/san-kum/chaosbloom/internal/render"
)

const (
	// Scale is the number of engine pixels per braille dot on each axis.
	Scale = 8

	panelWidth      = 40
	historyCapacity = 240
	dotThreshold    = 24
)

type TickMsg time.Time

// Model drives a render engine from bubbletea ticks and shows the result on
// a braille canvas.
type Model struct {
	engine  *render.Engine
	monitor *audio.Monitor
	bg      color.RGBA
	fps     int

	canvas  *Canvas
	meter   *Meter
	loud    []float64
	stats   render.Stats
	running bool
	help    bool
	ready   bool
}

// NewModel wraps engine. monitor may be nil when capture is disabled.
func NewModel(engine *render.Engine, monitor *audio.Monitor, bg color.RGBA, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		engine:  engine,
		monitor: monitor,
		bg:      bg,
		fps:     fps,
		canvas:  NewCanvas(0, 0),
		meter:   NewMeter(fps, 6.0, 0.8),
		loud:    make([]float64, 0, historyCapacity),
		running: true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "c":
			w, h := m.engine.View().Size()
			m.engine.Resize(w, h)
		case "?":
			m.help = !m.help
		}
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running && m.ready {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// resize fits the canvas to the terminal and gives the engine a matching
// pixel area.
func (m Model) resize(cols, rows int) Model {
	cw := cols - panelWidth - 2
	ch := rows - 1
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	m.canvas = NewCanvas(cw, ch)
	m.engine.Resize(m.canvas.SubWidth()*Scale, m.canvas.SubHeight()*Scale)
	m.ready = true
	return m
}

func (m *Model) step() {
	m.stats = m.engine.Tick()
	m.meter.Update(render.LengthOffset(m.stats.Loudness, m.engine.Style().Ceiling, 1))

	m.loud = append(m.loud, m.stats.Loudness)
	if len(m.loud) > historyCapacity {
		m.loud = m.loud[1:]
	}

	m.canvas.Rasterize(m.engine.Surface().Image(), m.bg, Scale, dotThreshold)
}

func (m Model) micStatus() string {
	if m.monitor == nil {
		return StatusFailed.Render("off")
	}
	switch s := m.monitor.Status(); s {
	case audio.Active:
		return StatusRunning.Render(s.String())
	case audio.Failed:
		return StatusFailed.Render(s.String())
	default:
		return StatusPaused.Render(s.String())
	}
}

func (m Model) View() string {
	if !m.ready {
		return "sizing terminal..."
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("CHAOSBLOOM") + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.stats.Frame)) + "\n")
	s.WriteString(labelStyle.Render("Mic") + m.micStatus() + "\n")
	s.WriteString(labelStyle.Render("Loudness") + valueStyle.Render(fmt.Sprintf("%.4f", m.stats.Loudness)) + "\n")
	s.WriteString(labelStyle.Render("Offset") + valueStyle.Render(fmt.Sprintf("%.1f px", m.stats.Offset)) + "\n")
	s.WriteString(labelStyle.Render("Level") + ProgressBar(m.meter.Value(), 20) + "\n")

	if len(m.loud) > 1 {
		chart := asciigraph.Plot(m.loud, asciigraph.Height(4), asciigraph.Width(panelWidth-14), asciigraph.Caption("Loudness"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.monitor != nil {
		s.WriteString(labelStyle.Render("Spectrum") + SparklineChart(m.monitor.Bands(20), 20) + "\n")
	}

	if m.help {
		s.WriteString(helpStyle.Render("SPACE  pause/resume\nC      clear trails\n?      toggle help\nQ      quit"))
	} else {
		s.WriteString(helpStyle.Render("SP:Pause C:Clear ?:Help Q:Quit"))
	}

	canvasView := canvasStyle.Render(m.canvas.Render())
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run shows the model full screen until the user quits or ctx is done.
func Run(ctx context.Context, m Model, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "tui")

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("terminal session: %w", err)
	}
	if fm, ok := final.(Model); ok {
		logger.Info("terminal session ended", "frames", fm.stats.Frame)
	}
	return nil
}
