package viz

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/sparks/internal/engine"
	"github.com/san-kum/sparks/internal/input"
	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	statsWidth      = 44
	historyCapacity = 120
	headerRows      = 1
)

var (
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(statsWidth)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Source is the engine surface the live view needs.
type Source interface {
	Update(dt int64)
	SpawnEffect(pos physics.Vec2, c engine.Color) error
	Particles() iter.Seq[engine.Particle]
	Stats() engine.Stats
	Viewport() physics.Bounds
}

type TickMsg time.Time

// Model is the bubbletea model for the live terminal view. Clicking or
// dragging on the canvas spawns effects.
type Model struct {
	src      Source
	title    string
	fps      int
	canvas   *Canvas
	mouse    *input.Mouse
	spawner  *input.Spawner
	pacer    *sim.Pacer
	script   *sim.Script
	rng      *rand.Rand
	running  bool
	showHelp bool
	stats    engine.Stats
	history  []float64
}

// NewModel builds a live view over src. spawner and script may be nil.
func NewModel(src Source, title string, fps int, spawner *input.Spawner, script *sim.Script) Model {
	if fps <= 0 {
		fps = 30
	}
	if spawner == nil {
		spawner = input.NewSpawner(src, nil, nil)
	}
	mouse := input.NewMouse(src.Viewport())
	mouse.Connect(spawner)
	return Model{
		src:     src,
		title:   title,
		fps:     fps,
		canvas:  NewCanvas(defaultCols-statsWidth, defaultRows-headerRows),
		mouse:   mouse,
		spawner: spawner,
		pacer:   sim.NewPacer(),
		script:  script,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		running: true,
		history: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	m.pacer.Delta()
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
			if m.running {
				m.pacer.Reset()
				m.pacer.Delta()
			}
		case "s":
			m.spawnRandom()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if ev, ok := m.translate(msg); ok {
			m.mouse.Dispatch(ev)
		}
	case tea.WindowSizeMsg:
		cols := max(msg.Width-statsWidth-2, 10)
		rows := max(msg.Height-headerRows-1, 5)
		m.canvas = NewCanvas(cols, rows)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// step advances the engine by the wall time since the previous frame and
// fires any scripted spawns that fell due.
func (m *Model) step() {
	m.src.Update(m.pacer.Delta())
	m.stats = m.src.Stats()
	if m.script != nil {
		m.script.Fire(m.stats.ClockMs, m.src)
	}

	m.history = append(m.history, float64(m.stats.Live))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	view := m.src.Viewport()
	for p := range m.src.Particles() {
		c := colorful.Color{R: float64(p.Color.R), G: float64(p.Color.G), B: float64(p.Color.B)}
		m.canvas.Plot(p.Position, view, c)
	}
}

func (m *Model) spawnRandom() {
	view := m.src.Viewport()
	pos := physics.Vec2{X: m.rng.Float32() * view.Width, Y: m.rng.Float32() * view.Height}
	m.spawner.Spawn(pos)
}

// translate maps a terminal mouse event onto viewport coordinates. Events
// outside the canvas are dropped.
func (m Model) translate(msg tea.MouseMsg) (input.Event, bool) {
	col, row := msg.X, msg.Y-headerRows
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return nil, false
	}
	pos := m.canvas.ToViewport(col, row, m.src.Viewport())

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return input.Wheel{Pos: pos, Delta: 1}, true
	case tea.MouseButtonWheelDown:
		return input.Wheel{Pos: pos, Delta: -1}, true
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		return input.MouseMove{Pos: pos}, true
	case tea.MouseActionPress, tea.MouseActionRelease:
		btn, ok := buttonFor(msg.Button)
		if !ok {
			// Some terminals report releases without a button.
			if msg.Action != tea.MouseActionRelease {
				return nil, false
			}
			btn = input.ButtonLeft
		}
		return input.MouseButton{Pos: pos, Button: btn, Down: msg.Action == tea.MouseActionPress}, true
	}
	return nil, false
}

func buttonFor(b tea.MouseButton) (input.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return input.ButtonLeft, true
	case tea.MouseButtonRight:
		return input.ButtonRight, true
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle, true
	}
	return 0, false
}

func (m Model) View() string {
	status := Running.Render("RUNNING")
	if !m.running {
		status = Paused.Render("PAUSED")
	}
	header := GradientText(m.title, "#ffcc33", "#ff4d4d") + "  " + status

	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(StatLabel.Render(label) + StatValue.Render(value) + "\n")
	}
	row("Live", fmt.Sprintf("%d", m.stats.Live))
	row("Tick", fmt.Sprintf("%d", m.stats.Tick))
	row("Clock", fmt.Sprintf("%.2fs", float64(m.stats.ClockMs)/1000))
	row("Workers", fmt.Sprintf("%d", m.stats.Workers))
	row("Effects", fmt.Sprintf("%d", m.stats.Spawned))
	row("Dropped", fmt.Sprintf("%d", m.stats.Rejected))
	row("Overflow", fmt.Sprintf("%d", m.stats.Overflow))
	s.WriteString("\n" + StatLabel.Render("Capacity") + Gauge(float64(m.stats.Live)/engine.Capacity, 24) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("live particles"))
		s.WriteString(Chart.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("click/drag spawn  wheel hue\nspace pause  s random  ? help  q quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), statsStyle.Render(s.String()))
	view := header + "\n" + main
	if m.showHelp {
		return helpOverlay + "\n" + view
	}
	return view
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Click    - Spawn an effect          ║
║  Drag     - Spawn a trail of effects ║
║  Wheel    - Rotate spawn hue         ║
║  Space    - Pause/Resume             ║
║  S        - Spawn at random          ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// RunLive runs the live view until the user quits.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
