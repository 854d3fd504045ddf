package viz

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fluidsim/internal/fluid"
	"github.com/san-kum/fluidsim/internal/frame"
	"github.com/san-kum/fluidsim/internal/metrics"
	pal "github.com/san-kum/fluidsim/internal/palette"
	"github.com/san-kum/fluidsim/internal/pointer"
)

const statusLines = 2

// LiveOptions configures an interactive session.
type LiveOptions struct {
	Params   fluid.Params
	Palette  pal.Palette
	FPS      int
	Autopath pointer.Path
	Exporter *frame.Exporter
	GIFDir   string
	Logger   *slog.Logger
}

type TickMsg time.Time

// Model is the bubbletea model of a live session. Each tick it steps the
// simulator, exports a token and redraws from the decoded token.
type Model struct {
	opts    LiveOptions
	sim     *fluid.Simulator
	sampler *metrics.Sampler

	cols, rows int
	px, py     int
	hasPointer bool
	autopilot  bool
	paused     bool

	art       string
	stats     metrics.FrameStats
	err       error
	recording bool
	recorded  []*image.Paletted
	lastFrame time.Time
	fps       float64
	savedGIF  string
}

func NewLive(opts LiveOptions) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Exporter == nil {
		opts.Exporter = frame.NewExporter()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if err := opts.Palette.Validate(); err != nil {
		return Model{}, err
	}

	sim, err := fluid.New(opts.Params, fluid.WithLogger(opts.Logger))
	if err != nil {
		return Model{}, err
	}

	return Model{
		opts:    opts,
		sim:     sim,
		sampler: metrics.NewSampler(),
		cols:    80,
		rows:    24 - statusLines,
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 1)
		m.rows = max(msg.Height-statusLines, 1)
		return m, nil
	case tea.MouseMsg:
		p := m.sim.Params()
		m.px, m.py = CellToGrid(msg.X, msg.Y, m.cols, m.rows, p.Width, p.Height)
		m.hasPointer = true
		m.autopilot = false
		return m, nil
	case TickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1 / dt
			}
		}
		m.lastFrame = now
		m.advance()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "a":
		if m.opts.Autopath != nil {
			m.autopilot = !m.autopilot
		}
	case "r":
		if sim, err := fluid.New(m.opts.Params, fluid.WithLogger(m.opts.Logger)); err == nil {
			m.sim = sim
			m.hasPointer = false
		}
	case "g":
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.recorded = m.recorded[:0]
		}
	}
	return m, nil
}

// advance runs one consumer iteration: step when a pointer is known, then
// export, decode and draw.
func (m *Model) advance() {
	if !m.paused {
		if m.autopilot {
			m.px, m.py = m.opts.Autopath.At(m.sim.Frame())
			m.hasPointer = true
		}
		if m.hasPointer {
			if err := m.sim.Step(m.px, m.py, m.opts.Palette); err != nil {
				m.err = err
			}
		}
	}

	token, err := m.opts.Exporter.Token(m.sim.Canvas())
	if err != nil {
		m.err = err
		return
	}
	img, err := frame.DecodeToken(token)
	if err != nil {
		m.err = err
		return
	}

	m.art = HalfBlock(img, m.cols, m.rows)
	m.stats = m.sampler.Sample(m.sim.State())
	m.stats.Frame = m.sim.Frame()
	m.stats.PointerX, m.stats.PointerY = m.px, m.py
	m.stats.TokenBytes = len(token)

	if m.recording {
		m.recorded = append(m.recorded, toPaletted(img))
	}
}

func toPaletted(img image.Image) *image.Paletted {
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, img.Bounds(), img, image.Point{})
	return p
}

func (m *Model) stopRecording() {
	m.recording = false
	if len(m.recorded) == 0 {
		return
	}
	path, err := writeGIF(m.opts.GIFDir, m.recorded, m.opts.FPS)
	if err != nil {
		m.err = err
		return
	}
	m.savedGIF = path
	m.opts.Logger.Info("gif saved", "path", path, "frames", len(m.recorded))
	m.recorded = nil
}

func writeGIF(dir string, frames []*image.Paletted, fps int) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("fluid_%d.gif", time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	anim := gif.GIF{LoopCount: 0}
	delay := max(100/max(fps, 1), 1)
	for _, fr := range frames {
		anim.Image = append(anim.Image, fr)
		anim.Delay = append(anim.Delay, delay)
	}
	return path, gif.EncodeAll(f, &anim)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.art)
	sb.WriteByte('\n')

	state := runningStyle.Render("RUN")
	switch {
	case m.paused:
		state = pausedStyle.Render("PAUSE")
	case !m.hasPointer && !m.autopilot:
		state = hintStyle.Render("move the mouse")
	}
	parts := []string{
		titleStyle.Render("fluidsim"),
		state,
		metric("frame", fmt.Sprintf("%d", m.sim.Frame())),
		metric("ptr", fmt.Sprintf("%d,%d", m.px, m.py)),
		metric("ke", fmt.Sprintf("%.1f", m.stats.KineticEnergy)),
		metric("token", fmt.Sprintf("%dB", m.stats.TokenBytes)),
		metric("fps", fmt.Sprintf("%.0f", m.fps)),
	}
	if m.recording {
		parts = append(parts, recStyle.Render(fmt.Sprintf("REC %d", len(m.recorded))))
	} else if m.savedGIF != "" {
		parts = append(parts, metric("gif", m.savedGIF))
	}
	sb.WriteString(strings.Join(parts, "  "))
	sb.WriteByte('\n')

	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()))
	} else {
		sb.WriteString(hintStyle.Render("mouse: stir  space: pause  a: autopilot  r: reset  g: record gif  q: quit"))
	}
	return sb.String()
}

// Live runs an interactive session until the user quits.
func Live(opts LiveOptions) error {
	m, err := NewLive(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
