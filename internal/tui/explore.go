// Package tui is the interactive presentation layer: it forwards user
// intents to the session and draws the latest completed frame with
// half-block truecolor cells, two plane pixels per terminal cell.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fractal/internal/colour"
	"github.com/san-kum/fractal/internal/config"
	"github.com/san-kum/fractal/internal/export"
	"github.com/san-kum/fractal/internal/session"
)

const (
	// hudLines is reserved at the bottom for the status bar and help.
	hudLines  = 2
	frameRate = 20
)

var (
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Background(lipgloss.Color("236")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	lineColour   = colour.Pack(160, 0, 160)
	markerColour = colour.Pack(255, 255, 255)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model wrapping one session.
type Model struct {
	sess   *session.Session
	cfg    *config.Config
	cols   int
	rows   int
	status string
}

func NewModel(cfg *config.Config) *Model {
	return &Model{sess: session.New(cfg), cfg: cfg}
}

// Run starts the explorer and blocks until quit.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.report(m.sess.Resize(m.pixelSize()))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tickMsg:
		return m, tick()
	}
	return m, nil
}

// pixelSize is the plane-pixel grid the terminal can show: one column of
// cells is one pixel wide, one row is two pixels tall.
func (m *Model) pixelSize() (w, h int) {
	w = m.cols
	h = (m.rows - hudLines) * 2
	if w < 1 {
		w = 1
	}
	if h < 2 {
		h = 2
	}
	return w, h
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.report(m.sess.PanBy(0, 0.1))
	case "down", "j":
		m.report(m.sess.PanBy(0, -0.1))
	case "left", "h":
		m.report(m.sess.PanBy(-0.1, 0))
	case "right", "l":
		m.report(m.sess.PanBy(0.1, 0))
	case "+", "=":
		m.report(m.sess.ZoomIn())
	case "-", "_":
		m.report(m.sess.ZoomOut())
	case "[":
		m.report(m.sess.SelectResolution(m.sess.ResolutionIndex() - 1))
	case "]":
		m.report(m.sess.SelectResolution(m.sess.ResolutionIndex() + 1))
	case "f":
		m.status = "full render"
		m.report(m.sess.FullRender())
	case "r":
		m.status = ""
		m.report(m.sess.Reset())
	case "t":
		v := m.sess.View()
		m.sess.TrajectoryAt(v.HalfW, v.HalfH)
	case "c":
		m.sess.ClearTrajectory()
	case "s":
		m.save()
	default:
		for i, opt := range m.sess.Options() {
			if msg.String() == string(opt.Key) {
				m.status = opt.Name
				m.report(m.sess.SelectFractal(i))
				break
			}
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	px := float64(msg.X)
	py := float64(msg.Y * 2)

	switch msg.Button {
	case tea.MouseButtonLeft:
		m.report(m.sess.PanTo(m.sess.View().ScreenToPlane(px, py)))
	case tea.MouseButtonRight:
		m.sess.TrajectoryAt(px, py)
	case tea.MouseButtonWheelUp:
		m.report(m.sess.ZoomIn())
	case tea.MouseButtonWheelDown:
		m.report(m.sess.ZoomOut())
	}
	return m, nil
}

func (m *Model) save() {
	f := m.sess.Frame()
	if f == nil {
		m.status = "nothing to save yet"
		return
	}
	path, err := export.SaveNext(f, m.cfg.ImageDir, m.sess.Option().Name)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + path
}

// report surfaces handler errors in the HUD; failed jobs keep the
// previous frame on screen.
func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

func (m *Model) View() string {
	if m.cols == 0 {
		return "starting..."
	}

	var b strings.Builder
	m.drawFrame(&b)
	b.WriteString(m.hud())
	return b.String()
}

// drawFrame samples the published frame (which may be at a reduced
// render resolution) back up to the terminal pixel grid and overlays the
// trajectory.
func (m *Model) drawFrame(b *strings.Builder) {
	w, h := m.pixelSize()
	frame := m.sess.Frame()
	overlay := m.overlayPixels(w, h)

	pixel := func(x, y int) colour.RGBA {
		if c, ok := overlay[y*w+x]; ok {
			return c
		}
		if frame == nil {
			return colour.Interior
		}
		fx := x * frame.Width / w
		fy := y * frame.Height / h
		return frame.Pix[fy*frame.Width+fx]
	}

	rows := h / 2
	for row := 0; row < rows; row++ {
		var lastTop, lastBottom colour.RGBA = 1, 1 // never a valid pixel
		for x := 0; x < w; x++ {
			top := pixel(x, row*2)
			bottom := pixel(x, row*2+1)
			if top != lastTop || bottom != lastBottom {
				tr, tg, tb := top.RGB()
				br, bg, bb := bottom.RGB()
				fmt.Fprintf(b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm", tr, tg, tb, br, bg, bb)
				lastTop, lastBottom = top, bottom
			}
			b.WriteRune('▀')
		}
		b.WriteString("\x1b[0m\n")
	}
}

// overlayPixels rasterizes the trajectory polyline and markers onto the
// terminal pixel grid.
func (m *Model) overlayPixels(w, h int) map[int]colour.RGBA {
	o := m.sess.Overlay()
	if o == nil {
		return nil
	}

	px := make(map[int]colour.RGBA)
	plot := func(x, y int, c colour.RGBA) {
		if x >= 0 && x < w && y >= 0 && y < h {
			px[y*w+x] = c
		}
	}

	for i := 1; i < len(o.Line); i++ {
		drawLine(o.Line[i-1].X, o.Line[i-1].Y, o.Line[i].X, o.Line[i].Y, func(x, y int) {
			plot(x, y, lineColour)
		})
	}
	for _, p := range o.Markers {
		plot(p.X, p.Y, markerColour)
	}
	plot(o.Start.X, o.Start.Y, markerColour)

	return px
}

// drawLine is Bresenham over integer pixels.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (m *Model) hud() string {
	v := m.sess.View()

	var progress string
	if m.sess.Rendering() {
		progress = progressBar(m.sess.Progress(), 16)
	} else {
		progress = "done"
	}

	left := accentStyle.Render(" "+m.sess.Option().Name+" ") + hudStyle.Render(fmt.Sprintf(
		" zoom 10^%.3f  re %.10f  im %.10f  iter %d/%d  res %s  %s ",
		math.Log10(v.Zoom), v.OffsetX, v.OffsetY,
		m.sess.Iterations(), m.sess.MaxIterations(),
		m.sess.Resolution().Name, progress,
	))
	if m.status != "" {
		left += errStyle.Render(" " + m.status + " ")
	}

	help := helpStyle.Render(" arrows pan · +/- zoom · 1-4 fractal · [/] res · f full · t orbit · s save · r reset · q quit")

	return padLine(left, m.cols) + "\n" + padLine(help, m.cols)
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("#", filled),
		strings.Repeat("-", width-filled),
		p*100)
}

func padLine(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
