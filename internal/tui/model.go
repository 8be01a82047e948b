// Package tui shows the sky in a terminal with half-block characters:
// every cell carries two pixels, the top one as foreground and the
// bottom one as background.
package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/pixelsky/internal/buttons"
	"github.com/rook-computer/pixelsky/internal/config"
	"github.com/rook-computer/pixelsky/internal/host"
	"github.com/rook-computer/pixelsky/internal/sky"
	"github.com/rook-computer/pixelsky/internal/state"
)

const (
	// oversample is how many canvas pixels feed one terminal pixel per axis.
	oversample = 2
	// maxTerminalHz caps the repaint rate; every frame rewrites the whole screen.
	maxTerminalHz   = 30
	publishInterval = 250 * time.Millisecond
	halfBlock       = "▀"
)

var keyActions = map[string]buttons.Event{
	"q":      buttons.Exit,
	"esc":    buttons.Exit,
	"ctrl+c": buttons.Exit,
	"f4":     buttons.Exit,
	"m":      buttons.ToggleMotion,
	"f5":     buttons.ToggleMotion,
	"d":      buttons.ToggleDevice,
	"f6":     buttons.ToggleDevice,
	"h":      buttons.ToggleHUD,
	"f7":     buttons.ToggleHUD,
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c8d0ff")).Background(lipgloss.Color("#0f1b3d"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// frameMsg is the terminal host's native refresh callback.
type frameMsg time.Time

// Model is the Bubble Tea model driving one Stage.
type Model struct {
	Config   config.Config
	Store    *state.Store
	Controls *host.Controls
	Clock    sky.Clock
	Logger   host.Logger

	queue *host.Queue
	stage *host.Stage
	cols  int
	rows  int
	cells *image.RGBA

	lastPublish time.Time
}

func NewModel(cfg config.Config, store *state.Store, logger host.Logger) *Model {
	if store == nil {
		store = state.NewStore()
	}
	return &Model{Config: cfg, Store: store, Logger: logger, queue: host.NewQueue(16)}
}

// Run takes over the terminal until the viewer quits or ctx is done.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := p.Run()
	m.close()
	if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Post queues ev for the next frame. It is safe to call from any goroutine.
func (m *Model) Post(ev sky.Event) bool { return m.queue.Post(ev) }

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.FocusMsg:
		m.queue.Post(sky.VisibilityEvent{Visible: true})
	case tea.BlurMsg:
		m.queue.Post(sky.VisibilityEvent{Visible: false})
	case tea.KeyMsg:
		if action, ok := keyActions[msg.String()]; ok && m.press(action) {
			return m, tea.Quit
		}
	case frameMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) tick() tea.Cmd {
	hz := min(max(m.Config.Display.RefreshHz, 1), maxTerminalHz)
	return tea.Tick(time.Second/time.Duration(hz), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) press(action buttons.Event) (exit bool) {
	if m.Controls == nil {
		return action == buttons.Exit
	}
	return m.Controls.Press(action)
}

// resize maps the terminal to the canvas. The last row holds the status line.
func (m *Model) resize(cols, rows int) {
	m.cols, m.rows = cols, rows
	skyRows := rows - 1
	if cols <= 0 || skyRows <= 0 {
		m.cells = nil
		return
	}
	m.cells = image.NewRGBA(image.Rect(0, 0, cols, skyRows*2))

	w, h := cols*oversample, skyRows*2*oversample
	if m.stage == nil {
		m.stage = host.Mount(m.Config, w, h, oversample, m.Clock, m.Logger)
		m.Store.SetPhase(state.RUNNING)
		return
	}
	m.stage.Resize(w, h, oversample)
}

func (m *Model) step(now time.Time) sky.Frame {
	if m.stage == nil {
		return sky.Frame{}
	}
	m.stage.Drain(m.queue, m.Store)

	frame := m.stage.Tick()
	m.Store.UpdateSky(m.stage.Stats())
	if frame.Rendered {
		m.downsample()
		if now.Sub(m.lastPublish) >= publishInterval {
			m.Store.PublishFrame(m.stage.Canvas.Snapshot())
			m.lastPublish = now
		}
	}
	return frame
}

func (m *Model) downsample() {
	if m.cells == nil {
		return
	}
	src := m.stage.Image()
	xdraw.ApproxBiLinear.Scale(m.cells, m.cells.Bounds(), src, src.Bounds(), draw.Src, nil)
}

func (m *Model) View() string {
	if m.cells == nil {
		return "pixelsky: waiting for the terminal size"
	}
	return renderHalfBlocks(m.cells) + "\n" + m.statusLine()
}

func (m *Model) statusLine() string {
	snap := m.Store.Snapshot()
	if !snap.HUD {
		return helpStyle.Render("m motion  d device  h hud  q quit")
	}
	st := snap.Sky
	line := fmt.Sprintf("%s %s frames=%d stars=%d particles=%d passes=%s",
		snap.Phase, st.Device, st.Rendered, st.Stars, st.Particles, st.LastPasses)
	if snap.Preview.URL != "" {
		line += " " + snap.Preview.URL
	}
	if len(line) > m.cols {
		line = line[:m.cols]
	}
	return statusStyle.Width(m.cols).Render(line)
}

func (m *Model) close() {
	m.queue.Close()
	if m.stage != nil {
		m.stage.Close()
	}
	m.Store.SetPhase(state.STOPPED)
}

// renderHalfBlocks draws img two rows per line. Runs of identical cells share one style.
func renderHalfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		var runTop, runBottom string
		run := 0
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(runTop)).Background(lipgloss.Color(runBottom))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, run)))
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexOf(img.RGBAAt(x, y))
			bottom := top
			if y+1 < b.Max.Y {
				bottom = hexOf(img.RGBAAt(x, y+1))
			}
			if run > 0 && top == runTop && bottom == runBottom {
				run++
				continue
			}
			flush()
			runTop, runBottom, run = top, bottom, 1
		}
		flush()
	}
	return sb.String()
}

func hexOf(c color.RGBA) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}
