package viz

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bodelab/internal/bode"
	"github.com/san-kum/bodelab/internal/config"
	"github.com/san-kum/bodelab/internal/tf"
)

var shapeInfo = map[tf.Kind]string{
	tf.KindRealPole:    "K / (τs + 1)^n",
	tf.KindSecondOrder: "K / (τ²s² + 2τζs + 1)",
	tf.KindDeadTime:    "exp(-Ds)",
}

// App binds the configured sliders of one shape to its parameters. Every
// accepted key that changes a parameter re-evaluates the response before
// the next frame is drawn.
type App struct {
	cfg     *config.Config
	kind    tf.Kind
	params  map[tf.Kind]tf.Params
	initial map[tf.Kind]tf.Params
	cursor  int
	editing bool
	editBuf string
	preset  int
	status  string

	result  *bode.Result
	err     error
	renders int

	theme         int
	width, height int
}

// NewApp starts on kind with params. The other shapes start from their
// configured defaults.
func NewApp(cfg *config.Config, kind tf.Kind, params tf.Params) App {
	m := App{
		cfg:     cfg,
		kind:    kind,
		params:  make(map[tf.Kind]tf.Params),
		initial: make(map[tf.Kind]tf.Params),
		width:   100,
		height:  32,
	}
	for _, k := range tf.Kinds() {
		p := tf.DefaultParams(k)
		if k == cfg.Params.Kind {
			p = cfg.Params
		}
		m.params[k], m.initial[k] = p, p
	}
	params.Kind = kind
	m.params[kind], m.initial[kind] = params, params
	m.recompute()
	return m
}

func (m App) Kind() tf.Kind { return m.kind }

func (m App) Params() tf.Params { return m.params[m.kind] }

func (m App) Result() *bode.Result { return m.result }

func (m App) Err() error { return m.err }

// Renders counts evaluations since NewApp.
func (m App) Renders() int { return m.renders }

func (m App) Controls() []config.Control { return m.cfg.ControlsFor(m.kind) }

// WithTheme selects a color theme by name.
func (m App) WithTheme(name string) App {
	m.theme = themeIndex(name)
	return m
}

func (m *App) recompute() {
	m.result, m.err = bode.Evaluate(m.params[m.kind], m.cfg.Grid)
	m.renders++
}

func (m *App) setParams(p tf.Params) {
	m.params = maps.Clone(m.params)
	m.params[m.kind] = p
	m.recompute()
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if m.editing {
		return m.editKey(msg), nil
	}

	controls := m.Controls()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(controls)-1 {
			m.cursor++
		}
	case "left", "h":
		m.nudge(controls, -1)
	case "right", "l":
		m.nudge(controls, 1)
	case "H":
		m.nudge(controls, -10)
	case "L":
		m.nudge(controls, 10)
	case "enter", " ":
		if m.cursor < len(controls) {
			m.editing = true
			m.editBuf = strconv.FormatFloat(controls[m.cursor].Value(m.Params()), 'g', -1, 64)
		}
	case "tab":
		kinds := tf.Kinds()
		m.kind = kinds[(int(m.kind)+1)%len(kinds)]
		m.cursor, m.preset, m.status = 0, 0, ""
		m.recompute()
	case "shift+tab":
		kinds := tf.Kinds()
		m.kind = kinds[(int(m.kind)+len(kinds)-1)%len(kinds)]
		m.cursor, m.preset, m.status = 0, 0, ""
		m.recompute()
	case "p":
		names := config.ListPresets(m.kind.String())
		if len(names) > 0 {
			name := names[m.preset%len(names)]
			m.preset++
			if p, err := config.GetPreset(m.kind.String(), name); err == nil {
				m.status = "preset " + name
				m.setParams(p)
			}
		}
	case "r":
		m.status = "reset"
		m.setParams(m.initial[m.kind])
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	}
	return m, nil
}

func (m *App) nudge(controls []config.Control, steps int) {
	if m.cursor >= len(controls) {
		return
	}
	m.status = ""
	m.setParams(controls[m.cursor].Nudge(m.Params(), steps))
}

func (m App) editKey(msg tea.KeyMsg) App {
	switch msg.String() {
	case "enter":
		controls := m.Controls()
		v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64)
		if err != nil {
			m.status = fmt.Sprintf("not a number: %q", m.editBuf)
		} else if m.cursor < len(controls) {
			m.status = ""
			m.setParams(controls[m.cursor].Set(m.Params(), v))
		}
		m.editing, m.editBuf = false, ""
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 {
			c := s[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
				m.editBuf += s
			}
		}
	}
	return m
}

func (m App) View() string {
	th := Themes[m.theme]
	st := newStyles(th)

	var b strings.Builder
	b.WriteString("\n  " + GradientText("BODELAB", th.Secondary, th.Primary) + "  ")
	b.WriteString(st.muted.Render(m.kind.String()+"  "+shapeInfo[m.kind]) + "\n")
	b.WriteString("  " + st.muted.Render(Separator(40)) + "\n\n")

	b.WriteString(m.viewSliders(st))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("  " + st.warn.Render("error: "+m.err.Error()) + "\n")
	} else if m.result != nil {
		b.WriteString(m.viewPanels(st))
		b.WriteString(m.viewSummary(st))
	}

	if m.status != "" {
		b.WriteString("  " + st.warn.Render(m.status) + "\n")
	}
	b.WriteString("\n  " + hints(st,
		"j/k", "select",
		"h/l", "adjust",
		"enter", "type",
		"tab", "shape",
		"p", "preset",
		"r", "reset",
		"t", "theme",
		"q", "quit",
	) + "\n")
	return b.String()
}

func (m App) viewSliders(st styles) string {
	var b strings.Builder
	p := m.Params()
	for i, ctl := range m.Controls() {
		v := ctl.Value(p)
		valStr := fmt.Sprintf("%8.3g", v)
		if m.editing && i == m.cursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		bar := SliderBar(v, ctl.Min, ctl.Max, 24)
		rng := fmt.Sprintf("[%g, %g]", ctl.Min, ctl.Max)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("  %s %s %s %s %s\n",
				st.key.Render("▸"),
				st.selected.Render(fmt.Sprintf("%-6s", ctl.Label)),
				st.value.Render(valStr),
				st.curve.Render(bar),
				st.muted.Render(rng)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s %s %s\n",
				st.label.Render(fmt.Sprintf("%-6s", ctl.Label)),
				st.label.Render(valStr),
				st.muted.Render(bar),
				st.muted.Render(rng)))
		}
	}
	return b.String()
}

func (m App) viewPanels(st styles) string {
	limits := m.cfg.Limits
	panels := 2
	if m.kind == tf.KindSecondOrder {
		panels = 3
	}
	w := (m.width - 6*panels) / panels
	if w < 16 {
		w = 16
	}
	if w > 60 {
		w = 60
	}
	h := m.height/2 - 6
	if h < 6 {
		h = 6
	}

	box := func(title string, c *Canvas) string {
		return st.panel.Render(st.title.Render(title) + "\n" + st.curve.Render(c.String()))
	}
	views := []string{
		box("|G(jω)|", MagnitudePanel(m.result, limits.Magnitude, w, h)),
		box("phase (rad)", PhasePanel(m.result, limits.Phase, w, h)),
	}
	if m.kind == tf.KindSecondOrder {
		side := h * 2
		if side > w {
			side = w
		}
		views = append(views, box("poles", PolePanel(m.result.Poles, limits.PoleWindow, side, side/2)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...) + "\n"
}

func (m App) viewSummary(st styles) string {
	var parts []string
	if as := m.result.Asymptotes; as != nil {
		parts = append(parts,
			st.label.Render("corner ")+st.value.Render(fmt.Sprintf("%.3g rad/s", as.Corner)),
			st.label.Render("slope ")+st.value.Render(fmt.Sprintf("%d dec/dec", -as.Order)),
			st.label.Render("phase → ")+st.value.Render(fmt.Sprintf("%.3g rad", as.HighPhase)))
	}
	if m.kind == tf.KindSecondOrder {
		parts = append(parts,
			st.label.Render("poles ")+st.value.Render(formatPoles(m.result.Poles)),
			st.muted.Render(bode.Damping(m.result.Poles)))
	}
	if m.kind == tf.KindDeadTime {
		parts = append(parts, st.label.Render("|G| ")+st.value.Render("1")+st.label.Render("  phase ")+st.value.Render(fmt.Sprintf("-%gω", m.Params().Delay)))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, "   ") + "\n"
}

func hints(st styles, pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(st.key.Render(pairs[i]) + st.muted.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

// Run blocks until the user quits the slider app.
func Run(m App) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
