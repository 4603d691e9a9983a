package tui

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/validate"
)

type state int

const (
	stateMenu state = iota
	stateConfig
	stateReplay
)

type field struct {
	name string
	text bool
}

var baseFields = []field{
	{name: "formula", text: true},
	{name: experiment.ParamX0},
	{name: experiment.ParamTolerance},
	{name: experiment.ParamIterLimit},
}

type model struct {
	registry *experiment.Registry
	req      experiment.Request

	state   state
	cursor  int
	methods []string

	fields      []field
	fieldCursor int
	editing     bool
	editBuf     string
	editErr     string

	run     *experiment.Run
	frame   int
	playing bool
	speed   time.Duration
	// standalone replays have no menu to return to.
	standalone bool

	width  int
	height int
}

// NewApp starts at the method menu; the chosen method is solved from req
// and its history replayed.
func NewApp(registry *experiment.Registry, req experiment.Request) *model {
	m := &model{
		registry: registry,
		req:      req,
		state:    stateMenu,
		methods:  registry.ListMethods(),
		speed:    120 * time.Millisecond,
		width:    80,
		height:   24,
	}
	for i, name := range m.methods {
		if name == req.Method {
			m.cursor = i
		}
	}
	return m
}

// NewReplay steps through the history of a finished run.
func NewReplay(run *experiment.Run) *model {
	return &model{
		req:        run.Request,
		state:      stateReplay,
		run:        run,
		playing:    true,
		speed:      120 * time.Millisecond,
		standalone: true,
		width:      80,
		height:     24,
	}
}

func (m model) Init() tea.Cmd {
	if m.state == stateReplay && m.playing {
		return tick(m.speed)
	}
	return nil
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateReplay || !m.playing {
			return m, nil
		}
		if m.frame < m.frames() {
			m.frame++
		}
		if m.frame >= m.frames() {
			m.playing = false
			return m, nil
		}
		return m, tick(m.speed)
	}
	return m, nil
}

func (m model) frames() int {
	if m.run == nil {
		return 0
	}
	return len(m.run.Result.History)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateReplay:
		return m.replayKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.methods)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.req.Method = m.methods[m.cursor]
		m.state = stateConfig
		m.fieldCursor = 0
		m.setFieldsForMethod()
	}
	return m, nil
}

func (m *model) setFieldsForMethod() {
	m.fields = append([]field(nil), baseFields...)
	info, err := m.registry.Describe(m.req.Method)
	if err != nil {
		return
	}
	if info.Requirements.Bracket {
		m.fields = append(m.fields, field{name: experiment.ParamBracketA}, field{name: experiment.ParamBracketB})
	}
	for _, p := range info.Params {
		m.fields = append(m.fields, field{name: p})
	}
	if len(info.Params) == 0 {
		m.req.Params = nil
	}
}

func (m model) value(f field) string {
	if f.text {
		return m.req.Formula
	}
	switch f.name {
	case experiment.ParamX0:
		return strconv.FormatFloat(m.req.X0, 'g', -1, 64)
	case experiment.ParamTolerance:
		return strconv.FormatFloat(m.req.Tolerance, 'g', -1, 64)
	case experiment.ParamIterLimit:
		return strconv.Itoa(m.req.Config().IterLimit)
	case experiment.ParamBracketA, experiment.ParamBracketB:
		i := 0
		if f.name == experiment.ParamBracketB {
			i = 1
		}
		if i < len(m.req.Bracket) {
			return strconv.FormatFloat(m.req.Bracket[i], 'g', -1, 64)
		}
		return ""
	}
	return strconv.FormatFloat(m.req.Params[f.name], 'g', -1, 64)
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		m.editErr = ""
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(m.fields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = m.value(m.fields[m.fieldCursor])
		m.editErr = ""
	case "s":
		m.run = m.registry.Solve(m.req)
		m.state = stateReplay
		m.frame = 0
		m.playing = true
		return m, tea.Batch(tea.ClearScreen, tick(m.speed))
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		f := m.fields[m.fieldCursor]
		if f.text {
			m.req.Formula = m.editBuf
		} else {
			v, err := validate.Number(f.name, m.editBuf)
			if err != nil {
				m.editErr = err.Error()
				return m, nil
			}
			req, err := m.req.With(f.name, v)
			if err != nil {
				m.editErr = err.Error()
				return m, nil
			}
			m.req = req
		}
		m.editing = false
		m.editBuf = ""
		m.editErr = ""
	case tea.KeyEsc:
		m.editing = false
		m.editBuf = ""
	case tea.KeyBackspace:
		if r := []rune(m.editBuf); len(r) > 0 {
			m.editBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.editBuf += " "
	case tea.KeyRunes:
		m.editBuf += string(msg.Runes)
	}
	return m, nil
}

func (m model) replayKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "c":
		if m.standalone {
			return m, tea.Quit
		}
		m.playing = false
		m.state = stateConfig
		return m, tea.ClearScreen
	case " ", "p":
		if m.frame >= m.frames() {
			m.frame = 0
		}
		m.playing = !m.playing
		if m.playing {
			return m, tick(m.speed)
		}
	case "right", "l":
		m.playing = false
		if m.frame < m.frames() {
			m.frame++
		}
	case "left", "h":
		m.playing = false
		if m.frame > 0 {
			m.frame--
		}
	case "home", "g":
		m.playing = false
		m.frame = 0
	case "end", "G":
		m.playing = false
		m.frame = m.frames()
	case "+", "=":
		m.speed = max(m.speed/2, 15*time.Millisecond)
	case "-", "_":
		m.speed = min(m.speed*2, 2*time.Second)
	}
	return m, nil
}

// RunApp starts the interactive method picker.
func RunApp(registry *experiment.Registry, req experiment.Request) error {
	p := tea.NewProgram(NewApp(registry, req), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunReplay replays a stored or freshly solved run.
func RunReplay(run *experiment.Run) error {
	p := tea.NewProgram(NewReplay(run), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
