package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

type screen int

const (
	screenForm screen = iota
	screenRunning
	screenResults
)

type fieldKind int

const (
	kindFloat fieldKind = iota
	kindInt
	kindShape
)

type field struct {
	label string
	unit  string
	kind  fieldKind
	input textinput.Model
	// assign writes the parsed value into the params under edit.
	assign func(p *domain.Params, f float64, n int, s domain.WaveShape)
}

type model struct {
	theme Theme
	deps  Deps

	scr     screen
	fields  []field
	focus   int
	formErr string

	spin  spinner.Model
	runCh chan runDoneMsg

	run    domain.RunArtifact
	runID  string
	runErr error
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		theme:  DefaultTheme(),
		deps:   deps,
		scr:    screenForm,
		fields: buildFields(domain.DefaultParams()),
		spin:   sp,
	}
	m.fields[0].input.Focus()
	return m
}

func buildFields(p domain.Params) []field {
	mk := func(label, unit string, kind fieldKind, value string,
		assign func(*domain.Params, float64, int, domain.WaveShape)) field {
		in := textinput.New()
		in.SetValue(value)
		in.CharLimit = 24
		in.Width = 14
		return field{label: label, unit: unit, kind: kind, input: in, assign: assign}
	}
	ff := strconv.FormatFloat
	return []field{
		mk("Saturation flux density", "T", kindFloat, ff(p.Bs, 'g', -1, 64),
			func(p *domain.Params, f float64, _ int, _ domain.WaveShape) { p.Bs = f }),
		mk("Remanence", "T", kindFloat, ff(p.Br, 'g', -1, 64),
			func(p *domain.Params, f float64, _ int, _ domain.WaveShape) { p.Br = f }),
		mk("Coercivity", "A/m", kindFloat, ff(p.Hc, 'g', -1, 64),
			func(p *domain.Params, f float64, _ int, _ domain.WaveShape) { p.Hc = f }),
		mk("Field amplitude", "A/m", kindFloat, ff(p.Hmax, 'g', -1, 64),
			func(p *domain.Params, f float64, _ int, _ domain.WaveShape) { p.Hmax = f }),
		mk("Frequency", "Hz", kindFloat, ff(p.Frequency, 'g', -1, 64),
			func(p *domain.Params, f float64, _ int, _ domain.WaveShape) { p.Frequency = f }),
		mk("Wave shape", "sine|triangle", kindShape, string(p.Shape),
			func(p *domain.Params, _ float64, _ int, s domain.WaveShape) { p.Shape = s }),
		mk("Samples per cycle", "", kindInt, strconv.Itoa(p.SamplesPerCycle),
			func(p *domain.Params, _ float64, n int, _ domain.WaveShape) { p.SamplesPerCycle = n }),
		mk("Cycles", "", kindInt, strconv.Itoa(p.Cycles),
			func(p *domain.Params, _ float64, n int, _ domain.WaveShape) { p.Cycles = n }),
		mk("Discard cycles", "", kindInt, strconv.Itoa(p.DiscardCycles),
			func(p *domain.Params, _ float64, n int, _ domain.WaveShape) { p.DiscardCycles = n }),
		mk("Air gap length", "m", kindFloat, ff(p.GapLength, 'g', -1, 64),
			func(p *domain.Params, f float64, _ int, _ domain.WaveShape) { p.GapLength = f }),
		mk("Magnetic path length", "m", kindFloat, ff(p.PathLength, 'g', -1, 64),
			func(p *domain.Params, f float64, _ int, _ domain.WaveShape) { p.PathLength = f }),
		mk("Cross section", "m^2", kindFloat, ff(p.CrossSection, 'g', -1, 64),
			func(p *domain.Params, f float64, _ int, _ domain.WaveShape) { p.CrossSection = f }),
		mk("Turns", "", kindInt, strconv.Itoa(p.Turns),
			func(p *domain.Params, _ float64, n int, _ domain.WaveShape) { p.Turns = n }),
	}
}

// parseForm converts the field values back into a validated parameter set.
func (m *model) parseForm() (domain.Params, error) {
	p := domain.DefaultParams()
	for i := range m.fields {
		f := &m.fields[i]
		raw := strings.TrimSpace(f.input.Value())
		switch f.kind {
		case kindFloat:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return p, fmt.Errorf("%s: not a number: %q", f.label, raw)
			}
			f.assign(&p, v, 0, "")
		case kindInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return p, fmt.Errorf("%s: not an integer: %q", f.label, raw)
			}
			f.assign(&p, 0, n, "")
		case kindShape:
			s, err := domain.ParseWaveShape(raw)
			if err != nil {
				return p, fmt.Errorf("%s: %v", f.label, err)
			}
			f.assign(&p, 0, 0, s)
		}
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func (m model) Init() tea.Cmd {
	return cmdLoadParams(m.deps)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case paramsLoadedMsg:
		if msg.err == nil && msg.found {
			m.fields = buildFields(msg.params)
			m.fields[m.focusClamped()].input.Focus()
		}
		return m, nil

	case runDoneMsg:
		m.run, m.runID, m.runErr = msg.run, msg.id, msg.err
		m.runCh = nil
		m.scr = screenResults
		return m, nil

	case spinner.TickMsg:
		if m.scr != screenRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q", "esc":
		switch m.scr {
		case screenForm:
			return m, tea.Quit
		case screenResults:
			m.scr = screenForm
			m.formErr = ""
			return m, nil
		default:
			// A run in flight finishes on its own channel.
			return m, nil
		}

	case "tab", "down":
		if m.scr == screenForm {
			return m.moveFocus(1), nil
		}

	case "shift+tab", "up":
		if m.scr == screenForm {
			return m.moveFocus(-1), nil
		}

	case "enter":
		switch m.scr {
		case screenForm:
			p, err := m.parseForm()
			if err != nil {
				m.formErr = err.Error()
				return m, nil
			}
			m.formErr = ""
			m.scr = screenRunning
			ch, cmd := startRunAsync(m.deps, p)
			m.runCh = ch
			return m, tea.Batch(m.spin.Tick, cmd)
		case screenResults:
			m.scr = screenForm
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

func (m model) moveFocus(delta int) model {
	m.fields[m.focusClamped()].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].input.Focus()
	return m
}

func (m model) focusClamped() int {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return 0
	}
	return m.focus
}

func (m model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.scr != screenForm {
		return m, nil
	}
	i := m.focusClamped()
	var cmd tea.Cmd
	m.fields[i].input, cmd = m.fields[i].input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("bhloop") + "\n" +
		m.theme.Subtitle.Render("Chan-model B-H hysteresis loop simulator") + "\n"

	switch m.scr {
	case screenForm:
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.viewForm()) + "\n" +
			m.theme.Help.Render("tab/↓ next • shift+tab/↑ prev • enter run • q quit"))

	case screenRunning:
		card := m.theme.Card.Render(m.spin.View() + " Simulating...")
		return wrap.Render(header + "\n" + card)

	case screenResults:
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.viewResults()) + "\n" +
			m.theme.Help.Render("enter/esc back • ctrl+c quit"))

	default:
		return wrap.Render(header + "\nunknown state")
	}
}

func (m model) viewForm() string {
	var b strings.Builder
	for i := range m.fields {
		f := &m.fields[i]
		label := f.label
		if f.unit != "" {
			label += " (" + f.unit + ")"
		}
		b.WriteString(m.theme.Label.Render(label))
		b.WriteString(" ")
		b.WriteString(f.input.View())
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(m.formErr))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) viewResults() string {
	if m.runErr != nil {
		return m.theme.Title.Render("Run failed") + "\n\n" +
			m.theme.Error.Render(m.runErr.Error())
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Run complete"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Samples      %d\n", m.run.SampleCount)
	fmt.Fprintf(&b, "Max |B|      %.4f T\n", m.run.MaxB)
	fmt.Fprintf(&b, "Loop area    %.4f J/m^3\n", m.run.LoopArea)
	fmt.Fprintf(&b, "Closed       %t\n", m.run.Closed)
	if m.runID != "" {
		fmt.Fprintf(&b, "Run ID       %s\n", m.runID)
	}
	if len(m.run.Outputs) > 0 {
		b.WriteString("\nOutputs:\n")
		for _, out := range m.run.Outputs {
			b.WriteString("  " + out + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
