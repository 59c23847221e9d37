package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Launcher starts the named preset and returns its live view.
type Launcher func(preset string) (Model, error)

const (
	stateMenu = iota
	stateSim
)

// menu lets the user pick a preset and then hands over to its live view.
type menu struct {
	state     int
	cursor    int
	presets   []string
	info      map[string]string
	launch    Launcher
	err       error
	liveModel Model
}

func NewMenu(presets []string, info map[string]string, launch Launcher) tea.Model {
	return menu{presets: presets, info: info, launch: launch}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		live, err := m.launch(m.presets[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.liveModel = live
		m.state = stateSim
		return m, live.Init()
	}
	return m, nil
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.liveModel.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + Title.Render("SPARKS") + "\n    " + Muted.Render("particle effects") + "\n    " + Rule(25) + "\n\n")
	for i, name := range m.presets {
		label := fmt.Sprintf("%-12s", name)
		if i == m.cursor {
			b.WriteString("    " + Cursor.Render("▸") + " " + Selected.Render(label) + "  " + Detail.Render(m.info[name]) + "\n")
		} else {
			b.WriteString("      " + Dim.Render(label) + "  " + Dim.Render(m.info[name]) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + Failure.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + Hint.Render("j/k navigate  enter start  q quit") + "\n")
	return b.String()
}

// RunMenu shows the preset menu and the chosen live view.
func RunMenu(presets []string, info map[string]string, launch Launcher) error {
	_, err := tea.NewProgram(NewMenu(presets, info, launch), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
