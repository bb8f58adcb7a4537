package review

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/autoapply/internal/discovery"
)

// AllSources is the first picker entry; choosing it polls every enabled source.
const AllSources = "All sources"

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 0, 0, 4)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type pickerModel struct {
	statuses []discovery.SourceStatus
	cursor   int // 0 is AllSources, i+1 is statuses[i]
	chosen   int // -1 = no choice yet, -2 = quit
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chosen = -2
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.statuses) {
				m.cursor++
			}
		case "enter":
			if m.cursor > 0 && !m.statuses[m.cursor-1].Enabled {
				return m, nil
			}
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) label(i int) string {
	if i == 0 {
		return AllSources
	}
	st := m.statuses[i-1]
	if !st.Enabled {
		return fmt.Sprintf("%s (%s)", st.Name, st.Reason)
	}
	return st.Name
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render("Job Review · Select a source")
	s += "\n"

	for i := 0; i <= len(m.statuses); i++ {
		label := m.label(i)
		switch {
		case i == m.cursor:
			s += pickerSelectedStyle.Render("> "+label) + "\n"
		case i > 0 && !m.statuses[i-1].Enabled:
			s += pickerDisabledStyle.Render(label) + "\n"
		default:
			s += pickerItemStyle.Render(label) + "\n"
		}
	}

	s += pickerHintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

// selection maps the chosen row to a source name. ok is false if the user quit.
func (m pickerModel) selection() (name string, ok bool) {
	switch {
	case m.chosen < 0:
		return "", false
	case m.chosen == 0:
		return AllSources, true
	default:
		return m.statuses[m.chosen-1].Name, true
	}
}

// RunSourcePicker shows an interactive source selector. It returns AllSources
// or one source name, and ok=false if the user quit. Sources that are not
// enabled are listed with the reason but cannot be chosen.
func RunSourcePicker(statuses []discovery.SourceStatus) (name string, ok bool, err error) {
	m := pickerModel{
		statuses: statuses,
		chosen:   -1,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return "", false, err
	}

	name, ok = result.(pickerModel).selection()
	return name, ok, nil
}
