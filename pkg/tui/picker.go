// Package tui implements the interactive device picker used by `nw tui`.
// Selection feeds the same bulk-run path as the -d/-g flags.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/netwalker-io/netwalker/pkg/config"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// deviceItem adapts one inventory device to the list widget.
type deviceItem struct {
	name   string
	record *config.DeviceRecord
	chosen bool
}

func (i deviceItem) Title() string {
	marker := "[ ]"
	if i.chosen {
		marker = "[x]"
	}
	return fmt.Sprintf("%s %s", marker, i.name)
}

func (i deviceItem) Description() string {
	desc := i.record.Host + "  " + i.record.DeviceType
	if len(i.record.Tags) > 0 {
		desc += "  (" + strings.Join(i.record.Tags, ", ") + ")"
	}
	return desc
}

func (i deviceItem) FilterValue() string {
	return i.name + " " + strings.Join(i.record.Tags, " ")
}

type pickerModel struct {
	list     list.Model
	chosen   map[string]bool
	done     bool
	canceled bool
}

func newPickerModel(cfg *config.NetworkConfig) pickerModel {
	names := cfg.DeviceNames()
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, deviceItem{name: name, record: cfg.Devices[name]})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = selectedStyle.Copy().Faint(true)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select devices (space to toggle, enter to confirm)"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return pickerModel{list: l, chosen: make(map[string]bool)}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
	case tea.KeyMsg:
		// Don't intercept keys while the filter input is active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case " ":
			if item, ok := m.list.SelectedItem().(deviceItem); ok {
				m.chosen[item.name] = !m.chosen[item.name]
				item.chosen = m.chosen[item.name]
				m.list.SetItem(m.list.Index(), item)
			}
			return m, nil
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.list.View() + "\n" + helpStyle.Render("space: toggle  enter: run  q: quit")
}

// PickDevices shows the picker and returns the selected device names in
// inventory order. A nil slice with nil error means the user canceled.
func PickDevices(cfg *config.NetworkConfig) ([]string, error) {
	m := newPickerModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running device picker: %w", err)
	}

	result := final.(pickerModel)
	if result.canceled {
		return nil, nil
	}
	var selected []string
	for _, name := range cfg.DeviceNames() {
		if result.chosen[name] {
			selected = append(selected, name)
		}
	}
	return selected, nil
}
