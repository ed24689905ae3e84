package components

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a menu. Hint is a one-line description shown
// for the selected item.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks the selection over a list of items. Arrow keys move past
// disabled items and stop at either end. Digits 1-9 open the matching
// item directly. Drawing is left to the owner.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if len(items) > 0 && items[0].Disabled {
		m.step(1)
	}
	return m
}

func (m *Menu) step(delta int) {
	for i := m.Selected + delta; i >= 0 && i < len(m.Items); i += delta {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Current returns the selected item.
func (m Menu) Current() MenuItem {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}
	}
	return m.Items[m.Selected]
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case "enter":
		return m, m.activate()
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(m.Items) || m.Items[n-1].Disabled {
			return m, nil
		}
		m.Selected = n - 1
		return m, m.activate()
	}
	return m, nil
}

func (m Menu) activate() tea.Cmd {
	item := m.Current()
	if item.Action == nil || item.Disabled {
		return nil
	}
	return item.Action()
}
