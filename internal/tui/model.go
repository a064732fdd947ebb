// Package tui is the terminal front end: one text input, Enter submits, and
// the input is disabled while a lookup is in flight.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/i474232898/weather-now/internal/controller"
	"github.com/i474232898/weather-now/internal/view"
)

// resolvedMsg is delivered on the event loop once a lookup has settled.
type resolvedMsg struct{}

type Model struct {
	ctx   context.Context
	ctrl  *controller.Controller
	opts  view.Options
	input textinput.Model
}

// New builds the model around ctrl. ctx is handed to every lookup.
func New(ctx context.Context, ctrl *controller.Controller, opts view.Options) Model {
	ti := textinput.New()
	ti.Placeholder = view.InputHint
	ti.CharLimit = 128
	ti.Width = 48
	ti.Focus()

	return Model{
		ctx:   ctx,
		ctrl:  ctrl,
		opts:  opts,
		input: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
		if m.ctrl.Loading() {
			return m, nil
		}

	case resolvedMsg:
		m.input.SetValue(m.ctrl.Snapshot().Query)
		m.input.CursorEnd()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.UpdateQuery(m.input.Value())
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	ticket, ok := m.ctrl.Begin()
	if !ok {
		return m, nil
	}
	m.input.Blur()

	ctx, ctrl := m.ctx, m.ctrl
	return m, func() tea.Msg {
		ctrl.Resolve(ctx, ticket)
		return resolvedMsg{}
	}
}

func (m Model) View() string {
	page := view.Render(m.ctrl.Snapshot(), m.opts)
	return titleStyle.Render("Weather Now") + "\n" +
		mutedStyle.Render("Your quick weather companion for outdoor adventures") + "\n\n" +
		m.input.View() + "\n\n" +
		RenderBody(page) + "\n\n" +
		mutedStyle.Render("enter: search • esc: quit") + "\n"
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller, opts view.Options) error {
	p := tea.NewProgram(New(ctx, ctrl, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
