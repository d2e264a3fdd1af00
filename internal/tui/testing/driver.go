package testing

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// commandTimeout bounds how long Send waits for a follow-up command.
const commandTimeout = 50 * time.Millisecond

// Driver feeds messages to a model and runs the commands it returns, so
// that messages produced by child components reach the parent.
type Driver struct {
	Model tea.Model
	// Quit is set once the model returns tea.Quit.
	Quit bool
}

// NewDriver wraps a model.
func NewDriver(m tea.Model) *Driver {
	return &Driver{Model: m}
}

// Init runs the model's Init command and delivers what it produces.
func (d *Driver) Init() *Driver {
	return d.Send(run(d.Model.Init())...)
}

// Send delivers msg and then any messages its commands produce. Commands
// that block longer than commandTimeout, such as ticks, are dropped.
func (d *Driver) Send(msgs ...tea.Msg) *Driver {
	queue := append([]tea.Msg(nil), msgs...)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			d.Quit = true
			return d
		}

		var cmd tea.Cmd
		d.Model, cmd = d.Model.Update(msg)
		queue = append(queue, run(cmd)...)
	}
	return d
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(commandTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}
