package preview

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobdigest/internal/digest"
)

// ErrCancelled is returned by RunLoader when the user interrupts the fetch.
var ErrCancelled = errors.New("cancelled")

// CollectFunc gathers a deduplicated collection, usually digest.Digest.Collect.
type CollectFunc func(ctx context.Context) (digest.Collection, error)

type collectDoneMsg struct {
	coll digest.Collection
	err  error
}

type loaderModel struct {
	label   string
	ctx     context.Context
	cancel  context.CancelFunc
	collect CollectFunc
	spinner spinner.Model
	result  digest.Collection
	err     error
	done    bool
}

func newLoaderModel(ctx context.Context, label string, collect CollectFunc) loaderModel {
	ctx, cancel := context.WithCancel(ctx)
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	return loaderModel{
		label:   label,
		ctx:     ctx,
		cancel:  cancel,
		collect: collect,
		spinner: s,
	}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doCollect(), m.spinner.Tick)
}

func (m loaderModel) doCollect() tea.Cmd {
	ctx, collect := m.ctx, m.collect
	return func() tea.Msg {
		coll, err := collect(ctx)
		return collectDoneMsg{coll: coll, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case collectDoneMsg:
		m.result = msg.coll
		if m.err == nil {
			m.err = msg.err
		}
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Fetching jobs from %s...\n", m.spinner.View(), m.label)
}

// RunLoader shows a spinner while collect runs. It renders inline (no alt screen).
func RunLoader(ctx context.Context, label string, collect CollectFunc) (digest.Collection, error) {
	m := newLoaderModel(ctx, label, collect)
	defer m.cancel()

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return digest.Collection{}, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
