// Command prism-demo renders a YAML UI definition live in the terminal
// and shows how raw input normalizes into signals. Type in the input bar
// to feed dispatch data; every key, mouse and resize event appears as its
// signal type in the status line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	prism "github.com/pcharbon70/prism"
)

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

type model struct {
	root     prism.Element
	renderer *prism.TerminalRenderer
	state    *prism.State

	vp    viewport.Model
	input textinput.Model

	signals    chan *prism.Signal
	coord      *prism.Coordinator
	lastSignal string
	ready      bool
}

func newModel(root prism.Element) (*model, error) {
	renderer := prism.NewTerminalRenderer()
	st, err := renderer.Render(root, nil)
	if err != nil {
		return nil, err
	}
	input := textinput.New()
	input.Placeholder = "event payload"
	input.Focus()
	return &model{
		root:     root,
		renderer: renderer,
		state:    st,
		input:    input,
		signals:  make(chan *prism.Signal, 16),
		coord:    prism.NewCoordinator(),
	}, nil
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := msg.(type) {
	case tea.KeyMsg:
		switch ev.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			// dispatch the typed payload as a change event on ourselves
			sig, err := m.coord.DispatchEvent(prism.PlatformTerminal, "change",
				map[string]any{"value": m.input.Value()}, m.signals)
			if err != nil {
				m.lastSignal = "error: " + err.Error()
			} else {
				m.lastSignal = sig.Type
			}
			m.input.SetValue("")
			drain(m.signals)
		}
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(ev.Width, ev.Height-3)
			m.ready = true
		} else {
			m.vp.Width = ev.Width
			m.vp.Height = ev.Height - 3
		}
		st, err := m.renderer.Update(m.root, m.state, map[string]any{
			"width": ev.Width, "height": ev.Height,
		})
		if err == nil {
			m.state = st
		}
	}

	if sig, err := prism.SignalFromMsg(msg); err == nil && sig != nil {
		m.lastSignal = sig.Type
	}

	if m.ready {
		node, _ := m.state.Root.(*prism.TermNode)
		m.vp.SetContent(m.renderer.RenderString(node))
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}
	status := statusStyle.Render(fmt.Sprintf("v%d  last signal: %s  (esc to quit)",
		m.state.Version, m.lastSignal))
	return m.vp.View() + "\n" + status + "\n" + m.input.View()
}

func drain(ch chan *prism.Signal) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("prism-demo: ")

	file := flag.String("f", "", "YAML definition file")
	flag.Parse()
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal(err)
	}
	root, _, err := prism.BuildDefinition(data)
	if err != nil {
		log.Fatal(err)
	}
	if root == nil {
		log.Fatal("definition has no recognizable root entity")
	}

	m, err := newModel(root)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(titleStyle.Render("prism"))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
