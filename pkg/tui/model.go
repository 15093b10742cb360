package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/internal/format"
	"github.com/dennis-tra/mdnssearch/pkg/catalog"
	"github.com/dennis-tra/mdnssearch/pkg/events"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

var log = logrus.WithField("comp", "tui")

const (
	marqueeInterval = 300 * time.Millisecond
	marqueeWidth    = 40
)

// Controller is the part of the orchestrator the terminal UI drives.
type Controller interface {
	Restart(serviceTypes ...string) error
	StopAll()
}

type (
	snapshotMsg      catalog.Snapshot
	catalogClosedMsg struct{}
	marqueeMsg       struct{}
	restartedMsg     struct{ err error }
)

// Model renders the catalog as a selectable list with the details of
// the selected service below it.
type Model struct {
	ctrl  Controller
	sub   *events.Subscription[catalog.Snapshot]
	types []nsd.ServiceType

	snapshot  catalog.Snapshot
	list      list.Model
	spinner   spinner.Model
	iteration int
	err       error
	quitting  bool
}

func New(ctrl Controller, sub *events.Subscription[catalog.Snapshot], types []nsd.ServiceType) *Model {
	l := list.New(nil, itemDelegate{}, 60, 10)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return &Model{
		ctrl:    ctrl,
		sub:     sub,
		types:   types,
		list:    l,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *Model) Init() tea.Cmd {
	log.Traceln("tea init")
	return tea.Batch(m.spinner.Tick, m.listen, m.marquee())
}

// listen waits for the next catalog snapshot.
func (m *Model) listen() tea.Msg {
	snapshot, ok := <-m.sub.Events()
	if !ok {
		return catalogClosedMsg{}
	}
	return snapshotMsg(snapshot)
}

func (m *Model) marquee() tea.Cmd {
	return tea.Tick(marqueeInterval, func(time.Time) tea.Msg {
		return marqueeMsg{}
	})
}

func (m *Model) restart() tea.Msg {
	types := make([]string, len(m.types))
	for i, st := range m.types {
		types[i] = string(st)
	}
	return restartedMsg{err: m.ctrl.Restart(types...)}
}

func (m *Model) shutdown() tea.Msg {
	m.ctrl.StopAll()
	return tea.Quit()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log.WithField("type", fmt.Sprintf("%T", msg)).Tracef("handle message: %T\n", msg)

	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = catalog.Snapshot(msg)
		cmds = append(cmds, m.list.SetItems(items(m.snapshot.Records)), m.listen)
	case catalogClosedMsg:
		log.Debugln("Catalog subscription closed")
	case marqueeMsg:
		m.iteration += 1
		cmds = append(cmds, m.marquee())
	case restartedMsg:
		m.err = msg.err
		if msg.err != nil {
			log.WithError(msg.err).Warnln("Failed restarting discovery")
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, listHeight(msg.Height))
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.err = nil
			m.iteration = 0
			return m, m.restart
		case "q", "ctrl+c":
			m.quitting = true
			return m, m.shutdown
		}
	}

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func listHeight(termHeight int) int {
	// header, details and help take roughly half the screen
	if h := termHeight / 2; h > 3 {
		return h
	}
	return 3
}

func (m *Model) View() string {
	if m.quitting {
		return "Stopping discovery...\n"
	}

	labels := make([]string, len(m.types))
	for i, st := range m.types {
		labels[i] = st.Label()
	}

	out := fmt.Sprintf("%s %s %s\n\n", m.spinner.View(), Bold.Render("Browsing"), strings.Join(labels, ", "))

	if m.snapshot.Len() == 0 {
		out += Faint.Render("    no services found yet") + "\n"
	} else {
		out += m.list.View() + "\n"
		if selected, ok := m.list.SelectedItem().(item); ok {
			out += detailsStyle.Render(m.details(selected.record)) + "\n"
		}
	}

	if m.err != nil {
		out += "\n" + Red.Render(m.err.Error()) + "\n"
	}

	out += "\n" + Faint.Render("r restart • q quit") + "\n"

	return out
}

func (m *Model) details(rec nsd.ServiceRecord) string {
	lines := []string{
		Bold.Render(rec.Name),
		"type:     " + nsd.ServiceType(rec.Type).Label() + " (" + rec.Type + ")",
	}

	if rec.Resolved() {
		lines = append(lines, "endpoint: "+Green.Render(rec.Endpoint()))
	} else {
		lines = append(lines, "endpoint: "+Gray.Render("resolving..."))
	}

	if rec.HostName != "" {
		lines = append(lines, "host:     "+rec.HostName)
	}

	for _, attr := range strings.Split(rec.AttributesText(), "\n") {
		if attr == "" {
			continue
		}
		lines = append(lines, "  "+format.Marquee(attr, m.iteration, marqueeWidth))
	}

	return strings.Join(lines, "\n")
}
