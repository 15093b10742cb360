package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

type item struct {
	record nsd.ServiceRecord
}

func (i item) FilterValue() string { return i.record.Name }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s %s", index+1, i.record.Name, Gray.Render(nsd.ServiceType(i.record.Type).Label()))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

func items(records []nsd.ServiceRecord) []list.Item {
	out := make([]list.Item, len(records))
	for i, rec := range records {
		out[i] = item{record: rec}
	}
	return out
}
