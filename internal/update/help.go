package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/kario/internal/commands"
	"github.com/sandeepkv93/kario/internal/views"
)

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Toggle, k.Delete, k.Restore},
		{k.DateFilter, k.SortStatus, k.SortCreated},
		{k.Palette, k.Help, k.Quit},
	}
}

var commandUsage = map[commands.Type]string{
	commands.TypeAdd:      "add <title>",
	commands.TypeDraft:    "draft <title>",
	commands.TypeDue:      "due <date>|clear",
	commands.TypeAt:       "at <time>|clear",
	commands.TypeRemind:   "remind <phrase>|clear",
	commands.TypeRepeat:   "repeat <phrase>|clear",
	commands.TypePriority: "priority <1-6|name>",
	commands.TypeLabel:    "label <name>",
	commands.TypeDesc:     "desc <markdown>",
	commands.TypeSub:      "sub <title>",
	commands.TypeFilter:   "filter date|priority|label <values>|off",
	commands.TypeSort:     "sort status|created on|off",
	commands.TypeView:     "view total|pending|completed|drafts|deleted",
	commands.TypePurge:    "purge",
}

func (m Model) renderHelpView() string {
	usage := make([]string, 0, len(commands.Names))
	for _, name := range commands.Names {
		usage = append(usage, commandUsage[name])
	}
	full := m.helpModel
	full.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: []string{"1-5: switch view (total, pending, completed, drafts, deleted)"},
		Commands: usage,
		HelpView: full.View(m.Keys),
	})
}
