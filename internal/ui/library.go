package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nomadcxx/jellyparse/internal/config"
)

// PathItem is a configured library path in the list
type PathItem struct {
	path string
}

func (i PathItem) Title() string       { return i.path }
func (i PathItem) Description() string { return "library folder" }
func (i PathItem) FilterValue() string { return i.path }

// LibraryModel edits the library paths the batch command reads by default
type LibraryModel struct {
	list    list.Model
	input   textinput.Model
	adding  bool
	config  *config.Config
	save    func(*config.Config) error
	width   int
	height  int
	err     string
	success string
}

// NewLibraryModel creates the library editor. save persists the config after
// every change; nil means config.Save.
func NewLibraryModel(cfg *config.Config, save func(*config.Config) error) LibraryModel {
	if save == nil {
		save = config.Save
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(RAMABackground).
		Background(RAMARed).
		Bold(true)
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().
		Foreground(RAMABackground).
		Background(RAMAFireRed)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(RAMAForeground)
	delegate.Styles.NormalDesc = lipgloss.NewStyle().
		Foreground(RAMAMuted)

	l := list.New(pathItems(cfg), delegate, 80, 12)
	l.Title = "LIBRARY FOLDERS"
	l.Styles.Title = TitleStyle
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "/path/to/your/movies"
	ti.CharLimit = 500
	ti.Width = 80
	ti.PromptStyle = lipgloss.NewStyle().Foreground(RAMARed)
	ti.TextStyle = lipgloss.NewStyle().Foreground(RAMAForeground)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(RAMAMuted)

	return LibraryModel{
		list:   l,
		input:  ti,
		config: cfg,
		save:   save,
	}
}

func pathItems(cfg *config.Config) []list.Item {
	items := make([]list.Item, len(cfg.Libraries.Paths))
	for i, p := range cfg.Libraries.Paths {
		items[i] = PathItem{path: p}
	}
	return items
}

func (m LibraryModel) Init() tea.Cmd {
	return nil
}

func (m LibraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "a":
			m.adding = true
			m.err, m.success = "", ""
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink

		case "d", "delete":
			item, ok := m.list.SelectedItem().(PathItem)
			if !ok {
				return m, nil
			}
			if err := m.config.RemovePath(item.path); err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.persist("Removed: " + item.path)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, max(msg.Height-16, 8))
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m LibraryModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil

	case "enter":
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			m.err, m.success = "Path cannot be empty", ""
			return m, nil
		}
		if err := m.config.AddPath(path); err != nil {
			m.err, m.success = err.Error(), ""
			return m, nil
		}
		m.adding = false
		m.input.Blur()
		m.persist("Added: " + path)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *LibraryModel) persist(success string) {
	m.list.SetItems(pathItems(m.config))
	if err := m.save(m.config); err != nil {
		m.err, m.success = fmt.Sprintf("Failed to save config: %v", err), ""
		return
	}
	m.err, m.success = "", success
}

// Err returns the last error shown to the user
func (m LibraryModel) Err() string { return m.err }

// Paths returns the configured library paths
func (m LibraryModel) Paths() []string { return m.config.Libraries.Paths }

func (m LibraryModel) View() string {
	var content strings.Builder

	content.WriteString(FormatASCIIHeaderWithSubtext("folders parsed by `jellyparse batch`"))
	content.WriteString("\n\n")

	if m.adding {
		content.WriteString(TitleStyle.Render("ADD LIBRARY FOLDER") + "\n")
		content.WriteString(m.input.View() + "\n\n")
	} else if len(m.config.Libraries.Paths) == 0 {
		content.WriteString(TitleStyle.Render("LIBRARY FOLDERS") + "\n")
		content.WriteString("  " + MutedStyle.Render("None") + "\n\n")
	} else {
		content.WriteString(m.list.View() + "\n\n")
	}

	if m.err != "" {
		content.WriteString(ErrorStyle.Render("✗ "+m.err) + "\n\n")
	}
	if m.success != "" {
		content.WriteString(SuccessStyle.Render("✓ "+m.success) + "\n\n")
	}

	if m.adding {
		content.WriteString(FormatFooter(m.width,
			FormatKeybinding("Enter", "Add"),
			FormatKeybinding("Esc", "Cancel"),
		))
	} else {
		content.WriteString(FormatFooter(m.width,
			FormatKeybinding("A", "Add"),
			FormatKeybinding("D", "Remove"),
			FormatKeybinding("Q", "Exit"),
		))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content.String())
}
