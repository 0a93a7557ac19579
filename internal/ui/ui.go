package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nomadcxx/jellyparse/internal/naming"
	"github.com/Nomadcxx/jellyparse/internal/parser"
	"github.com/Nomadcxx/jellyparse/internal/quality"
	"github.com/Nomadcxx/jellyparse/internal/reporter"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewTry ViewMode = iota
	ViewReport
)

const historyLimit = 20

// Model represents the TUI state
type Model struct {
	mode     ViewMode
	parser   *parser.Parser
	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	// Try view
	isDir     bool
	showTrace bool
	info      parser.ParsedTitleInfo
	trace     parser.Trace
	quality   quality.Info
	history   []string

	// Report view
	report reporter.Report
}

// NewTryModel creates a model that re-parses its input on every keystroke
func NewTryModel(p *parser.Parser, initial string, isDir bool) Model {
	ti := textinput.New()
	ti.Placeholder = "Paste a release or folder name..."
	ti.CharLimit = 500
	ti.Width = 76
	ti.SetValue(initial)
	ti.Focus()

	m := Model{
		mode:   ViewTry,
		parser: p,
		input:  ti,
		isDir:  isDir,
	}
	m.reparse()
	return m
}

// NewReportModel creates a scrollable view of a batch report
func NewReportModel(report reporter.Report) Model {
	return Model{mode: ViewReport, report: report}
}

// Init initializes the TUI
func (m Model) Init() tea.Cmd {
	if m.mode == ViewTry {
		return textinput.Blink
	}
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			return m, tea.Quit

		case "q":
			if m.mode == ViewReport {
				return m, tea.Quit
			}
		}

		if m.mode == ViewTry {
			return m.updateTry(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4) // Leave room for header/footer
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.input.Width = max(msg.Width-4, 10)
		m.viewport.SetContent(m.renderBody())
		return m, nil
	}

	var cmds []tea.Cmd

	// Cursor blink and other input ticks
	if m.mode == ViewTry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		if m.ready {
			m.viewport.SetContent(m.renderBody())
		}
	}

	// Handle viewport updates (scrolling)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateTry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+f":
		m.isDir = !m.isDir
		m.reparse()

	case "tab":
		m.showTrace = !m.showTrace

	case "enter":
		if v := strings.TrimSpace(m.input.Value()); v != "" {
			m.history = append([]string{v}, m.history...)
			if len(m.history) > historyLimit {
				m.history = m.history[:historyLimit]
			}
			m.input.SetValue("")
			m.reparse()
		}

	case "up":
		if len(m.history) > 0 {
			m.input.SetValue(m.history[0])
			m.input.CursorEnd()
			m.reparse()
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.reparse()
		if m.ready {
			m.viewport.SetContent(m.renderBody())
		}
		return m, cmd
	}

	if m.ready {
		m.viewport.SetContent(m.renderBody())
	}
	return m, nil
}

func (m *Model) reparse() {
	value := m.input.Value()
	m.info, m.trace = m.parser.Explain(value, m.isDir)
	m.quality = quality.Detect(value)
}

// Info returns the parse result for the current input
func (m Model) Info() parser.ParsedTitleInfo {
	return m.info
}

// Input returns the current input text
func (m Model) Input() string {
	return m.input.Value()
}

// History returns the inputs submitted with enter, newest first
func (m Model) History() []string {
	return m.history
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var header, footer string
	switch m.mode {
	case ViewTry:
		kind := "FILE"
		if m.isDir {
			kind = "FOLDER"
		}
		header = FormatHeader("JELLYPARSE  "+kind, m.width)
		footer = FormatFooter(m.width,
			FormatKeybinding("Ctrl+F", "File/Folder"),
			FormatKeybinding("Tab", "Trace"),
			FormatKeybinding("Enter", "Keep"),
			FormatKeybinding("Esc", "Exit"),
		)

	case ViewReport:
		header = FormatHeader("JELLYPARSE REPORT", m.width)
		scrollInfo := fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
		footer = FormatFooter(m.width,
			FormatKeybinding("↑↓", "Scroll"),
			FormatKeybinding("PgUp/PgDn", "Page"),
			FormatKeybinding("Q", "Exit"),
			MutedStyle.Render(scrollInfo),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.viewport.View(),
		footer,
	)
}

func (m Model) renderBody() string {
	if m.mode == ViewReport {
		return m.renderReport()
	}
	return m.renderTry()
}

func (m Model) renderTry() string {
	var sb strings.Builder

	sb.WriteString(m.input.View() + "\n\n")

	if strings.TrimSpace(m.input.Value()) == "" {
		sb.WriteString(MutedStyle.Render("Type a name to see how it parses.") + "\n")
		return sb.String()
	}

	info := m.info
	sb.WriteString(HighlightStyle.Render(info.PrimaryTitle()) + "\n\n")

	aka := ""
	if len(info.TitleVariants) == 3 {
		aka = info.TitleVariants[2]
	}
	year := ""
	if y, ok := info.YearValue(); ok {
		year = strconv.Itoa(y)
	}
	tmdb := ""
	if id, ok := info.TmdbValue(); ok {
		tmdb = strconv.Itoa(id)
	}

	sb.WriteString(FormatField("Combined", info.CombinedTitle, ContentStyle) + "\n")
	sb.WriteString(FormatField("Also known as", aka, ContentStyle) + "\n")
	sb.WriteString(FormatField("Year", year, StatStyle) + "\n")
	sb.WriteString(FormatField("Edition", info.Edition, SuccessStyle) + "\n")
	sb.WriteString(FormatField("Languages", languageNames(info.Languages), ContentStyle) + "\n")
	sb.WriteString(FormatField("Release group", info.ReleaseGroup, ContentStyle) + "\n")
	sb.WriteString(FormatField("IMDb", info.ImdbID, StatStyle) + "\n")
	sb.WriteString(FormatField("TMDb", tmdb, StatStyle) + "\n")
	sb.WriteString(FormatField("Quality", m.quality.Summary(), ContentStyle) + "\n")
	sb.WriteString(FormatField("Folder name", naming.FolderName(info, naming.DefaultOptions()), SuccessStyle) + "\n")

	if m.showTrace {
		sb.WriteString(TitleStyle.Render("TRACE") + "\n")
		sb.WriteString(FormatField("Layout", m.trace.Layout, WarningStyle) + "\n")
		sb.WriteString(FormatField("Cut", strconv.Itoa(m.trace.Cut), StatStyle) + "\n")
		sb.WriteString(FormatField("Words", strings.Join(m.trace.Words, " | "), ContentStyle) + "\n")
		sb.WriteString(FormatField("Removed", strings.Join(m.trace.Removed, " | "), MutedStyle) + "\n")
	}

	if len(m.history) > 0 {
		sb.WriteString(TitleStyle.Render("KEPT") + "\n")
		for _, h := range m.history {
			sb.WriteString(MutedStyle.Render("  "+h) + "\n")
		}
	}

	return sb.String()
}

func (m Model) renderReport() string {
	var sb strings.Builder

	sb.WriteString(FormatASCIIHeader() + "\n\n")

	s := reporter.Summarize(m.report)
	sb.WriteString(TitleStyle.Render("SUMMARY") + "\n")
	sb.WriteString(fmt.Sprintf("Inputs:       %s\n", StatStyle.Render(strconv.Itoa(s.Inputs))))
	sb.WriteString(fmt.Sprintf("Failed:       %s\n", ErrorStyle.Render(strconv.Itoa(s.Failed))))
	sb.WriteString(fmt.Sprintf("With year:    %s\n", StatStyle.Render(strconv.Itoa(s.WithYear))))
	sb.WriteString(fmt.Sprintf("With edition: %s\n", StatStyle.Render(strconv.Itoa(s.WithEdition))))

	sb.WriteString(TitleStyle.Render("RESULTS") + "\n")
	for _, r := range m.report.Results {
		if r.Err != nil {
			sb.WriteString(fmt.Sprintf("%3d. %s\n", r.Index+1, ErrorStyle.Render(r.Error)))
			continue
		}
		sb.WriteString(fmt.Sprintf("%3d. %s\n", r.Index+1, ContentStyle.Render(naming.FolderName(r.Info, naming.DefaultOptions()))))
		sb.WriteString(MutedStyle.Render("     "+r.Input) + "\n")
	}

	return sb.String()
}

func languageNames(langs []parser.Language) string {
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		if l != parser.Unknown {
			names = append(names, l.String())
		}
	}
	return strings.Join(names, ", ")
}

// Run starts the program in the alternate screen and returns the final model
func Run(m Model) (Model, error) {
	final, err := RunProgram(m)
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}

// RunProgram starts any model in the alternate screen
func RunProgram(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}
