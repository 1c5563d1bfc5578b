package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/cinemart/internal/catalog"
	"github.com/vadimtrunov/cinemart/internal/config"
	"github.com/vadimtrunov/cinemart/internal/suggest"
)

// newBrowseCmd returns the "browse" subcommand for the interactive picker.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a genre and a rating and get random movies interactively",
		Long: "Open the interactive picker. Choose a genre and a rating band, then press enter\n" +
			"for a random movie and its trailer. Press enter again for another one.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBrowse()
		},
	}
}

// runBrowse initializes services and starts the Bubble Tea picker.
func runBrowse() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// The alt screen owns stdout; logs only go to a file if one is configured.
	logger, closeLog := config.SetupLogger(cfg.App, nil)
	defer func() { _ = closeLog() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := tea.NewProgram(newBrowseModel(ctx, initSuggester(cfg, logger)), tea.WithAltScreen())

	// Bridge OS signal cancellation into the Bubble Tea event loop.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browse: %w", err)
	}
	return nil
}

// focusArea identifies the list that receives up/down keys.
type focusArea int

const (
	focusGenres focusArea = iota
	focusRatings
)

// browseKeyMap defines the picker key bindings.
type browseKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Suggest key.Binding
	Quit    key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Switch:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch list")),
		Suggest: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "suggest"), key.WithDisabled()),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Suggest, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// suggestionMsg carries a finished suggestion tagged with the generation
// that requested it.
type suggestionMsg struct {
	gen    uint64
	result suggest.Result
}

// browseModel is the Bubble Tea model for the interactive picker.
// Cursor -1 means nothing is selected in that list.
type browseModel struct {
	ctx          context.Context
	suggester    suggester
	state        suggest.State
	genres       []catalog.Genre
	ratings      []catalog.Rating
	genreCursor  int
	ratingCursor int
	focus        focusArea
	keys         browseKeyMap
	help         help.Model
	spinner      spinner.Model
	width        int
}

func newBrowseModel(ctx context.Context, s suggester) browseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleInfo

	return browseModel{
		ctx:          ctx,
		suggester:    s,
		genres:       catalog.Genres(),
		ratings:      catalog.Ratings(),
		genreCursor:  -1,
		ratingCursor: -1,
		keys:         newBrowseKeyMap(),
		help:         help.New(),
		spinner:      sp,
	}
}

// Init implements tea.Model.
func (m browseModel) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and user input.
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case suggestionMsg:
		next, applied := m.state.Apply(msg.gen, msg.result)
		if applied {
			m.state = next
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusGenres {
			m.focus = focusRatings
		} else {
			m.focus = focusGenres
		}
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Suggest):
		return m.startSuggestion()
	}
	return m, nil
}

// move shifts the focused cursor and selects the item under it.
func (m *browseModel) move(delta int) {
	var next suggest.State
	var err error
	switch m.focus {
	case focusGenres:
		m.genreCursor = clampCursor(m.genreCursor+delta, len(m.genres))
		id := 0
		if m.genreCursor >= 0 {
			id = m.genres[m.genreCursor].ID
		}
		next, err = m.state.SelectGenre(id)
	case focusRatings:
		m.ratingCursor = clampCursor(m.ratingCursor+delta, len(m.ratings))
		id := 0
		if m.ratingCursor >= 0 {
			id = m.ratings[m.ratingCursor].ID
		}
		next, err = m.state.SelectRating(id)
	}
	if err != nil {
		return
	}
	m.state = next
	m.keys.Suggest.SetEnabled(m.state.CanSuggest())
}

// clampCursor keeps a cursor within [-1, n-1].
func clampCursor(c, n int) int {
	return max(-1, min(c, n-1))
}

// startSuggestion begins a new generation. A response still in flight
// for an older generation will be ignored when it arrives.
func (m browseModel) startSuggestion() (tea.Model, tea.Cmd) {
	if !m.state.CanSuggest() {
		return m, nil
	}
	wasLoading := m.state.Loading
	m.state = m.state.Begin()

	cmd := m.fetch(m.state.Generation, m.state.Selection)
	if !wasLoading {
		cmd = tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

func (m browseModel) fetch(gen uint64, sel suggest.Selection) tea.Cmd {
	return func() tea.Msg {
		return suggestionMsg{gen: gen, result: m.suggester.Suggest(m.ctx, sel)}
	}
}

// View renders the pickers, status line, result card and help.
func (m browseModel) View() string {
	var sb strings.Builder
	sb.WriteString(styleHeader.Render("Cinemart"))
	sb.WriteString("\n")

	genreNames := make([]string, len(m.genres))
	for i, g := range m.genres {
		genreNames[i] = g.Name
	}
	ratingLabels := make([]string, len(m.ratings))
	for i, r := range m.ratings {
		ratingLabels[i] = r.Label
	}

	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		renderList("Genre", "Select genre", genreNames, m.genreCursor, m.focus == focusGenres),
		"  ",
		renderList("Rating", "Select rating", ratingLabels, m.ratingCursor, m.focus == focusRatings),
	)
	sb.WriteString(lists)
	sb.WriteString("\n\n")

	sb.WriteString(m.statusLine())
	sb.WriteString("\n")

	if m.state.Err != "" {
		sb.WriteString(styleError.Render(m.state.Err))
		sb.WriteString("\n")
	}

	if card, ok := m.state.Card(); ok {
		sb.WriteString("\n")
		sb.WriteString(renderCard(card, m.cardWidth()))
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m browseModel) statusLine() string {
	switch {
	case m.state.Loading:
		return m.spinner.View() + styleDim.Render(" Finding a movie...")
	case m.state.CanSuggest():
		return styleSuccess.Render("[ Suggest ]") + styleDim.Render(" press enter")
	default:
		return styleDim.Render("[ Suggest ] choose a genre and a rating first")
	}
}

func (m browseModel) cardWidth() int {
	if m.width <= 4 {
		return defaultCardWidth
	}
	return min(m.width-4, 100)
}

// renderList draws one picker column. cursor -1 highlights the placeholder.
func renderList(title, placeholder string, items []string, cursor int, focused bool) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	if focused {
		border = border.BorderForeground(lipgloss.Color("5"))
	}

	var sb strings.Builder
	sb.WriteString(styleTitle.Render(title))
	sb.WriteString("\n")
	rows := append([]string{placeholder}, items...)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		if i-1 == cursor {
			sb.WriteString(styleSelected.Render("> " + row))
			continue
		}
		sb.WriteString("  " + row)
	}
	return border.Render(sb.String())
}
