package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/cinemart/internal/catalog"
	"github.com/vadimtrunov/cinemart/internal/config"
	"github.com/vadimtrunov/cinemart/internal/suggest"
)

func newSuggestCmd() *cobra.Command {
	var genre, rating string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest one random movie and exit",
		Long: "Pick a random movie for a genre and a rating band and print it with its trailer link.\n" +
			"Run 'cinemart genres' and 'cinemart ratings' to list the accepted values.",
		Example: `  cinemart suggest --genre Horror --rating 4
  cinemart suggest -g 878 -r 7,10`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sel, err := parseSelection(genre, rating)
			if err != nil {
				return err
			}
			return runSuggest(sel)
		},
	}

	cmd.Flags().StringVarP(&genre, "genre", "g", "", "genre id or name")
	cmd.Flags().StringVarP(&rating, "rating", "r", "", "rating preset id or low,high range")
	_ = cmd.MarkFlagRequired("genre")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

// parseSelection resolves the --genre and --rating flag values.
func parseSelection(genre, rating string) (suggest.Selection, error) {
	g, err := catalog.LookupGenre(genre)
	if err != nil {
		return suggest.Selection{}, err
	}
	r, err := catalog.LookupRating(rating)
	if err != nil {
		return suggest.Selection{}, err
	}
	return suggest.Selection{Genre: g, Rating: r}, nil
}

func runSuggest(sel suggest.Selection) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, closeLog := config.SetupLogger(cfg.App, os.Stderr)
	defer func() { _ = closeLog() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := tea.NewProgram(newSuggestModel(ctx, initSuggester(cfg, logger), sel))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("run suggest: %w", err)
	}

	sm, ok := m.(suggestModel)
	if !ok {
		return fmt.Errorf("unexpected model type from tea program")
	}
	return sm.exitErr()
}

// suggestResultMsg carries the suggestion back to the TUI.
type suggestResultMsg struct {
	result suggest.Result
}

type suggestModel struct {
	ctx       context.Context
	suggester suggester
	sel       suggest.Selection
	spinner   spinner.Model
	result    suggest.Result
	done      bool
	canceled  bool
}

func newSuggestModel(ctx context.Context, s suggester, sel suggest.Selection) suggestModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleInfo
	return suggestModel{
		ctx:       ctx,
		suggester: s,
		sel:       sel,
		spinner:   sp,
	}
}

func (m suggestModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m suggestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.canceled = true
			return m, tea.Quit
		}
	case suggestResultMsg:
		m.result = msg.result
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m suggestModel) View() string {
	if !m.done {
		if m.canceled {
			return ""
		}
		return m.spinner.View() + styleDim.Render(" Finding a "+m.sel.Genre.Name+" movie rated "+m.sel.Rating.Label+"...") + "\n"
	}
	var out string
	if m.result.Movie != nil {
		out = renderCard(suggest.NewCard(*m.result.Movie, m.result.Trailer), 0)
	}
	if errors.Is(m.result.Err, suggest.ErrTrailer) {
		out += styleError.Render(suggest.Message(m.result.Err)) + "\n"
	}
	return out
}

// exitErr is the error the command exits with. A failed trailer lookup
// still prints the movie and is not fatal.
func (m suggestModel) exitErr() error {
	if m.canceled {
		return context.Canceled
	}
	if m.result.Err == nil || errors.Is(m.result.Err, suggest.ErrTrailer) {
		return nil
	}
	return errors.New(suggest.Message(m.result.Err))
}

func (m suggestModel) fetch() tea.Cmd {
	return func() tea.Msg {
		return suggestResultMsg{result: m.suggester.Suggest(m.ctx, m.sel)}
	}
}
