package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/cinemart/internal/config"
	"github.com/vadimtrunov/cinemart/internal/httpclient"
	"github.com/vadimtrunov/cinemart/internal/metadata/tmdb"
	"github.com/vadimtrunov/cinemart/internal/suggest"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	styleTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true) // cyan bold
	styleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true) // yellow bold
	styleLink     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)
)

// defaultCardWidth wraps the overview when the terminal width is unknown.
const defaultCardWidth = 72

// suggester runs one suggestion attempt; *suggest.Suggester implements it.
type suggester interface {
	Suggest(ctx context.Context, sel suggest.Selection) suggest.Result
}

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// initSuggester wires the TMDb client into a Suggester.
func initSuggester(cfg *config.Config, logger *slog.Logger) *suggest.Suggester {
	client := tmdb.New(cfg.TMDb.APIKey, cfg.TMDb.BaseURL, httpclient.Config{
		Timeout:   cfg.TMDb.Timeout,
		UserAgent: "cinemart/" + version,
	}, logger)
	logger.Debug("TMDb client initialized",
		slog.String("url", sanitizeURL(cfg.TMDb.BaseURL)),
		slog.Duration("timeout", cfg.TMDb.Timeout),
	)
	return suggest.New(client, nil, logger)
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// renderCard draws a suggestion card for the terminal.
func renderCard(c suggest.Card, width int) string {
	if width <= 0 {
		width = defaultCardWidth
	}

	var sb strings.Builder
	sb.WriteString(styleTitle.Render(c.Heading))
	sb.WriteString("\n")
	sb.WriteString(styleDim.Render("Rating: "))
	sb.WriteString(c.Rating)
	sb.WriteString("\n")
	if c.PosterURL != "" {
		sb.WriteString(styleDim.Render("Poster: "))
		sb.WriteString(styleLink.Render(c.PosterURL))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Width(width).Render(c.Overview))
	sb.WriteString("\n")
	if c.HasTrailer() {
		sb.WriteString("\n")
		sb.WriteString(styleDim.Render("Trailer: "))
		sb.WriteString(styleLink.Render(c.TrailerWatchURL))
		sb.WriteString("\n")
		sb.WriteString(styleDim.Render("Embed:   "))
		sb.WriteString(c.TrailerEmbedURL)
		sb.WriteString("\n")
	}
	return sb.String()
}
