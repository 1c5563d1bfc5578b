package main

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/cinemart/internal/core"
	"github.com/vadimtrunov/cinemart/internal/suggest"
)

// mockSuggester implements suggester for testing.
type mockSuggester struct {
	mu     sync.Mutex
	result suggest.Result
	calls  []suggest.Selection
}

func (m *mockSuggester) Suggest(_ context.Context, sel suggest.Selection) suggest.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, sel)
	return m.result
}

func testMovie() *core.Movie {
	return &core.Movie{
		ID: 42, Title: "Test Movie", ReleaseDate: "2020-05-01",
		VoteAverage: 7.5, PosterPath: "/p.jpg", Overview: "desc",
	}
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runeMsg(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// press feeds keys through Update and returns the final model and last command.
func press(t *testing.T, m browseModel, keys ...tea.KeyMsg) (browseModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(k)
		m = updated.(browseModel)
	}
	return m, cmd
}

// readyModel selects Action (first genre) and "1 to 5" (first preset).
func readyModel(t *testing.T, s suggester) browseModel {
	t.Helper()
	m := newBrowseModel(context.Background(), s)
	m, _ = press(t, m, keyMsg(tea.KeyDown), keyMsg(tea.KeyTab), keyMsg(tea.KeyDown))
	if !m.state.CanSuggest() {
		t.Fatalf("selection not ready: %+v", m.state.Selection)
	}
	return m
}

// findSuggestion runs cmd (and nested batches) until it yields a suggestionMsg.
func findSuggestion(t *testing.T, cmd tea.Cmd) suggestionMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case suggestionMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if sm, ok := c().(suggestionMsg); ok {
				return sm
			}
		}
	}
	t.Fatal("command produced no suggestionMsg")
	return suggestionMsg{}
}

func TestBrowseModel_InitialState(t *testing.T) {
	m := newBrowseModel(context.Background(), &mockSuggester{})

	if m.genreCursor != -1 || m.ratingCursor != -1 {
		t.Errorf("cursors = %d,%d, want -1,-1", m.genreCursor, m.ratingCursor)
	}
	if m.state.CanSuggest() {
		t.Error("suggest should be disabled initially")
	}
	if m.keys.Suggest.Enabled() {
		t.Error("suggest key binding should be disabled initially")
	}
	if len(m.genres) != 16 || len(m.ratings) != 6 {
		t.Errorf("catalog sizes = %d,%d", len(m.genres), len(m.ratings))
	}
	if m.Init() != nil {
		t.Error("Init should not start any command")
	}
}

func TestBrowseModel_EnterDisabledUntilReady(t *testing.T) {
	ms := &mockSuggester{}
	m := newBrowseModel(context.Background(), ms)

	m, _ = press(t, m, keyMsg(tea.KeyDown)) // genre only
	m, cmd := press(t, m, keyMsg(tea.KeyEnter))

	if cmd != nil {
		t.Error("enter should do nothing without a rating")
	}
	if m.state.Loading || m.state.Generation != 0 {
		t.Errorf("state changed: %+v", m.state)
	}
}

func TestBrowseModel_Selection(t *testing.T) {
	m := readyModel(t, &mockSuggester{})

	if m.state.Selection.Genre.ID != 28 {
		t.Errorf("genre = %+v, want Action", m.state.Selection.Genre)
	}
	if m.state.Selection.Rating.ID != 1 {
		t.Errorf("rating = %+v, want preset 1", m.state.Selection.Rating)
	}
	if !m.keys.Suggest.Enabled() {
		t.Error("suggest binding should be enabled")
	}

	// Moving back above the first genre clears it.
	m, _ = press(t, m, keyMsg(tea.KeyTab), keyMsg(tea.KeyUp))
	if m.state.Selection.Genre.ID != 0 {
		t.Errorf("genre = %+v, want cleared", m.state.Selection.Genre)
	}
	if m.state.CanSuggest() || m.keys.Suggest.Enabled() {
		t.Error("suggest should be disabled after clearing the genre")
	}
}

func TestBrowseModel_CursorClamped(t *testing.T) {
	m := newBrowseModel(context.Background(), &mockSuggester{})
	m, _ = press(t, m, keyMsg(tea.KeyTab))
	for range 10 {
		m, _ = press(t, m, keyMsg(tea.KeyDown))
	}
	if m.ratingCursor != 5 {
		t.Errorf("ratingCursor = %d, want 5", m.ratingCursor)
	}
	if m.state.Selection.Rating.Label != "9 or above" {
		t.Errorf("rating = %+v", m.state.Selection.Rating)
	}

	m, _ = press(t, m, runeMsg("k"), runeMsg("k"))
	if m.ratingCursor != 3 {
		t.Errorf("ratingCursor = %d, want 3 after k k", m.ratingCursor)
	}
}

func TestBrowseModel_SuggestFlow(t *testing.T) {
	ms := &mockSuggester{result: suggest.Result{
		RequestID: "r1",
		Movie:     testMovie(),
		Trailer:   &suggest.Trailer{Key: "xyz", Type: "Trailer"},
	}}
	m := readyModel(t, ms)

	m, cmd := press(t, m, keyMsg(tea.KeyEnter))
	if !m.state.Loading || m.state.Generation != 1 {
		t.Fatalf("state after enter = %+v", m.state)
	}
	if !strings.Contains(m.View(), "Finding a movie") {
		t.Error("view should show the spinner line while loading")
	}

	msg := findSuggestion(t, cmd)
	if msg.gen != 1 {
		t.Errorf("gen = %d, want 1", msg.gen)
	}
	if len(ms.calls) != 1 || ms.calls[0].Genre.ID != 28 {
		t.Errorf("calls = %+v", ms.calls)
	}

	updated, _ := m.Update(msg)
	m = updated.(browseModel)
	if m.state.Loading || m.state.Movie == nil || m.state.Trailer == nil {
		t.Fatalf("state after result = %+v", m.state)
	}

	view := m.View()
	for _, want := range []string{"Test Movie (2020)", "7.5", "w200/p.jpg", "embed/xyz"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBrowseModel_StaleResponseIgnored(t *testing.T) {
	m := readyModel(t, &mockSuggester{})

	m, _ = press(t, m, keyMsg(tea.KeyEnter)) // generation 1
	m, _ = press(t, m, keyMsg(tea.KeyEnter)) // generation 2
	if m.state.Generation != 2 {
		t.Fatalf("generation = %d, want 2", m.state.Generation)
	}

	old := suggest.Result{Movie: &core.Movie{ID: 1, Title: "Old"}}
	updated, _ := m.Update(suggestionMsg{gen: 1, result: old})
	m = updated.(browseModel)
	if m.state.Movie != nil || !m.state.Loading {
		t.Fatalf("stale result applied: %+v", m.state)
	}

	fresh := suggest.Result{Movie: &core.Movie{ID: 2, Title: "Fresh"}}
	updated, _ = m.Update(suggestionMsg{gen: 2, result: fresh})
	m = updated.(browseModel)
	if m.state.Movie == nil || m.state.Movie.Title != "Fresh" {
		t.Errorf("movie = %+v, want Fresh", m.state.Movie)
	}
}

func TestBrowseModel_ErrorLine(t *testing.T) {
	m := readyModel(t, &mockSuggester{})
	m, _ = press(t, m, keyMsg(tea.KeyEnter))

	updated, _ := m.Update(suggestionMsg{gen: 1, result: suggest.Result{Err: suggest.ErrNoResults}})
	m = updated.(browseModel)

	if m.state.Err != suggest.MsgNoMovies {
		t.Errorf("err = %q", m.state.Err)
	}
	if !strings.Contains(m.View(), suggest.MsgNoMovies) {
		t.Error("view should show the error message")
	}
}

func TestBrowseModel_TrailerErrorKeepsMovie(t *testing.T) {
	m := readyModel(t, &mockSuggester{})
	m, _ = press(t, m, keyMsg(tea.KeyEnter))

	updated, _ := m.Update(suggestionMsg{gen: 1, result: suggest.Result{Movie: testMovie(), Err: suggest.ErrTrailer}})
	m = updated.(browseModel)

	view := m.View()
	if !strings.Contains(view, "Test Movie (2020)") || !strings.Contains(view, suggest.MsgTrailerFailed) {
		t.Errorf("view should show movie and trailer error:\n%s", view)
	}
}

func TestBrowseModel_Quit(t *testing.T) {
	m := newBrowseModel(context.Background(), &mockSuggester{})
	for _, k := range []tea.KeyMsg{runeMsg("q"), keyMsg(tea.KeyCtrlC)} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Errorf("%s should return a quit command", k)
		}
	}
}

func TestBrowseModel_WindowSize(t *testing.T) {
	m := newBrowseModel(context.Background(), &mockSuggester{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	bm := updated.(browseModel)

	if bm.width != 80 || bm.help.Width != 80 {
		t.Errorf("width = %d, help width = %d", bm.width, bm.help.Width)
	}
	if bm.cardWidth() != 76 {
		t.Errorf("cardWidth = %d, want 76", bm.cardWidth())
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct{ c, n, want int }{
		{-2, 5, -1},
		{-1, 5, -1},
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 4},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.c, tt.n); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.c, tt.n, got, tt.want)
		}
	}
}
