package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/cinemart/internal/catalog"
	"github.com/vadimtrunov/cinemart/internal/suggest"
)

const (
	welcomeMsg      = "Welcome to Cinemart! Send /suggest, pick a genre and a minimum rating, and I'll find you a random movie."
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
	resetMsg        = "Selection cleared. Send /suggest to start over."
	pickGenreMsg    = "Pick a genre:"
	unknownMsg      = "Send /suggest to get a movie suggestion."

	// Callback data prefixes.
	genrePrefix    = "genre:"
	ratingPrefix   = "rating:"
	suggestData    = "suggest"
	changeData     = "change"
	genresPerRow   = 2
	ratingsPerRow  = 2
	suggestLabel   = "🎬 Suggest"
	anotherLabel   = "🎲 Another one"
	changeLabel    = "Change filters"
	ratingTemplate = "Genre: %s\nPick a minimum rating:"
	readyTemplate  = "Genre: %s\nRating: %s"
)

// handleMessage processes an incoming text message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	b.logger.Debug("received message",
		slog.Int64("user_id", userID),
	)

	if !b.sessions.isAllowed(userID) {
		b.sendText(chatID, unauthorizedMsg)
		return
	}

	switch msg.Command() {
	case "start", "help":
		b.sendText(chatID, welcomeMsg)
	case "suggest":
		b.sendKeyboard(chatID, pickGenreMsg, genreKeyboard())
	case "again":
		b.runSuggestion(ctx, chatID)
	case "reset":
		b.sessions.reset(chatID)
		b.sendText(chatID, resetMsg)
	default:
		b.sendText(chatID, unknownMsg)
	}
}

// handleCallback processes inline keyboard callback queries.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil || cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	b.logger.Debug("received callback",
		slog.Int64("user_id", userID),
		slog.String("data", cq.Data),
	)

	// Acknowledge the callback immediately.
	b.out.Request(tgbotapi.NewCallback(cq.ID, "")) //nolint:errcheck // best-effort ack

	if !b.sessions.isAllowed(userID) {
		return
	}

	store := b.sessions.store(chatID)

	switch {
	case strings.HasPrefix(cq.Data, genrePrefix):
		id, err := strconv.Atoi(strings.TrimPrefix(cq.Data, genrePrefix))
		if err != nil {
			return
		}
		st, err := store.Update(func(s suggest.State) (suggest.State, error) { return s.SelectGenre(id) })
		if err != nil {
			b.logger.Warn("invalid genre callback", slog.String("data", cq.Data))
			return
		}
		b.editKeyboard(chatID, messageID, fmt.Sprintf(ratingTemplate, st.Selection.Genre.Name), ratingKeyboard())

	case strings.HasPrefix(cq.Data, ratingPrefix):
		id, err := strconv.Atoi(strings.TrimPrefix(cq.Data, ratingPrefix))
		if err != nil {
			return
		}
		st, err := store.Update(func(s suggest.State) (suggest.State, error) { return s.SelectRating(id) })
		if err != nil {
			b.logger.Warn("invalid rating callback", slog.String("data", cq.Data))
			return
		}
		if !st.CanSuggest() {
			b.editKeyboard(chatID, messageID, pickGenreMsg, genreKeyboard())
			return
		}
		text := fmt.Sprintf(readyTemplate, st.Selection.Genre.Name, st.Selection.Rating.Label)
		b.editKeyboard(chatID, messageID, text, suggestKeyboard(suggestLabel))

	case cq.Data == changeData:
		b.sendKeyboard(chatID, pickGenreMsg, genreKeyboard())

	case cq.Data == suggestData:
		b.runSuggestion(ctx, chatID)
	}
}

// runSuggestion fetches a movie for the chat's selection and sends the card.
// A result overtaken by a newer request from the same chat is dropped.
func (b *Bot) runSuggestion(ctx context.Context, chatID int64) {
	store := b.sessions.store(chatID)
	st, ok := store.Begin()
	if !ok {
		b.sendText(chatID, suggest.MsgIncompleteSelection)
		return
	}

	b.out.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)) //nolint:errcheck // best-effort typing indicator

	res := b.suggester.Suggest(ctx, st.Selection)
	st, applied := store.Apply(st.Generation, res)
	if !applied {
		b.logger.Debug("dropping stale suggestion",
			slog.Int64("chat_id", chatID),
			slog.String("request_id", res.RequestID),
		)
		return
	}

	card, ok := st.Card()
	if !ok {
		b.sendText(chatID, st.Err)
		return
	}
	b.sendCard(chatID, card)
	if st.Err != "" {
		b.sendText(chatID, st.Err)
	}
}

// sendCard sends the movie poster with the card as caption, or a text
// message when the movie has no poster.
func (b *Bot) sendCard(chatID int64, card suggest.Card) {
	text := FormatCard(card)
	kb := suggestKeyboard(anotherLabel)

	if card.PosterURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(card.PosterURL))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeMarkdownV2
		photo.ReplyMarkup = kb
		_, err := b.out.Send(photo)
		if err == nil {
			return
		}
		b.logger.Debug("failed to send poster, falling back to text",
			slog.String("url", card.PosterURL),
			slog.String("error", err.Error()),
		)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.ReplyMarkup = kb
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, plainCard(card))
	}
}

// plainCard renders a card without markup.
func plainCard(c suggest.Card) string {
	var sb strings.Builder
	sb.WriteString(c.Heading)
	sb.WriteString("\nRating: ")
	sb.WriteString(c.Rating)
	sb.WriteString("\n\n")
	sb.WriteString(c.Overview)
	if c.HasTrailer() {
		sb.WriteString("\n\nTrailer: ")
		sb.WriteString(c.TrailerWatchURL)
	}
	return sb.String()
}

// sendText sends a plain text message (no parse mode).
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// sendKeyboard sends a plain-text message with an inline keyboard.
func (b *Bot) sendKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("failed to send message with keyboard",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// editKeyboard replaces the text and keyboard of an earlier message.
func (b *Bot) editKeyboard(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if _, err := b.out.Send(edit); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		b.logger.Error("failed to edit message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// genreKeyboard lists every catalog genre.
func genreKeyboard() tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	for _, g := range catalog.Genres() {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(g.Name, genrePrefix+strconv.Itoa(g.ID)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(chunk(buttons, genresPerRow)...)
}

// ratingKeyboard lists every rating preset.
func ratingKeyboard() tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	for _, r := range catalog.Ratings() {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(r.Label, ratingPrefix+strconv.Itoa(r.ID)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(chunk(buttons, ratingsPerRow)...)
}

// suggestKeyboard offers the suggest action and a way back to the filters.
func suggestKeyboard(label string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, suggestData),
			tgbotapi.NewInlineKeyboardButtonData(changeLabel, changeData),
		),
	)
}

func chunk(buttons []tgbotapi.InlineKeyboardButton, size int) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	for len(buttons) > size {
		rows = append(rows, buttons[:size])
		buttons = buttons[size:]
	}
	if len(buttons) > 0 {
		rows = append(rows, buttons)
	}
	return rows
}
