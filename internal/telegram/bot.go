package telegram

import (
	"context"
	"errors"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pocket-sommelier/internal/catalog"
	"pocket-sommelier/internal/favorites"
	"pocket-sommelier/internal/questionnaire"
	"pocket-sommelier/internal/recommend"
)

// Bot wires Telegram updates to the questionnaire, resolver and favorites
// service. Telegram delivers one callback per tap, in order per chat, and
// every state change below goes through the session manager's atomic update,
// so no extra locking happens here.
type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	machine   *questionnaire.Machine
	resolver  *recommend.Resolver
	favorites *favorites.Service
	allowed   map[int64]struct{}
	parseMode string
}

func New(botToken string, machine *questionnaire.Machine, resolver *recommend.Resolver,
	favSvc *favorites.Service, allowedUsers []int64, parseMode string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:       api,
		s:         botAPISender{api: api},
		machine:   machine,
		resolver:  resolver,
		favorites: favSvc,
		parseMode: parseMode,
	}
	b.setAllowed(allowedUsers)
	return b, nil
}

func (b *Bot) setAllowed(ids []int64) {
	if len(ids) == 0 {
		return
	}
	b.allowed = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		b.allowed[id] = struct{}{}
	}
}

// isAllowed gates the bot to the configured allowlist. An empty allowlist
// means the bot is open to everyone.
func (b *Bot) isAllowed(userID int64) bool {
	if b.allowed == nil {
		return true
	}
	_, ok := b.allowed[userID]
	return ok
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if !b.isAllowed(msg.From.ID) {
		log.Printf("ignoring message from user %d (@%s): not in allowlist", msg.From.ID, msg.From.UserName)
		b.sendMessage(msg.Chat.ID, msgNotAllowed)
		return
	}

	switch msg.Command() {
	case "start":
		out := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)
		out.ReplyMarkup = welcomeKeyboard()
		if _, err := b.s.Send(out); err != nil {
			log.Printf("failed to send welcome: %v", err)
		}
	case "favorites":
		b.showFavorites(ctx, msg.Chat.ID, msg.From.ID)
	default:
		b.sendMessage(msg.Chat.ID, msgHint)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	if !b.isAllowed(userID) {
		b.answerCallback(cb.ID, msgNotAllowed)
		return
	}

	ev, err := decodeToken(cb.Data)
	if err != nil {
		log.Printf("dropping callback from user %d: %v", userID, err)
		b.answerCallback(cb.ID, "")
		return
	}

	switch ev.kind {
	case eventRestart:
		b.answerCallback(cb.ID, "")
		b.renderPrompt(chatID, messageID, b.machine.Restart(userID))

	case eventBack:
		b.answerCallback(cb.ID, "")
		b.renderPrompt(chatID, messageID, b.machine.Back(userID))

	case eventAnswer:
		b.answerCallback(cb.ID, "")
		res, err := b.machine.Apply(userID, questionnaire.Event{Step: ev.step, Answer: ev.answer})
		if errors.Is(err, questionnaire.ErrOutOfSequence) {
			// Double tap or a stale screen. Re-render, never complain.
			b.renderPrompt(chatID, messageID, res.Prompt)
			return
		}
		if res.Done {
			b.sendRecommendation(ctx, chatID, messageID, userID, res.Category)
			return
		}
		b.renderPrompt(chatID, messageID, res.Prompt)

	case eventFavorite:
		b.saveFavorite(ctx, cb.ID, userID, recommend.Reference{
			Category: ev.category,
			Position: ev.position,
		})

	case eventNoop:
		b.answerCallback(cb.ID, "")
		b.editText(chatID, messageID, noticeInDevelopment)
	}
}

// renderPrompt replaces the questionnaire message in place, the way the
// flow's screens chain together.
func (b *Bot) renderPrompt(chatID int64, messageID int, p questionnaire.Prompt) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, p.Text, promptKeyboard(p))
	edit.ParseMode = b.parseMode
	if _, err := b.s.Send(edit); err != nil {
		log.Printf("failed to render prompt: %v", err)
	}
}

func (b *Bot) sendRecommendation(ctx context.Context, chatID int64, messageID int, userID int64, category string) {
	pick, err := b.resolver.Resolve(ctx, userID, category)
	switch {
	case errors.Is(err, recommend.ErrNoCandidates):
		b.editText(chatID, messageID, msgNoWines)
		return
	case errors.Is(err, catalog.ErrUnavailable):
		log.Printf("catalog fetch failed for user %d: %v", userID, err)
		b.editText(chatID, messageID, msgCatalogDown)
		return
	case err != nil:
		log.Printf("resolve failed for user %d: %v", userID, err)
		b.editText(chatID, messageID, msgCatalogDown)
		return
	}

	text := wineCardText(pick)
	kb := favoriteKeyboard(pick.Ref)

	if img := pick.Record.ImageURL(); img != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(img))
		photo.Caption = text
		photo.ParseMode = b.parseMode
		photo.ReplyMarkup = kb
		_, err := b.s.Send(photo)
		if err == nil {
			return
		}
		log.Printf("failed to send wine photo, falling back to text: %v", err)
	}

	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = b.parseMode
	out.ReplyMarkup = kb
	if _, err := b.s.Send(out); err != nil {
		log.Printf("failed to send wine card: %v", err)
	}
}

// saveFavorite surfaces every outcome as a small callback notice so repeated
// taps never spam the chat.
func (b *Bot) saveFavorite(ctx context.Context, callbackID string, userID int64, ref recommend.Reference) {
	outcome, err := b.favorites.Save(ctx, userID, ref)
	switch {
	case errors.Is(err, favorites.ErrStaleReference):
		b.answerCallback(callbackID, noticeStale)
	case err != nil:
		log.Printf("favorite save failed for user %d: %v", userID, err)
		b.answerCallback(callbackID, noticeSaveFailed)
	case outcome == favorites.AlreadyExists:
		b.answerCallback(callbackID, noticeAlreadySaved)
	default:
		b.answerCallback(callbackID, noticeAdded)
	}
}

func (b *Bot) showFavorites(ctx context.Context, chatID, userID int64) {
	recs, err := b.favorites.List(ctx, userID)
	if err != nil {
		log.Printf("list favorites failed for user %d: %v", userID, err)
		b.sendMessage(chatID, noticeSaveFailed)
		return
	}
	if len(recs) == 0 {
		b.sendMessage(chatID, msgNoFavorites)
		return
	}
	b.sendMessage(chatID, favoritesText(recs))
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.s.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.s.Send(edit); err != nil {
		log.Printf("failed to edit message: %v", err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
