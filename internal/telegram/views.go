package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pocket-sommelier/internal/favorites"
	"pocket-sommelier/internal/questionnaire"
	"pocket-sommelier/internal/recommend"
)

const welcomeText = "Welcome! I'm your pocket sommelier. I'll help you choose a wine " +
	"that fits your taste, budget, and purpose.\n\nYou can:"

const (
	noticeAdded         = "💖 Added to favorites"
	noticeAlreadySaved  = "Already in your favorites"
	noticeStale         = "That recommendation has expired — find a new wine with /start"
	noticeSaveFailed    = "Couldn't save right now, please try again later"
	noticeInDevelopment = "This feature is under development."
)

const (
	msgCatalogDown = "The wine catalog is not responding right now. Please try again later."
	msgNoWines     = "Sorry, no wines found for your preferences."
	msgNoFavorites = "You have no favorite wines yet."
	msgHint        = "Send /start to find a wine or /favorites to see what you saved."
	msgNotAllowed  = "Sorry, this bot is private."
)

func welcomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍷 Find a wine", tokenRestart),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Scan a bottle (soon)", tokenScan),
		),
	)
}

// promptKeyboard renders one questionnaire step: one option per row, plus a
// back row where the flow defines a reverse edge. A finished questionnaire
// only offers a restart.
func promptKeyboard(p questionnaire.Prompt) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, opt := range p.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Label, encodeAnswer(p.Step, opt.Answer)),
		))
	}
	if p.HasBack {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", tokenBack),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Start over", tokenRestart),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func wineCardText(pick recommend.Pick) string {
	rating := "No rating"
	if avg := pick.Record.RatingAverage(); avg > 0 {
		rating = fmt.Sprintf("%.1f", avg)
	}
	return fmt.Sprintf("🍷 *%s*\n🏭 Winery: %s\n⭐ Rating: %s\n\nHope this is what you're looking for!",
		pick.Record.Name(), pick.Record.Winery(), rating)
}

func favoriteKeyboard(ref recommend.Reference) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💖 Add to Favorites", encodeFavorite(ref)),
		),
	)
}

func favoritesText(recs []favorites.Record) string {
	var b strings.Builder
	b.WriteString("Your favorite wines:\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "\n🍷 %s", r.WineName)
		if r.Country != "" {
			fmt.Fprintf(&b, " (%s)", r.Country)
		}
		if r.Rating > 0 {
			fmt.Fprintf(&b, " — ⭐ %.1f", r.Rating)
		}
	}
	return b.String()
}
