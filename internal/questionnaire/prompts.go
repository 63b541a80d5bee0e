package questionnaire

import (
	"fmt"
	"strings"

	"pocket-sommelier/internal/catalog"
	"pocket-sommelier/internal/session"
)

// Option is one choice offered at a questionnaire step. Answer is the short
// value recorded in the session and round-tripped through callback tokens.
type Option struct {
	Label  string
	Answer string
}

// Prompt is the transport-neutral rendering of one step: the question text,
// the selectable options, and whether a back edge exists from here.
type Prompt struct {
	Step    session.Step
	Text    string
	Options []Option
	HasBack bool
}

var priceOptions = []Option{
	{Label: "Price doesn’t matter", Answer: "any"},
	{Label: "I care about value", Answer: "mid"},
	{Label: "Looking for good deals", Answer: "smart"},
	{Label: "Willing to pay for quality", Answer: "premium"},
}

var purposeOptions = []Option{
	{Label: "🎁 Gift", Answer: "gift"},
	{Label: "🧳 Collection", Answer: "collection"},
	{Label: "🍽️ Dinner", Answer: "dinner"},
	{Label: "🎉 For a party", Answer: "party"},
}

func wineTypeOptions() []Option {
	opts := make([]Option, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		opts = append(opts, Option{Label: c.Label, Answer: c.Key})
	}
	return opts
}

func wineTypeText() string {
	var b strings.Builder
	b.WriteString("🎨 *Choose your wine preference:*\n")
	for _, c := range catalog.Categories {
		fmt.Fprintf(&b, "\n*%s*: %s\n", capitalize(c.Key), c.Description)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PromptFor returns the prompt belonging to a step. StepDone has no question
// left to ask; its prompt only offers a restart.
func PromptFor(step session.Step) Prompt {
	switch step {
	case session.StepPrice:
		return Prompt{
			Step:    session.StepPrice,
			Text:    "💰 *How much does price matter to you?*",
			Options: priceOptions,
		}
	case session.StepPurpose:
		return Prompt{
			Step:    session.StepPurpose,
			Text:    "🎯 *What's the purpose of your purchase?*",
			Options: purposeOptions,
			HasBack: true,
		}
	case session.StepWineType:
		return Prompt{
			Step:    session.StepWineType,
			Text:    wineTypeText(),
			Options: wineTypeOptions(),
			HasBack: true,
		}
	}
	return Prompt{
		Step: session.StepDone,
		Text: "You already have a recommendation. Want to look for another wine?",
	}
}

func validAnswer(step session.Step, answer string) bool {
	var opts []Option
	switch step {
	case session.StepPrice:
		opts = priceOptions
	case session.StepPurpose:
		opts = purposeOptions
	case session.StepWineType:
		opts = wineTypeOptions()
	default:
		return false
	}
	for _, o := range opts {
		if o.Answer == answer {
			return true
		}
	}
	return false
}
