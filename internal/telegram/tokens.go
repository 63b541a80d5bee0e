package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"pocket-sommelier/internal/recommend"
	"pocket-sommelier/internal/session"
)

// Callback tokens round-trip events through Telegram's callback_data field.
// The transport caps that payload, so every token this package emits must
// stay within maxTokenBytes.
const maxTokenBytes = 64

const (
	tokenRestart = "flow:restart"
	tokenBack    = "flow:back"
	tokenScan    = "noop:scan"
)

type eventKind int

const (
	eventRestart eventKind = iota
	eventBack
	eventAnswer
	eventFavorite
	eventNoop
)

// callbackEvent is a decoded callback token. Which fields are meaningful
// depends on kind: step/answer for eventAnswer, category/position for
// eventFavorite.
type callbackEvent struct {
	kind     eventKind
	step     session.Step
	answer   string
	category string
	position int
}

// encodeAnswer builds the token for picking an option at a questionnaire
// step, e.g. "q:price:any".
func encodeAnswer(step session.Step, answer string) string {
	return "q:" + step.Key() + ":" + answer
}

// encodeFavorite builds the token for saving a shown wine,
// e.g. "fav:reds:12". Only the list position and category travel through the
// transport; the session's candidate cache re-identifies the wine.
func encodeFavorite(ref recommend.Reference) string {
	return "fav:" + ref.Category + ":" + strconv.Itoa(ref.Position)
}

// decodeToken parses an incoming callback token. Malformed or unknown
// tokens are an error; the caller drops them.
func decodeToken(data string) (callbackEvent, error) {
	switch data {
	case tokenRestart:
		return callbackEvent{kind: eventRestart}, nil
	case tokenBack:
		return callbackEvent{kind: eventBack}, nil
	case tokenScan:
		return callbackEvent{kind: eventNoop}, nil
	}

	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		return callbackEvent{}, fmt.Errorf("malformed callback token %q", data)
	}

	switch parts[0] {
	case "q":
		step, ok := session.StepFromKey(parts[1])
		if !ok {
			return callbackEvent{}, fmt.Errorf("unknown step in token %q", data)
		}
		return callbackEvent{kind: eventAnswer, step: step, answer: parts[2]}, nil
	case "fav":
		pos, err := strconv.Atoi(parts[2])
		if err != nil {
			return callbackEvent{}, fmt.Errorf("bad position in token %q", data)
		}
		return callbackEvent{kind: eventFavorite, category: parts[1], position: pos}, nil
	}
	return callbackEvent{}, fmt.Errorf("unknown callback token %q", data)
}
