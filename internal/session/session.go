package session

import (
	"time"

	"pocket-sommelier/internal/catalog"
)

// Step is the questionnaire position a session is currently at.
type Step int

const (
	StepPrice Step = iota
	StepPurpose
	StepWineType
	StepDone
)

// Key returns the short stable name used in answer keys and callback tokens.
func (s Step) Key() string {
	switch s {
	case StepPrice:
		return "price"
	case StepPurpose:
		return "purpose"
	case StepWineType:
		return "type"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// StepFromKey is the inverse of Key. The bool is false for unknown keys.
func StepFromKey(key string) (Step, bool) {
	switch key {
	case "price":
		return StepPrice, true
	case "purpose":
		return StepPurpose, true
	case "type":
		return StepWineType, true
	case "done":
		return StepDone, true
	}
	return 0, false
}

// Answer is one recorded questionnaire choice. Answers keep insertion order.
type Answer struct {
	Key   string
	Value string
}

// Session holds one user's questionnaire progress and the wine list backing
// their most recent recommendation. LastCandidates and LastCategory are only
// ever written together: a session never holds wines from a category other
// than LastCategory.
type Session struct {
	UserID         int64
	Answers        []Answer
	Step           Step
	LastCandidates []catalog.Record
	LastCategory   string
	LastSeen       time.Time
}

// SetAnswer records a choice, replacing any earlier answer for the same key
// while keeping the original position.
func (s *Session) SetAnswer(key, value string) {
	for i := range s.Answers {
		if s.Answers[i].Key == key {
			s.Answers[i].Value = value
			return
		}
	}
	s.Answers = append(s.Answers, Answer{Key: key, Value: value})
}

// Answer returns the recorded choice for key.
func (s *Session) Answer(key string) (string, bool) {
	for _, a := range s.Answers {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetCandidates replaces the cached wine list and its category in one step.
// The previous list is overwritten, never appended to: at most one resolvable
// recommendation exists per user at a time.
func (s *Session) SetCandidates(wines []catalog.Record, category string) {
	s.LastCandidates = wines
	s.LastCategory = category
}

// RestartQuestionnaire clears recorded answers and returns the session to the
// first step. Cached candidates are kept until the next recommendation
// overwrites them.
func (s *Session) RestartQuestionnaire() {
	s.Answers = nil
	s.Step = StepPrice
}
