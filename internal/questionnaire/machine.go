package questionnaire

import (
	"errors"

	"pocket-sommelier/internal/session"
)

// ErrOutOfSequence marks an event that does not belong to the session's
// current step: a tap on a screen the user has already moved past, or a
// double-submission. The caller should re-render the current prompt and
// otherwise treat the event as a no-op.
var ErrOutOfSequence = errors.New("questionnaire event out of sequence")

// Result is the outcome of applying one questionnaire event. When Done is
// set, the flow finished and Category carries the user's wine-type choice;
// otherwise Prompt is the next (or re-rendered current) screen.
type Result struct {
	Prompt   Prompt
	Done     bool
	Category string
}

// Machine drives users through the fixed question sequence
// price → purpose → wine type. It is the only writer of a session's step and
// answers; every transition runs as one atomic session update.
type Machine struct {
	sessions *session.Manager
}

func NewMachine(sessions *session.Manager) *Machine {
	return &Machine{sessions: sessions}
}

// Restart resets the user's answers and puts them back on the first step.
// It is reachable from every state, including a finished questionnaire.
func (m *Machine) Restart(userID int64) Prompt {
	m.sessions.Update(userID, func(s *session.Session) {
		s.RestartQuestionnaire()
	})
	return PromptFor(session.StepPrice)
}

// Apply records the answer carried by ev and advances the session one step.
// Events whose step does not match the session's current step, or whose
// answer is not one of the step's options, leave the session untouched and
// return ErrOutOfSequence together with the current prompt.
func (m *Machine) Apply(userID int64, ev Event) (Result, error) {
	var (
		res Result
		err error
	)
	m.sessions.Update(userID, func(s *session.Session) {
		if ev.Step != s.Step || !validAnswer(s.Step, ev.Answer) {
			res = Result{Prompt: PromptFor(s.Step)}
			err = ErrOutOfSequence
			return
		}
		s.SetAnswer(s.Step.Key(), ev.Answer)
		switch s.Step {
		case session.StepPrice:
			s.Step = session.StepPurpose
		case session.StepPurpose:
			s.Step = session.StepWineType
		case session.StepWineType:
			s.Step = session.StepDone
		}
		if s.Step == session.StepDone {
			res = Result{Done: true, Category: ev.Answer}
			return
		}
		res = Result{Prompt: PromptFor(s.Step)}
	})
	return res, err
}

// Back follows the explicit reverse edge from the current step, if one
// exists, and re-prompts. Answers recorded for other steps are kept.
func (m *Machine) Back(userID int64) Prompt {
	var p Prompt
	m.sessions.Update(userID, func(s *session.Session) {
		switch s.Step {
		case session.StepPurpose:
			s.Step = session.StepPrice
		case session.StepWineType:
			s.Step = session.StepPurpose
		}
		p = PromptFor(s.Step)
	})
	return p
}

// Current re-renders the prompt for the session's current step without
// touching any state.
func (m *Machine) Current(userID int64) Prompt {
	var p Prompt
	m.sessions.Update(userID, func(s *session.Session) {
		p = PromptFor(s.Step)
	})
	return p
}

// Event is one decoded questionnaire interaction: the step the user was
// shown and the option they picked.
type Event struct {
	Step   session.Step
	Answer string
}
