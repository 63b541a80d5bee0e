package questionnaire

import (
	"errors"
	"testing"

	"pocket-sommelier/internal/session"
)

func TestMachine_HappyPathWalk(t *testing.T) {
	sessions := session.NewManager()
	m := NewMachine(sessions)
	userID := int64(42)

	p := m.Restart(userID)
	if p.Step != session.StepPrice {
		t.Fatalf("restart should land on price step, got %v", p.Step)
	}

	res, err := m.Apply(userID, Event{Step: session.StepPrice, Answer: "any"})
	if err != nil || res.Done || res.Prompt.Step != session.StepPurpose {
		t.Fatalf("after price: res=%+v err=%v", res, err)
	}

	res, err = m.Apply(userID, Event{Step: session.StepPurpose, Answer: "gift"})
	if err != nil || res.Done || res.Prompt.Step != session.StepWineType {
		t.Fatalf("after purpose: res=%+v err=%v", res, err)
	}

	res, err = m.Apply(userID, Event{Step: session.StepWineType, Answer: "reds"})
	if err != nil {
		t.Fatalf("after type: %v", err)
	}
	if !res.Done || res.Category != "reds" {
		t.Fatalf("completion should carry the type answer, got %+v", res)
	}

	sess, _ := sessions.Snapshot(userID)
	if sess.Step != session.StepDone {
		t.Fatalf("final step = %v", sess.Step)
	}
	// Price and purpose answers stay recorded verbatim even though the
	// recommendation does not use them yet.
	for key, want := range map[string]string{"price": "any", "purpose": "gift", "type": "reds"} {
		if v, ok := sess.Answer(key); !ok || v != want {
			t.Fatalf("answer %q = %q (%v), want %q", key, v, ok, want)
		}
	}
}

func TestMachine_OutOfSequenceIsANoOp(t *testing.T) {
	sessions := session.NewManager()
	m := NewMachine(sessions)
	userID := int64(7)
	m.Restart(userID)

	before, _ := sessions.Snapshot(userID)

	// Tap from a screen the user never reached.
	res, err := m.Apply(userID, Event{Step: session.StepWineType, Answer: "reds"})
	if !errors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence, got %v", err)
	}
	if res.Prompt.Step != session.StepPrice {
		t.Fatalf("rejection should re-render the current step, got %v", res.Prompt.Step)
	}

	after, _ := sessions.Snapshot(userID)
	if after.Step != before.Step || len(after.Answers) != len(before.Answers) {
		t.Fatalf("out-of-sequence event changed state: before=%+v after=%+v", before, after)
	}

	// Unknown option for the right step is rejected the same way.
	if _, err := m.Apply(userID, Event{Step: session.StepPrice, Answer: "free"}); !errors.Is(err, ErrOutOfSequence) {
		t.Fatalf("unknown answer should be rejected, got %v", err)
	}
}

func TestMachine_DoubleTapDoesNotSkipSteps(t *testing.T) {
	sessions := session.NewManager()
	m := NewMachine(sessions)
	userID := int64(9)
	m.Restart(userID)

	if _, err := m.Apply(userID, Event{Step: session.StepPrice, Answer: "any"}); err != nil {
		t.Fatalf("first tap: %v", err)
	}
	// Second delivery of the same tap arrives after the step advanced.
	if _, err := m.Apply(userID, Event{Step: session.StepPrice, Answer: "any"}); !errors.Is(err, ErrOutOfSequence) {
		t.Fatalf("replayed tap should be out of sequence, got %v", err)
	}

	sess, _ := sessions.Snapshot(userID)
	if sess.Step != session.StepPurpose {
		t.Fatalf("double tap skipped to %v", sess.Step)
	}
}

func TestMachine_BackKeepsOtherAnswers(t *testing.T) {
	sessions := session.NewManager()
	m := NewMachine(sessions)
	userID := int64(11)
	m.Restart(userID)
	m.Apply(userID, Event{Step: session.StepPrice, Answer: "premium"})
	m.Apply(userID, Event{Step: session.StepPurpose, Answer: "dinner"})

	p := m.Back(userID)
	if p.Step != session.StepPurpose {
		t.Fatalf("back from wine type should land on purpose, got %v", p.Step)
	}
	p = m.Back(userID)
	if p.Step != session.StepPrice {
		t.Fatalf("back from purpose should land on price, got %v", p.Step)
	}
	// No reverse edge from the first step.
	if p = m.Back(userID); p.Step != session.StepPrice {
		t.Fatalf("back from price should stay on price, got %v", p.Step)
	}

	sess, _ := sessions.Snapshot(userID)
	for key, want := range map[string]string{"price": "premium", "purpose": "dinner"} {
		if v, _ := sess.Answer(key); v != want {
			t.Fatalf("back cleared answer %q: %q", key, v)
		}
	}
}

func TestMachine_RestartReachableFromEveryState(t *testing.T) {
	sessions := session.NewManager()
	m := NewMachine(sessions)
	userID := int64(13)

	walk := []Event{
		{Step: session.StepPrice, Answer: "any"},
		{Step: session.StepPurpose, Answer: "party"},
		{Step: session.StepWineType, Answer: "sparkling"},
	}

	for stop := 0; stop <= len(walk); stop++ {
		m.Restart(userID)
		for i := 0; i < stop; i++ {
			if _, err := m.Apply(userID, walk[i]); err != nil {
				t.Fatalf("walk[%d]: %v", i, err)
			}
		}

		p := m.Restart(userID)
		if p.Step != session.StepPrice {
			t.Fatalf("restart from depth %d landed on %v", stop, p.Step)
		}
		sess, _ := sessions.Snapshot(userID)
		if sess.Step != session.StepPrice || len(sess.Answers) != 0 {
			t.Fatalf("restart from depth %d left state: %+v", stop, sess)
		}
	}
}

func TestPromptFor_OfferedOptionsMatchOriginalFlow(t *testing.T) {
	price := PromptFor(session.StepPrice)
	if len(price.Options) != 4 || price.HasBack {
		t.Fatalf("unexpected price prompt: %+v", price)
	}
	purpose := PromptFor(session.StepPurpose)
	if len(purpose.Options) != 4 || !purpose.HasBack {
		t.Fatalf("unexpected purpose prompt: %+v", purpose)
	}
	wineType := PromptFor(session.StepWineType)
	if len(wineType.Options) != 6 || !wineType.HasBack {
		t.Fatalf("unexpected wine type prompt: %+v", wineType)
	}
}
