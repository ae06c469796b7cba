package trivia

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Phase is the coarse state of a Session.
type Phase int

const (
	// PhaseLoading means a batch is being fetched (or a fetch failed and
	// awaits a retry).
	PhaseLoading Phase = iota
	// PhaseInProgress means the player is answering questions.
	PhaseInProgress
	// PhaseFinished means the game is over and Score is final.
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a snapshot of a Session.
// Index is meaningful while InProgress, Score once Finished.
type State struct {
	Phase Phase
	Index int
	Score int
}

// Session is the quiz state machine:
//
//	Loading -> InProgress -> Finished
//	Finished -> Loading   (restart via Begin)
//	Loading -> Loading    (retry via Begin)
//
// Every Begin starts a new generation; results tagged with an older
// generation are rejected with ErrStaleGeneration. A Session is not safe for
// concurrent use.
type Session struct {
	size int

	id         uuid.UUID
	generation uint64
	phase      Phase
	index      int
	score      int

	questions []Question
	answers   *AnswerRecord

	attempts int
	lastErr  error
}

// NewSession creates a session expecting batches of size questions.
// The session starts in Loading with no fetch in flight.
func NewSession(size int) *Session {
	return &Session{size: size, phase: PhaseLoading}
}

// Size returns the number of questions a batch must contain.
func (s *Session) Size() int { return s.size }

// ID identifies the current loading phase and the game that follows it.
func (s *Session) ID() uuid.UUID { return s.id }

// Generation returns the tag of the most recent Begin, 0 before the first one.
func (s *Session) Generation() uint64 { return s.generation }

// State returns a snapshot of the session's phase, index and score.
func (s *Session) State() State {
	return State{Phase: s.phase, Index: s.index, Score: s.score}
}

// Attempts returns how many consecutive loading attempts have failed.
// It resets when a batch is delivered.
func (s *Session) Attempts() int { return s.attempts }

// LastError returns the most recent loading failure, nil after a successful delivery.
func (s *Session) LastError() error { return s.lastErr }

// Begin enters Loading, discards any batch and answers, and returns the
// generation that the next Deliver or Reject must carry.
func (s *Session) Begin() uint64 {
	s.generation++
	s.id = uuid.New()
	s.phase = PhaseLoading
	s.index = 0
	s.score = 0
	s.questions = nil
	s.answers = nil
	return s.generation
}

// Deliver installs questions as a fresh batch with an all-unanswered record
// and enters InProgress at the first question.
//
// A batch of the wrong size is recorded as a failed attempt and returned as a
// *ParseError with Kind ErrWrongShape; the session stays in Loading.
func (s *Session) Deliver(gen uint64, questions []Question) error {
	if err := s.checkGeneration(gen); err != nil {
		return err
	}

	if len(questions) != s.size {
		err := &ParseError{
			Kind:  ErrWrongShape,
			Index: -1,
			Err:   fmt.Errorf("expected %d questions, got %d", s.size, len(questions)),
		}
		s.recordFailure(err)
		return err
	}

	s.questions = slices.Clone(questions)
	s.answers = newAnswerRecord(len(questions))
	s.index = 0
	s.score = 0
	s.phase = PhaseInProgress
	s.attempts = 0
	s.lastErr = nil
	return nil
}

// Reject records a failed loading attempt for generation gen. The session
// stays in Loading until the next Begin.
func (s *Session) Reject(gen uint64, err error) error {
	if chk := s.checkGeneration(gen); chk != nil {
		return chk
	}
	s.recordFailure(err)
	return nil
}

func (s *Session) checkGeneration(gen uint64) error {
	if gen == 0 || gen != s.generation {
		return ErrStaleGeneration
	}
	if s.phase != PhaseLoading {
		return ErrNotLoading
	}
	return nil
}

func (s *Session) recordFailure(err error) {
	s.attempts++
	s.lastErr = err
}

// Current returns the question at the current index while InProgress.
func (s *Session) Current() (Question, bool) {
	if s.phase != PhaseInProgress {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Questions returns a copy of the current batch, nil while Loading.
func (s *Session) Questions() []Question {
	return slices.Clone(s.questions)
}

// Selected returns the option chosen for question i, if any.
func (s *Session) Selected(i int) (string, bool) {
	if s.answers == nil {
		return "", false
	}
	return s.answers.Get(i)
}

// Answered returns how many questions of the current batch have an answer.
func (s *Session) Answered() int {
	if s.answers == nil {
		return 0
	}
	return s.answers.Answered()
}

// Answer records option for the current question. The first answer to a
// question is final: later calls, and calls outside InProgress, are no-ops.
// It reports whether the answer was recorded.
func (s *Session) Answer(option string) bool {
	if s.phase != PhaseInProgress {
		return false
	}
	return s.answers.record(s.index, option)
}

// Advance moves to the next question. On the last question it computes the
// final score and enters Finished; this is the only way into Finished.
// It reports whether the session finished.
func (s *Session) Advance() bool {
	if s.phase != PhaseInProgress {
		return false
	}
	if s.index < len(s.questions)-1 {
		s.index++
		return false
	}
	s.score = PointsPerCorrect * s.answers.correctCount(s.questions)
	s.phase = PhaseFinished
	return true
}

// Retreat moves to the previous question. It never alters answers and is a
// no-op on the first question.
func (s *Session) Retreat() {
	if s.phase == PhaseInProgress && s.index > 0 {
		s.index--
	}
}

// Correct returns the number of correctly answered questions so far.
func (s *Session) Correct() int {
	if s.answers == nil {
		return 0
	}
	return s.answers.correctCount(s.questions)
}
