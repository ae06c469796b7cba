package trivia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-trivia/internal/events"
	"github.com/phrazzld/scry-trivia/internal/platform/logger"
	"github.com/phrazzld/scry-trivia/internal/redact"
)

// Result is the outcome of one fetch, tagged with the generation it was
// started for.
type Result struct {
	Generation uint64
	Questions  []Question
	Err        error
}

// Notice is shown to the player after a failed load. It returns true when the
// player acknowledges the failure and wants another attempt.
type Notice func(ctx context.Context, err error, attempt int) bool

// Event payloads
type (
	loadingPayload struct {
		Attempt int `json:"attempt"`
	}
	loadedPayload struct {
		Count int `json:"count"`
	}
	loadFailedPayload struct {
		Attempt int    `json:"attempt"`
		Error   string `json:"error"`
	}
	answeredPayload struct {
		Index   int    `json:"index"`
		Option  string `json:"option"`
		Correct bool   `json:"correct"`
	}
	finishedPayload struct {
		Score   int `json:"score"`
		Correct int `json:"correct"`
		Total   int `json:"total"`
	}
)

// Game drives a Session: it fetches batches from a QuestionSource, applies
// the results and emits lifecycle events.
//
// Fetch only talks to the source and may run on any goroutine. Every other
// method touches the session and must be called from one goroutine.
type Game struct {
	session *Session
	source  QuestionSource
	policy  RetryPolicy
	emitter events.Emitter
	base    *slog.Logger
	logger  *slog.Logger
}

// NewGame creates a Game. emitter may be nil.
func NewGame(
	session *Session,
	source QuestionSource,
	policy RetryPolicy,
	emitter events.Emitter,
	log *slog.Logger,
) (*Game, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}
	if source == nil {
		return nil, errors.New("question source cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Game{
		session: session,
		source:  source,
		policy:  policy,
		emitter: emitter,
		base:    log,
		logger:  log.With("component", "trivia_game"),
	}, nil
}

// Session returns the underlying session.
func (g *Game) Session() *Session { return g.session }

// Begin enters Loading and returns the generation the next fetch must carry.
func (g *Game) Begin(ctx context.Context) uint64 {
	gen := g.session.Begin()
	g.logger.InfoContext(ctx, "loading questions",
		"session_id", g.session.ID(),
		"generation", gen,
		"attempt", g.session.Attempts()+1)
	g.emit(ctx, events.TypeQuizLoading, loadingPayload{Attempt: g.session.Attempts() + 1})
	return gen
}

// LoadContext returns ctx carrying a logger tagged with the session and the
// current generation, for the fetch that follows Begin. Sources that log
// through logger.FromContext pick it up.
func (g *Game) LoadContext(ctx context.Context) context.Context {
	return logger.WithLogger(ctx, g.base.With(
		"session_id", g.session.ID(),
		"generation", g.session.Generation()))
}

// Fetch asks the source for one batch.
func (g *Game) Fetch(ctx context.Context, gen uint64) Result {
	questions, err := g.source.FetchQuestions(ctx)
	return Result{Generation: gen, Questions: questions, Err: err}
}

// Settle applies r to the session. It returns nil when the batch was
// installed, ErrStaleGeneration when r was superseded, and the load failure
// otherwise. Failures leave the session in Loading.
func (g *Game) Settle(ctx context.Context, r Result) error {
	var err error
	if r.Err != nil {
		err = g.session.Reject(r.Generation, r.Err)
		if err == nil {
			err = r.Err
		}
	} else {
		err = g.session.Deliver(r.Generation, r.Questions)
	}

	switch {
	case err == nil:
		g.logger.InfoContext(ctx, "questions loaded",
			"session_id", g.session.ID(),
			"count", len(r.Questions))
		g.emit(ctx, events.TypeQuizLoaded, loadedPayload{Count: len(r.Questions)})
		return nil
	case errors.Is(err, ErrStaleGeneration), errors.Is(err, ErrNotLoading):
		g.logger.DebugContext(ctx, "discarding superseded result",
			"generation", r.Generation,
			"current_generation", g.session.Generation())
		return ErrStaleGeneration
	default:
		g.logger.WarnContext(ctx, "failed to load questions",
			"session_id", g.session.ID(),
			"attempt", g.session.Attempts(),
			"error", redact.Error(err))
		g.emit(ctx, events.TypeQuizLoadFailed, loadFailedPayload{
			Attempt: g.session.Attempts(),
			Error:   redact.Error(err),
		})
		return err
	}
}

// Start runs one Begin, Fetch, Settle cycle synchronously.
func (g *Game) Start(ctx context.Context) error {
	gen := g.Begin(ctx)
	return g.Settle(ctx, g.Fetch(g.LoadContext(ctx), gen))
}

// NextAttempt decides what follows the load failure err. It returns the delay
// to wait before the next attempt, or an error wrapping ErrRetriesExhausted
// and err when the policy allows no further attempts.
func (g *Game) NextAttempt(err error) (time.Duration, error) {
	attempts := g.session.Attempts()
	if !g.policy.Allow(attempts) {
		return 0, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempts, err)
	}
	return g.policy.Delay(attempts), nil
}

// StartWithRetry calls Start until a batch is installed. It is the blocking
// form of the load loop for callers without an event loop of their own.
// After each failure it asks notice whether to try again and waits for the
// delay NextAttempt returns. It stops with the NextAttempt error once the
// policy is exhausted, with the load failure when notice declines, or with
// the context error when ctx is done. A nil notice always retries.
func (g *Game) StartWithRetry(ctx context.Context, notice Notice) error {
	for {
		err := g.Start(ctx)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay, exhausted := g.NextAttempt(err)
		if exhausted != nil {
			return exhausted
		}
		if notice != nil && !notice(ctx, err, g.session.Attempts()) {
			return err
		}

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Answer records option for the current question. It reports whether the
// answer was recorded, which is false when the question already has one.
func (g *Game) Answer(ctx context.Context, option string) bool {
	if !g.session.Answer(option) {
		return false
	}

	state := g.session.State()
	q, _ := g.session.Current()
	g.emit(ctx, events.TypeQuizAnswered, answeredPayload{
		Index:   state.Index,
		Option:  option,
		Correct: q.IsCorrect(option),
	})
	return true
}

// AnswerIndex answers the current question with its i-th option.
func (g *Game) AnswerIndex(ctx context.Context, i int) bool {
	q, ok := g.session.Current()
	if !ok {
		return false
	}
	option, ok := q.Option(i)
	if !ok {
		return false
	}
	return g.Answer(ctx, option)
}

// Advance moves to the next question and reports whether the game finished.
func (g *Game) Advance(ctx context.Context) bool {
	if !g.session.Advance() {
		return false
	}

	state := g.session.State()
	g.logger.InfoContext(ctx, "quiz finished",
		"session_id", g.session.ID(),
		"score", state.Score)
	g.emit(ctx, events.TypeQuizFinished, finishedPayload{
		Score:   state.Score,
		Correct: g.session.Correct(),
		Total:   g.session.Size(),
	})
	return true
}

// Retreat moves to the previous question.
func (g *Game) Retreat() {
	g.session.Retreat()
}

func (g *Game) emit(ctx context.Context, eventType string, payload any) {
	if g.emitter == nil {
		return
	}
	event, err := events.NewEvent(eventType, g.session.ID(), payload)
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to create event", "event_type", eventType, "error", err)
		return
	}
	if err := g.emitter.EmitEvent(ctx, event); err != nil {
		g.logger.WarnContext(ctx, "failed to emit event", "event_type", eventType, "error", err)
	}
}
