package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/scry-trivia/internal/generation"
	"github.com/phrazzld/scry-trivia/internal/trivia"
)

// notice is the blocking failure box shown after a failed load.
type notice struct {
	err       error
	attempt   int
	exhausted bool
	delay     time.Duration
}

// describe turns a load failure into a sentence for the player.
func describe(err error) string {
	var reqErr *generation.RequestError
	switch {
	case errors.Is(err, generation.ErrContentBlocked):
		return "The trivia service declined to answer."
	case errors.As(err, &reqErr) && errors.Is(err, generation.ErrTransport):
		if reqErr.StatusCode != 0 {
			return fmt.Sprintf("The trivia service answered with status %d.", reqErr.StatusCode)
		}
		return "The trivia service could not be reached."
	case errors.Is(err, generation.ErrUnexpectedShape):
		return "The trivia service sent an empty reply."
	case errors.Is(err, trivia.ErrMalformedJSON):
		return "The questions could not be read."
	case errors.Is(err, trivia.ErrEmptyList):
		return "The trivia service sent no questions."
	case errors.Is(err, trivia.ErrWrongShape):
		return "The questions were not in the expected format."
	default:
		return "Something went wrong while loading questions."
	}
}

func (n notice) view() string {
	var b strings.Builder
	b.WriteString(noticeTitleStyle.Render("Couldn't load questions"))
	b.WriteString("\n\n")
	b.WriteString(describe(n.err))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Attempt %d failed.", n.attempt)))
	b.WriteString("\n\n")
	if n.exhausted {
		b.WriteString("No attempts left. Press enter to quit.")
	} else {
		b.WriteString("Press enter to try again.")
	}
	return noticeStyle.Render(b.String())
}
