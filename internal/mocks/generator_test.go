package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/scry-trivia/internal/generation"
	"github.com/phrazzld/scry-trivia/internal/mocks"
	"github.com/phrazzld/scry-trivia/internal/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTextGenerator(t *testing.T) {
	t.Parallel()

	t.Run("Default response", func(t *testing.T) {
		t.Parallel()

		gen := mocks.NewMockTextGeneratorWithText("hello")
		text, err := gen.GenerateText(context.Background(), "say hello")

		require.NoError(t, err)
		assert.Equal(t, "hello", text)
		assert.Equal(t, 1, gen.CallCount())
		assert.Equal(t, []string{"say hello"}, gen.GenerateTextCalls.Prompts)
	})

	t.Run("Transport failure", func(t *testing.T) {
		t.Parallel()

		gen := mocks.MockTextGeneratorWithTransportFailure(503)
		_, err := gen.GenerateText(context.Background(), "prompt")

		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrTransport)
		var reqErr *generation.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, 503, reqErr.StatusCode)
	})

	t.Run("Custom function wins", func(t *testing.T) {
		t.Parallel()

		gen := &mocks.MockTextGenerator{
			Text: "ignored",
			GenerateTextFn: func(ctx context.Context, prompt string) (string, error) {
				return "custom " + prompt, nil
			},
		}
		text, err := gen.GenerateText(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, "custom x", text)
	})

	t.Run("Reset", func(t *testing.T) {
		t.Parallel()

		gen := mocks.NewMockTextGeneratorWithError(errors.New("boom"))
		_, _ = gen.GenerateText(context.Background(), "a")
		_, _ = gen.GenerateText(context.Background(), "b")
		assert.Equal(t, 2, gen.CallCount())

		gen.Reset()
		assert.Equal(t, 0, gen.CallCount())
		assert.Empty(t, gen.GenerateTextCalls.Prompts)
	})
}

func TestMockQuestionSourceSequence(t *testing.T) {
	t.Parallel()

	first := errors.New("first")
	src := mocks.NewMockQuestionSourceSequence(3, first, nil)

	_, err := src.FetchQuestions(context.Background())
	assert.ErrorIs(t, err, first)

	qs, err := src.FetchQuestions(context.Background())
	require.NoError(t, err)
	assert.Len(t, qs, 3)

	qs, err = src.FetchQuestions(context.Background())
	require.NoError(t, err)
	assert.Len(t, qs, 3)
	assert.Equal(t, 3, src.CallCount())
}

func TestQuestionsJSONParses(t *testing.T) {
	t.Parallel()

	qs, err := trivia.ParseQuestions(mocks.QuestionsJSON(5))
	require.NoError(t, err)
	require.Len(t, qs, 5)
	assert.Equal(t, mocks.SampleQuestions(5), qs)
	for _, q := range qs {
		assert.True(t, q.Scorable())
	}
}
