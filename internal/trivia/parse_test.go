package trivia_test

import (
	"errors"
	"testing"

	"github.com/phrazzld/scry-trivia/internal/mocks"
	"github.com/phrazzld/scry-trivia/internal/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "no fences", raw: `[1]`, want: `[1]`},
		{name: "surrounding whitespace", raw: "  \n[1]\n\t", want: `[1]`},
		{name: "json tagged fence", raw: "```json\n[1]\n```", want: `[1]`},
		{name: "upper case tag", raw: "```JSON\n[1]\n```", want: `[1]`},
		{name: "untagged fence", raw: "```\n[1]\n```", want: `[1]`},
		{name: "single line fence", raw: "```json[1]```", want: `[1]`},
		{name: "fence with trailing whitespace", raw: "\n```json\n[1]\n```\n\n", want: `[1]`},
		{name: "only leading fence", raw: "```json\n[1]", want: `[1]`},
		{name: "only trailing fence", raw: "[1]\n```", want: `[1]`},
		{name: "other language tag kept", raw: "```go\n[1]\n```", want: "go\n[1]"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, trivia.StripFences(tt.raw))
		})
	}
}

func TestParseQuestions(t *testing.T) {
	t.Parallel()

	raw := mocks.QuestionsJSON(5)

	t.Run("plain array", func(t *testing.T) {
		t.Parallel()

		qs, err := trivia.ParseQuestions(raw)
		require.NoError(t, err)
		require.Len(t, qs, 5)
		assert.Equal(t, "Question 1?", qs[0].Prompt())
		assert.Equal(t, []string{"Answer 1", "Wrong 1A", "Wrong 1B", "Wrong 1C"}, qs[0].Options())
		assert.Equal(t, "Answer 1", qs[0].CorrectAnswer())
	})

	t.Run("fence wrapped equals unwrapped", func(t *testing.T) {
		t.Parallel()

		plain, err := trivia.ParseQuestions(raw)
		require.NoError(t, err)

		wrapped, err := trivia.ParseQuestions("```json\n" + raw + "\n```")
		require.NoError(t, err)

		assert.Equal(t, plain, wrapped)
	})

	t.Run("array surrounded by prose", func(t *testing.T) {
		t.Parallel()

		qs, err := trivia.ParseQuestions("Here are your questions:\n" + raw + "\nGood luck!")
		require.NoError(t, err)
		assert.Len(t, qs, 5)
	})

	t.Run("fenced array followed by prose with brackets", func(t *testing.T) {
		t.Parallel()

		qs, err := trivia.ParseQuestions("```json\n" + raw + "\n```\nSee [1] for sources.")
		require.NoError(t, err)
		assert.Equal(t, mocks.SampleQuestions(5), qs)
	})

	t.Run("bracketed prose before the array", func(t *testing.T) {
		t.Parallel()

		qs, err := trivia.ParseQuestions("Questions [draft]:\n" + raw)
		require.NoError(t, err)
		assert.Len(t, qs, 5)
	})

	t.Run("keys match case-insensitively", func(t *testing.T) {
		t.Parallel()

		qs, err := trivia.ParseQuestions(`[{"QUESTION":"Q?","Options":["a","b","c","d"],"CorrectAnswer":"a"}]`)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "Q?", qs[0].Prompt())
		assert.True(t, qs[0].Scorable())
	})

	t.Run("correct answer outside options is accepted", func(t *testing.T) {
		t.Parallel()

		qs, err := trivia.ParseQuestions(`[{"question":"Q?","options":["a","b","c","d"],"correctAnswer":"A"}]`)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.False(t, qs[0].Scorable())
		assert.False(t, qs[0].IsCorrect("a"), "comparison is case sensitive")
	})
}

func TestParseQuestionsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		kind      error
		wantIndex int
	}{
		{name: "not json", raw: "I cannot help with that.", kind: trivia.ErrMalformedJSON, wantIndex: -1},
		{name: "truncated array", raw: `[{"question":"Q?"`, kind: trivia.ErrMalformedJSON, wantIndex: -1},
		{name: "empty input", raw: "", kind: trivia.ErrMalformedJSON, wantIndex: -1},
		{name: "empty list", raw: `[]`, kind: trivia.ErrEmptyList, wantIndex: -1},
		{name: "fenced empty list", raw: "```json\n[]\n```", kind: trivia.ErrEmptyList, wantIndex: -1},
		{name: "object instead of array", raw: `{"question":"Q?"}`, kind: trivia.ErrWrongShape, wantIndex: -1},
		{name: "null", raw: `null`, kind: trivia.ErrWrongShape, wantIndex: -1},
		{name: "array of numbers", raw: `[1,2]`, kind: trivia.ErrWrongShape, wantIndex: -1},
		{name: "wrong field type", raw: `[{"question":5,"options":["a","b","c","d"],"correctAnswer":"a"}]`, kind: trivia.ErrWrongShape, wantIndex: -1},
		{
			name:      "missing question",
			raw:       `[{"options":["a","b","c","d"],"correctAnswer":"a"}]`,
			kind:      trivia.ErrWrongShape,
			wantIndex: 0,
		},
		{
			name: "three options in second element",
			raw: `[{"question":"Q1","options":["a","b","c","d"],"correctAnswer":"a"},` +
				`{"question":"Q2","options":["a","b","c"],"correctAnswer":"a"}]`,
			kind:      trivia.ErrWrongShape,
			wantIndex: 1,
		},
		{
			name:      "empty option strings",
			raw:       `[{"question":"Q1","options":["","","",""],"correctAnswer":"a"}]`,
			kind:      trivia.ErrWrongShape,
			wantIndex: 0,
		},
		{
			name:      "one blank option",
			raw:       `[{"question":"Q1","options":["a","b","","d"],"correctAnswer":"a"}]`,
			kind:      trivia.ErrWrongShape,
			wantIndex: 0,
		},
		{
			name:      "missing correct answer",
			raw:       `[{"question":"Q1","options":["a","b","c","d"]}]`,
			kind:      trivia.ErrWrongShape,
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			qs, err := trivia.ParseQuestions(tt.raw)
			require.Error(t, err)
			assert.Nil(t, qs, "no partial list is returned")
			assert.ErrorIs(t, err, tt.kind)

			var parseErr *trivia.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.wantIndex, parseErr.Index)

			for _, other := range []error{trivia.ErrMalformedJSON, trivia.ErrWrongShape, trivia.ErrEmptyList} {
				if other != tt.kind {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	err := &trivia.ParseError{Kind: trivia.ErrWrongShape, Index: 2, Err: errors.New("bad options")}
	assert.Equal(t, "response does not match the question list shape: question 2: bad options", err.Error())

	err = &trivia.ParseError{Kind: trivia.ErrEmptyList, Index: -1}
	assert.Equal(t, "response contains no questions", err.Error())
}
