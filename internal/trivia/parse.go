package trivia

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const fence = "```"

// questionSchema represents a single question in the model's JSON output.
// Keys are matched case-insensitively (encoding/json rules), so "Question" or
// "CORRECTANSWER" are accepted. Option values must be non-empty.
type questionSchema struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

var validate = validator.New()

// StripFences removes Markdown code-fence markers wrapping raw: a leading
// fence, optionally tagged "json", and a trailing fence. Text without fences
// is returned trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if rest, ok := strings.CutPrefix(s, fence); ok {
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			tag := strings.TrimSpace(rest[:nl])
			if tag == "" || strings.EqualFold(tag, "json") {
				rest = rest[nl+1:]
			}
		} else if len(rest) >= 4 && strings.EqualFold(rest[:4], "json") {
			rest = rest[4:]
		}
		s = strings.TrimSpace(rest)
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, fence))
	return s
}

// ParseQuestions extracts the question list from raw model output.
//
// Fences are stripped first. When the remaining text is not valid JSON, the
// first complete JSON array found in it is used instead, since models
// sometimes surround the array with prose. Every element must carry a
// question, exactly four options and a correct answer; a single invalid
// element rejects the whole list.
//
// Failures are *ParseError with Kind ErrMalformedJSON, ErrWrongShape or ErrEmptyList.
func ParseQuestions(raw string) ([]Question, error) {
	text := StripFences(raw)

	if !json.Valid([]byte(text)) {
		embedded, ok := firstArray(text)
		if !ok {
			var syntaxErr error
			var v any
			if err := json.Unmarshal([]byte(text), &v); err != nil {
				syntaxErr = err
			}
			return nil, &ParseError{Kind: ErrMalformedJSON, Index: -1, Err: syntaxErr}
		}
		text = embedded
	}

	var items []questionSchema
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, &ParseError{Kind: ErrWrongShape, Index: -1, Err: err}
	}
	if items == nil {
		return nil, &ParseError{Kind: ErrWrongShape, Index: -1, Err: errors.New("expected a list, got null")}
	}
	if len(items) == 0 {
		return nil, &ParseError{Kind: ErrEmptyList, Index: -1}
	}

	questions := make([]Question, 0, len(items))
	for i, item := range items {
		if err := validate.Struct(item); err != nil {
			return nil, &ParseError{Kind: ErrWrongShape, Index: i, Err: err}
		}
		questions = append(questions, NewQuestion(item.Question, item.Options, item.CorrectAnswer))
	}

	return questions, nil
}

// firstArray returns the first JSON array embedded in s, ignoring any text
// before or after it.
func firstArray(s string) (string, bool) {
	for offset := 0; offset < len(s); {
		start := strings.IndexByte(s[offset:], '[')
		if start < 0 {
			return "", false
		}
		start += offset

		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(s[start:])).Decode(&raw); err == nil {
			return string(raw), true
		}
		offset = start + 1
	}
	return "", false
}
