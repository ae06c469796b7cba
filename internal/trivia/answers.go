package trivia

// AnswerRecord holds one slot per question. A slot is either unanswered or
// holds the selected option; once set it never changes.
type AnswerRecord struct {
	picks []string
	set   []bool
}

func newAnswerRecord(n int) *AnswerRecord {
	return &AnswerRecord{
		picks: make([]string, n),
		set:   make([]bool, n),
	}
}

// Len returns the number of slots.
func (r *AnswerRecord) Len() int { return len(r.set) }

// Get returns the option selected for question i and whether one was selected.
func (r *AnswerRecord) Get(i int) (string, bool) {
	if i < 0 || i >= len(r.set) || !r.set[i] {
		return "", false
	}
	return r.picks[i], true
}

// Answered returns how many slots are set.
func (r *AnswerRecord) Answered() int {
	n := 0
	for _, ok := range r.set {
		if ok {
			n++
		}
	}
	return n
}

// record sets slot i to option unless it is already set.
func (r *AnswerRecord) record(i int, option string) bool {
	if i < 0 || i >= len(r.set) || r.set[i] {
		return false
	}
	r.picks[i] = option
	r.set[i] = true
	return true
}

// correctCount counts the slots whose selection equals the question's correct answer.
func (r *AnswerRecord) correctCount(questions []Question) int {
	n := 0
	for i, q := range questions {
		if pick, ok := r.Get(i); ok && q.IsCorrect(pick) {
			n++
		}
	}
	return n
}
