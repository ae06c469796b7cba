package ask

// State tracks the reply shown on the single prompt screen.
//
// Every Begin starts a new generation; Resolve and Fail ignore results for
// older generations. A failure keeps the previously shown text.
type State struct {
	generation uint64
	loading    bool
	text       string
	err        error
}

// Begin marks a request as in flight and returns its generation.
func (s *State) Begin() uint64 {
	s.generation++
	s.loading = true
	return s.generation
}

// Resolve shows text for generation gen. It reports whether gen was current.
func (s *State) Resolve(gen uint64, text string) bool {
	if gen != s.generation || !s.loading {
		return false
	}
	s.loading = false
	s.text = text
	s.err = nil
	return true
}

// Fail records err for generation gen, leaving the shown text unchanged.
// It reports whether gen was current.
func (s *State) Fail(gen uint64, err error) bool {
	if gen != s.generation || !s.loading {
		return false
	}
	s.loading = false
	s.err = err
	return true
}

// Loading reports whether a request is in flight.
func (s *State) Loading() bool { return s.loading }

// Text returns the most recent successful reply.
func (s *State) Text() string { return s.text }

// Err returns the most recent failure, nil after a success.
func (s *State) Err() error { return s.err }
