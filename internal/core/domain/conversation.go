package domain

// MaxHistoryTurns is the number of recent turns kept per session.
// Older turns are discarded, never archived.
const MaxHistoryTurns = 5

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string
	Answer   string
}

// History is a bounded buffer of recent conversation turns, owned by a
// single session. It is not safe for concurrent use; the owning session
// must serialise access.
type History struct {
	turns []Turn
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append records a completed turn, evicting the oldest turn once the
// buffer holds MaxHistoryTurns.
func (h *History) Append(question, answer string) {
	h.turns = append(h.turns, Turn{Question: question, Answer: answer})
	if len(h.turns) > MaxHistoryTurns {
		h.turns = h.turns[len(h.turns)-MaxHistoryTurns:]
	}
}

// Turns returns the retained turns, oldest first. The returned slice is a
// copy; mutating it does not affect the history.
func (h *History) Turns() []Turn {
	if h == nil || len(h.turns) == 0 {
		return nil
	}
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of retained turns.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.turns)
}
