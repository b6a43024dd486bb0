package shell

// HistoryCursor is either NotBrowsing or BrowsingAt.
type HistoryCursor interface {
	isHistoryCursor()
}

// NotBrowsing means the input line is the user's own text.
type NotBrowsing struct{}

// BrowsingAt means the input line shows history entry at this index.
type BrowsingAt int

func (NotBrowsing) isHistoryCursor() {}
func (BrowsingAt) isHistoryCursor()  {}

// SetInput replaces the input line as typed by the user and stops browsing.
func (s *Session) SetInput(text string) {
	if !s.introComplete {
		return
	}
	s.input = text
	s.cursor = NotBrowsing{}
}

// HistoryUp recalls the previous command, starting from the most recent one
// and stopping at the oldest.
func (s *Session) HistoryUp() {
	if !s.introComplete || len(s.history) == 0 {
		return
	}
	idx := len(s.history) - 1
	if at, ok := s.cursor.(BrowsingAt); ok {
		idx = max(int(at)-1, 0)
	}
	s.cursor = BrowsingAt(idx)
	s.input = s.history[idx]
}

// HistoryDown moves towards the newest command; stepping past it ends
// browsing with an empty input line.
func (s *Session) HistoryDown() {
	if !s.introComplete {
		return
	}
	at, ok := s.cursor.(BrowsingAt)
	if !ok {
		return
	}
	if next := int(at) + 1; next < len(s.history) {
		s.cursor = BrowsingAt(next)
		s.input = s.history[next]
		return
	}
	s.cursor = NotBrowsing{}
	s.input = ""
}
