// Package shell implements the command interpreter of the simulated
// terminal: the per-mount session state, the dispatch table, history
// recall and tab completion.
package shell

import (
	"math/rand"
	"sync"
	"time"

	"eyeterm/internal/content"
	"eyeterm/internal/log"
	"eyeterm/internal/vfs"

	"github.com/google/uuid"
)

// Prompt prefixes every echoed command line in the log.
const Prompt = "$ "

// Session is the state owned by one mounted terminal. It is not safe for
// concurrent use; the hosting view drives it from a single event loop.
type Session struct {
	id      string
	content *content.Content
	root    *vfs.Dir

	path          vfs.Path
	log           []string
	input         string
	history       []string
	cursor        HistoryCursor
	introComplete bool

	onClose   func()
	closeOnce sync.Once
	closed    bool

	now    func() time.Time
	rng    *rand.Rand
	logger *log.Logger
}

// Option customises a Session.
type Option func(*Session)

// WithContent replaces the embedded static tables.
func WithContent(c *content.Content) Option {
	return func(s *Session) { s.content = c }
}

// WithOnClose registers the callback fired by exit or Close.
func WithOnClose(fn func()) Option {
	return func(s *Session) { s.onClose = fn }
}

// WithClock replaces time.Now for the date command.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand replaces the random source used by tip.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// NewSession creates a fresh session positioned at the home directory.
// Input is refused until CompleteIntro is called.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		cursor: NotBrowsing{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.content == nil {
		s.content = content.Default()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.root = s.content.Root()
	s.path = append(vfs.Path{}, vfs.Home...)
	s.logger = log.LogWithFields(log.F("session", s.id))
	s.logger.Debugf("session mounted at %s", vfs.Format(s.path))
	return s
}

// ID returns the random identifier of this session.
func (s *Session) ID() string { return s.id }

// Content returns the static tables the session runs on.
func (s *Session) Content() *content.Content { return s.content }

// Path returns a copy of the current directory path.
func (s *Session) Path() vfs.Path { return append(vfs.Path{}, s.path...) }

// Cwd returns the current directory.
func (s *Session) Cwd() *vfs.Dir { return vfs.Resolve(s.root, s.path) }

// Log returns a copy of the scrollback log.
func (s *Session) Log() []string { return append([]string(nil), s.log...) }

// Input returns the uncommitted input line.
func (s *Session) Input() string { return s.input }

// History returns a copy of the submitted command lines.
func (s *Session) History() []string { return append([]string(nil), s.history...) }

// Cursor returns the history browsing state.
func (s *Session) Cursor() HistoryCursor { return s.cursor }

// IntroComplete reports whether the boot sequence has finished.
func (s *Session) IntroComplete() bool { return s.introComplete }

// Closed reports whether the close callback has fired.
func (s *Session) Closed() bool { return s.closed }

// AppendLog adds one entry to the scrollback log. The boot sequence feeds
// its lines through here.
func (s *Session) AppendLog(entry string) {
	s.log = append(s.log, entry)
}

// CompleteIntro enables input.
func (s *Session) CompleteIntro() {
	if !s.introComplete {
		s.introComplete = true
		s.logger.Debugf("intro complete after %d lines", len(s.log))
	}
}

// Close fires the close callback. Only the first call has an effect.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed = true
		s.logger.With(log.F("commands", len(s.history))).Info("session closed")
		if s.onClose != nil {
			s.onClose()
		}
	})
}
