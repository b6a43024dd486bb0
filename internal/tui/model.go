package tui

import (
	"time"

	"eyeterm/internal/boot"
	"eyeterm/internal/config"
	"eyeterm/internal/log"
	"eyeterm/internal/shell"
	"eyeterm/internal/tui/components"
	"eyeterm/internal/tui/messages"
	"eyeterm/internal/tui/styles"
	"eyeterm/internal/tui/views"
	"eyeterm/internal/vfs"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, input, status, help and the frame
	chromeLines = 7
	frameWidth  = 4
)

// Model hosts one terminal session. It is the only writer of the session
// and of the boot sequence, both of which it owns.
type Model struct {
	session *shell.Session
	seq     *boot.Sequence
	cfg     *config.Config
	theme   styles.Theme
	keys    KeyMap

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	status   *components.StatusBar

	watcher  *config.Watcher
	watching bool
	onClose  func()
	quitting bool

	sessionOpts []shell.Option
	logger      *log.Logger
}

// Option customises a Model.
type Option func(*Model)

// WithConfig sets the configuration the theme is taken from.
func WithConfig(cfg *config.Config) Option {
	return func(m *Model) { m.cfg = cfg }
}

// WithWatcher subscribes the model to config reloads.
func WithWatcher(w *config.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithOnClose registers the host callback fired when the terminal closes.
func WithOnClose(fn func()) Option {
	return func(m *Model) { m.onClose = fn }
}

// WithSessionOptions forwards options to the session.
func WithSessionOptions(opts ...shell.Option) Option {
	return func(m *Model) { m.sessionOpts = append(m.sessionOpts, opts...) }
}

// WithSequence replaces the boot sequence built from the content.
func WithSequence(seq *boot.Sequence) Option {
	return func(m *Model) { m.seq = seq }
}

// New mounts a fresh session. Nothing is shown until Init starts the boot
// sequence.
func New(opts ...Option) *Model {
	m := &Model{keys: DefaultKeyMap()}
	for _, opt := range opts {
		opt(m)
	}
	if m.cfg == nil {
		m.cfg = config.New()
	}
	m.theme = styles.FromConfig(m.cfg)

	sessionOpts := append([]shell.Option{shell.WithOnClose(m.closed)}, m.sessionOpts...)
	m.session = shell.NewSession(sessionOpts...)
	if m.seq == nil {
		m.seq = boot.New(m.session.Content().BootLines(), boot.DefaultDelay)
	}
	m.logger = log.LogWithFields(log.F("session", m.session.ID()), log.F("sequence", m.seq.ID()))

	m.input = textinput.New()
	m.input.Prompt = shell.Prompt
	m.input.Placeholder = "type help"
	m.input.Blur()

	m.viewport = viewport.New(defaultWidth-frameWidth, defaultHeight-chromeLines)
	m.help = help.New()
	m.status = components.NewStatusBar(m.theme.Help)
	m.applyTheme()

	return m
}

// Init implements tea.Model. Calling it again does not replay the boot
// lines.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.seq.Start() {
		if m.seq.State() == boot.Done {
			cmds = append(cmds, m.finishBoot())
		} else {
			m.status.SetText("booting")
			cmds = append(cmds, m.status.SetLoading(true), m.bootTick(0))
		}
	}
	if m.watcher != nil && !m.watching {
		m.watching = true
		cmds = append(cmds, waitForConfig(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.BootTickMsg:
		if msg.SequenceID != m.seq.ID() {
			m.logger.Debugf("dropped stale boot tick of sequence %d", msg.SequenceID)
			return m, nil
		}
		return m, m.advanceBoot()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.ConfigUpdateMsg:
		m.cfg = msg.Config
		m.theme = styles.FromConfig(msg.Config)
		m.applyTheme()
		m.logger.With(log.F("theme", m.theme.Name)).Info("theme applied")
		return m, waitForConfig(m.watcher)

	case messages.ErrorMsg:
		m.logger.WithError(msg.Err).Warn("config update rejected")
		if m.session.IntroComplete() {
			m.status.SetText("config: " + msg.Err.Error())
		}
		if m.watcher != nil {
			return m, waitForConfig(m.watcher)
		}
		return m, nil

	case messages.WatcherClosedMsg:
		m.watching = false
		return m, nil
	}

	var cmds []tea.Cmd
	cmds = append(cmds, m.status.Update(msg))
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, m.quit()
	}
	if !m.session.IntroComplete() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		m.session.SetInput(m.input.Value())
		outcome := m.session.Submit()
		m.syncInput()
		if outcome == shell.Exited {
			return m, m.quit()
		}
		m.status.SetText("")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		before := len(m.session.Log())
		m.session.Complete()
		m.syncInput()
		if len(m.session.Log()) != before {
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryUp):
		m.session.HistoryUp()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.HistoryDown):
		m.session.HistoryDown()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.LineUp(m.viewport.Height)
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.LineDown(m.viewport.Height)
		return m, nil

	case key.Matches(msg, m.keys.Help) && m.input.Value() == "":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.session.SetInput(value)
	}
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return views.RenderTerminal(m, m.theme)
}

// Dispose cancels the boot sequence. Ticks still in flight are dropped.
func (m *Model) Dispose() {
	m.seq.Cancel()
}

func (m *Model) quit() tea.Cmd {
	m.Dispose()
	m.session.Close()
	m.quitting = true
	return tea.Quit
}

// closed is the session's close callback.
func (m *Model) closed() {
	m.logger.Debugf("terminal closed")
	if m.onClose != nil {
		m.onClose()
	}
}

func (m *Model) bootTick(delay time.Duration) tea.Cmd {
	msg := messages.BootTickMsg{SequenceID: m.seq.ID()}
	if delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}

func (m *Model) advanceBoot() tea.Cmd {
	line, ok := m.seq.Next()
	if !ok {
		return nil
	}
	m.session.AppendLog(line)
	m.refresh()
	if m.seq.State() == boot.Done {
		return m.finishBoot()
	}
	return m.bootTick(m.seq.Delay())
}

func (m *Model) finishBoot() tea.Cmd {
	m.session.CompleteIntro()
	m.status.SetLoading(false)
	m.status.SetText("")
	return m.input.Focus()
}

func (m *Model) syncInput() {
	m.input.SetValue(m.session.Input())
	m.input.CursorEnd()
}

func (m *Model) refresh() {
	m.viewport.SetContent(views.RenderLog(m.session.Log(), m.theme))
	m.viewport.GotoBottom()
}

func (m *Model) resize(width, height int) {
	m.viewport.Width = max(width-frameWidth, 10)
	m.viewport.Height = max(height-chromeLines, 3)
	m.input.Width = max(width-frameWidth-len(shell.Prompt)-1, 1)
	m.help.Width = width
	m.refresh()
}

func (m *Model) applyTheme() {
	m.input.PromptStyle = m.theme.Prompt
	m.input.TextStyle = m.theme.Echo
	m.status.SetStyle(m.theme.Help)
	m.refresh()
}

func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-w.Updates()
		if !ok {
			return messages.WatcherClosedMsg{}
		}
		if u.Err != nil {
			return messages.ErrorMsg{Err: u.Err}
		}
		return messages.ConfigUpdateMsg{Config: u.Config}
	}
}

// Session returns the hosted session.
func (m *Model) Session() *shell.Session { return m.session }

// Sequence returns the boot sequence of this mount.
func (m *Model) Sequence() *boot.Sequence { return m.seq }

// Theme returns the active theme.
func (m *Model) Theme() styles.Theme { return m.theme }

// ShowFullHelp reports whether the full key help is shown.
func (m *Model) ShowFullHelp() bool { return m.help.ShowAll }

// Cwd returns the formatted working directory.
func (m *Model) Cwd() string { return vfs.Format(m.session.Path()) }

// Scrollback returns the visible part of the log.
func (m *Model) Scrollback() string { return m.viewport.View() }

// InputLine returns the rendered input control.
func (m *Model) InputLine() string { return m.input.View() }

// Status returns the rendered status bar.
func (m *Model) Status() string { return m.status.View() }

// HelpLine returns the rendered key help.
func (m *Model) HelpLine() string { return m.help.View(m.keys) }

// Booting reports whether input is still disabled.
func (m *Model) Booting() bool { return !m.session.IntroComplete() }
