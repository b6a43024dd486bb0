package messages

import (
	"eyeterm/internal/config"
)

// BootTickMsg asks the model to emit the next boot line of the sequence
// with the given ID.
type BootTickMsg struct {
	SequenceID uint64
}

type ErrorMsg struct {
	Err error
}

type ConfigUpdateMsg struct {
	Config *config.Config
}

// WatcherClosedMsg reports that the config watcher stopped delivering.
type WatcherClosedMsg struct{}
