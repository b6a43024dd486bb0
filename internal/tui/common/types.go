package common

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Cwd() string
	Scrollback() string
	InputLine() string
	Status() string
	HelpLine() string
	Booting() bool
}
