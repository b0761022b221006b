package authflow

// Level is the severity of a toast notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier displays short lived messages (toasts).
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(level Level, message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(level Level, message string) {
	if f != nil {
		f(level, message)
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(Level, string) {}
