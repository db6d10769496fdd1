package editor

import "fmt"

// Notice texts shown to the user.
const (
	MsgNoValidData    = "please enter valid data first"
	MsgRefreshed      = "chart refreshed"
	MsgInvalidNumber  = "please enter a valid number"
	MsgCSVNoValidData = "CSV has no valid data"
	MsgNoChart        = "no chart to export"
	MsgExportFailed   = "export failed"
)

// MsgImported formats the notice emitted after a successful CSV import.
func MsgImported(n int) string {
	return fmt.Sprintf("imported %d rows", n)
}

// MsgExported formats the notice emitted after a file was written.
func MsgExported(path string) string {
	return "exported to " + path
}

// Notifier receives short, transient user notices.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) {
	f(msg)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}
