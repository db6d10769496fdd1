package editor

import (
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

// Shell hosts one chart screen at a time and moves rows between screens.
type Shell struct {
	current  *Editor
	notifier Notifier
}

// NewShell opens the shell on kind.
func NewShell(kind models.Kind, notifier Notifier) (*Shell, error) {
	e, err := New(kind, notifier)
	if err != nil {
		return nil, err
	}
	return &Shell{current: e, notifier: notifier}, nil
}

// Current returns the active screen.
func (s *Shell) Current() *Editor {
	return s.current
}

// Navigate switches to kind, carrying the current rows over. Rows that do not
// fit the destination columns are dropped. Navigating to the active kind does
// nothing.
func (s *Shell) Navigate(kind models.Kind) (*Editor, error) {
	if kind == s.current.Kind() {
		return s.current, nil
	}
	next, err := New(kind, s.notifier)
	if err != nil {
		return nil, err
	}
	transfer(s.current, next)
	s.current = next
	return next, nil
}

func transfer(from, to ChartScreen) {
	to.Receive(from.Collect())
}
