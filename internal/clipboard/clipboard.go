// Package clipboard copies text with a fallback chain: the system
// clipboard, then an OSC52 terminal escape, then printing the text for
// manual copying.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method is the mechanism that delivered the text.
type Method int

const (
	None Method = iota
	System
	OSC52
	Manual
)

func (m Method) String() string {
	switch m {
	case System:
		return "system clipboard"
	case OSC52:
		return "terminal (OSC52)"
	case Manual:
		return "printed for manual copy"
	}
	return "none"
}

// Copier holds the collaborators of the fallback chain. Nil fields skip
// their step.
type Copier struct {
	System   func(string) error
	Terminal io.Writer // receives the OSC52 sequence
	Manual   io.Writer // receives the plain text
	Getenv   func(string) string
}

// Default copies via atotto/clipboard, OSC52 on stderr and plain text on
// stdout.
func Default() Copier {
	c := Copier{
		Terminal: os.Stderr,
		Manual:   os.Stdout,
		Getenv:   os.Getenv,
	}
	if !clipboard.Unsupported {
		c.System = clipboard.WriteAll
	}
	return c
}

// Copy runs the default chain.
func Copy(text string) (Method, error) {
	return Default().Copy(text)
}

// Copy tries each method in turn and reports the first that worked.
func (c Copier) Copy(text string) (Method, error) {
	var errs []error

	if c.System != nil {
		err := c.System(text)
		if err == nil {
			return System, nil
		}
		errs = append(errs, fmt.Errorf("system clipboard: %w", err))
	}

	if c.Terminal != nil && c.terminalSupportsOSC52() {
		seq := osc52.New(text)
		switch {
		case c.getenv("TMUX") != "":
			seq = seq.Tmux()
		case strings.HasPrefix(c.getenv("TERM"), "screen"):
			seq = seq.Screen()
		}
		_, err := seq.WriteTo(c.Terminal)
		if err == nil {
			return OSC52, nil
		}
		errs = append(errs, fmt.Errorf("osc52: %w", err))
	}

	if c.Manual != nil {
		_, err := fmt.Fprintf(c.Manual, "Copy manually:\n\n%s\n", text)
		if err == nil {
			return Manual, nil
		}
		errs = append(errs, fmt.Errorf("manual: %w", err))
	}

	if len(errs) == 0 {
		return None, errors.New("no clipboard method available")
	}
	return None, errors.Join(errs...)
}

func (c Copier) terminalSupportsOSC52() bool {
	term := c.getenv("TERM")
	return term != "" && term != "dumb"
}

func (c Copier) getenv(key string) string {
	if c.Getenv == nil {
		return ""
	}
	return c.Getenv(key)
}
