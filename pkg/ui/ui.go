// Package ui implements the console for the chat loop: reading utterances,
// and writing styled and word-wrapped replies.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	wordwrap "github.com/muesli/reflow/wordwrap"
	term "golang.org/x/term"
)

//////////////////////////////////////////////////////////////////////////////
// TYPES

// UI is a line-oriented chat console
type UI interface {
	// Read the next line of input, returning io.EOF when input is closed
	ReadLine(ctx context.Context) (string, error)

	// Print a reply from the assistant
	Reply(text string) error

	// Print a system message
	SysPrint(format string, args ...any) error
}

// Term is a console on a reader and writer. Output is styled and wrapped
// to the terminal width when the writer is a terminal.
type Term struct {
	mu     sync.Mutex
	lines  chan line
	out    io.Writer
	width  int
	prompt string

	user, assistant, system, errorStyle lipgloss.Style
}

type line struct {
	text string
	err  error
}

var _ UI = (*Term)(nil)

//////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	UserPrompt      = "👤 You: "
	AssistantPrompt = "🤖 Assistant: "
)

//////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTerm returns a console reading lines from r and writing to w
func NewTerm(r io.Reader, w io.Writer) *Term {
	renderer := lipgloss.NewRenderer(w)
	self := &Term{
		lines:      make(chan line),
		out:        w,
		width:      Width(w),
		prompt:     UserPrompt,
		user:       renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")), // blue
		assistant:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10")), // green
		system:     renderer.NewStyle().Foreground(lipgloss.Color("11")),            // yellow
		errorStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),  // red
	}

	// Read lines in the background so that reading can be cancelled
	go func() {
		defer close(self.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			self.lines <- line{text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			self.lines <- line{err: err}
		}
	}()

	return self
}

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Width returns the width of the terminal w, or zero if w is not a terminal
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil {
		return width
	}
	return 0
}

// ReadLine writes the prompt and returns the next line of input, trimmed
func (t *Term) ReadLine(ctx context.Context) (string, error) {
	t.mu.Lock()
	_, err := fmt.Fprint(t.out, t.user.Render(t.prompt))
	t.mu.Unlock()
	if err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		} else if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

// Reply writes a reply from the assistant followed by a blank line
func (t *Term) Reply(text string) error {
	return t.println(t.assistant.Render(AssistantPrompt) + t.wrap(text) + "\n")
}

// SysPrint writes a system message
func (t *Term) SysPrint(format string, args ...any) error {
	return t.println(t.system.Render(t.wrap(fmt.Sprintf(format, args...))))
}

// Errorf writes an error message
func (t *Term) Errorf(format string, args ...any) error {
	return t.println(t.errorStyle.Render(t.wrap(fmt.Sprintf(format, args...))))
}

// Println writes text without styling
func (t *Term) Println(text string) error {
	return t.println(text)
}

//////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *Term) println(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintln(t.out, text)
	return err
}

func (t *Term) wrap(text string) string {
	if t.width <= 0 {
		return text
	}
	return wordwrap.String(text, t.width)
}
