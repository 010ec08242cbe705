package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Emojis
const (
	EmojiError   = "❌"
	EmojiWarning = "⚠️"
	EmojiAudio   = "🎧"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// Printer handles output formatting with configurable writer
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer with the given writer
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w}
}

const maxErrorLength = 300

// PrintError prints an error message on a single line, cut to maxErrorLength
// display cells.
func (p *Printer) PrintError(message string) {
	message = strings.Join(strings.Fields(message), " ")
	message = runewidth.Truncate(message, maxErrorLength, "...")
	fmt.Fprintf(p.out, "%s\n", red(EmojiError+" "+message))
}

// PrintWarning prints a warning message
func (p *Printer) PrintWarning(message string) {
	fmt.Fprintf(p.out, "%s\n", yellow(EmojiWarning+" "+message))
}

// PrintHint prints a dimmed line
func (p *Printer) PrintHint(message string) {
	fmt.Fprintf(p.out, "%s\n", gray(message))
}

// Printf formats and prints a message
func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Println prints a message with a newline
func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}
