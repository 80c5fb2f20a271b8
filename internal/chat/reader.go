package chat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// MaxLineSize bounds a single line read by ScanReader.
const MaxLineSize = 16 * 1024 * 1024

// LineReader blocks until one line of input is available. It returns io.EOF
// once the input is closed.
type LineReader interface {
	ReadLine() (string, error)
}

// ScanReader reads lines from any io.Reader, printing prompt before each read.
// It serves pipes, redirected files and tests.
type ScanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

var _ LineReader = &ScanReader{}

func NewScanReader(in io.Reader, out io.Writer, prompt string) *ScanReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	return &ScanReader{
		scanner: scanner,
		out:     out,
		prompt:  prompt,
	}
}

func (r *ScanReader) ReadLine() (string, error) {
	if r.prompt != "" && r.out != nil {
		fmt.Fprint(r.out, r.prompt)
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}

// TerminalReader reads from an interactive terminal with line editing.
type TerminalReader struct {
	rl *readline.Instance
}

var _ LineReader = &TerminalReader{}

func NewTerminalReader(prompt string) (*TerminalReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}

	return &TerminalReader{rl: rl}, nil
}

func (r *TerminalReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

func (r *TerminalReader) Close() error {
	return r.rl.Close()
}

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	return readline.DefaultIsTerminal()
}
