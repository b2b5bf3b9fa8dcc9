// Package shell reads command lines, hands them to a dispatcher and writes
// the feedback back, one line in and one block out.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"classmate/internal/command"
)

// ErrorPrefix starts every line reporting a failed command.
const ErrorPrefix = "Error: "

// Dispatcher runs one raw command line.
type Dispatcher interface {
	Dispatch(line string) (command.Result, error)
}

// Hook runs after every command that succeeded. A hook error is reported the
// same way a command error is, but the shell keeps reading.
type Hook func(ctx context.Context) error

// Shell is a line-oriented loop over a dispatcher
// ARCHITECTURAL DISCOVERY: Shell owns I/O only; parsing, execution and
// persistence stay behind the dispatcher and the hook
type Shell struct {
	dispatcher Dispatcher
	prompt     string
	hooks      []Hook

	// TECHNICAL DISCOVERY: one Run at a time, two loops would interleave
	// prompts on the same writer
	running bool
	mu      sync.Mutex
}

// New creates a shell that prints prompt before every line. An empty prompt
// prints nothing, which suits piped input.
func New(dispatcher Dispatcher, prompt string) *Shell {
	return &Shell{
		dispatcher: dispatcher,
		prompt:     prompt,
	}
}

// AfterCommand registers hook to run after every successful command.
func (s *Shell) AfterCommand(hook Hook) {
	s.hooks = append(s.hooks, hook)
}

// Execute runs a single line and then the hooks.
func (s *Shell) Execute(ctx context.Context, line string) (command.Result, error) {
	if s.dispatcher == nil {
		return command.Result{}, ErrNilDispatcher
	}

	res, err := s.dispatcher.Dispatch(line)
	if err != nil {
		return command.Result{}, err
	}

	for _, hook := range s.hooks {
		if err := hook(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Run reads lines from in until EOF, an exit command or ctx is done.
// Blank lines are skipped. Command failures are written to out as a single
// ErrorPrefix line and never stop the loop; only read and write failures are
// returned.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrShellAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Println("Starting shell...")
	defer log.Println("Shell stopped")

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			log.Printf("Shell context cancelled: %v", err)
			return nil
		}
		if s.prompt != "" {
			if _, err := io.WriteString(out, s.prompt); err != nil {
				return fmt.Errorf("failed to write prompt: %w", err)
			}
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// FUNCTIONAL DISCOVERY: a failed command leaves the loop running so
		// the user can correct the line and retry
		res, err := s.Execute(ctx, line)
		if err != nil {
			if _, werr := fmt.Fprintln(out, ErrorPrefix+oneLine(err.Error())); werr != nil {
				return fmt.Errorf("failed to write error: %w", werr)
			}
			if !res.Exit {
				continue
			}
		} else if res.Feedback != "" {
			if _, werr := fmt.Fprintln(out, res.Feedback); werr != nil {
				return fmt.Errorf("failed to write feedback: %w", werr)
			}
		}

		if res.Exit {
			return nil
		}
	}
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
