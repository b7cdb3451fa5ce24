// Package shell implements the qtest command interpreter: a line
// oriented shell that drives one or more strq queues, prints their
// contents after each change, and counts failed commands.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tychoish/strq"
)

var (
	// ErrNoQueue is returned by commands that need a current queue
	// when none has been created.
	ErrNoQueue = errors.New("no queue selected; use 'new'")
	// ErrUsage is returned when a command is called with the wrong
	// arguments.
	ErrUsage = errors.New("invalid arguments")
	// ErrUnknownCommand is returned for lines that do not start with
	// a registered command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMismatch is returned when a removed value does not match the
	// value the script expected.
	ErrMismatch = errors.New("unexpected value")
	// ErrEmptyQueue is returned when removing from an empty queue.
	ErrEmptyQueue = errors.New("queue is empty")
)

// Shell holds the interpreter state. It is not safe for concurrent
// use.
type Shell struct {
	out     io.Writer
	log     *zap.Logger
	opts    Options
	chain   strq.Chain
	current *strq.Context
	failed  int
	done    bool
	depth   int
	ctx     context.Context

	commands map[string]*command
	errColor *color.Color
	okColor  *color.Color
}

// New constructs a shell that writes its transcript to out. A nil
// logger disables logging.
func New(out io.Writer, logger *zap.Logger, opts Options) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Shell{
		out:      out,
		log:      logger,
		opts:     opts.withDefaults(),
		errColor: color.New(color.FgRed, color.Bold),
		okColor:  color.New(color.FgGreen),
		ctx:      context.Background(),
	}
	s.commands = builtins()
	return s
}

// Failed returns the number of commands that have failed so far.
func (s *Shell) Failed() int { return s.failed }

// Done reports whether the quit command has been run.
func (s *Shell) Done() bool { return s.done }

// Options returns a copy of the current option values.
func (s *Shell) Options() Options { return s.opts }

// Current returns the context of the selected queue, or nil.
func (s *Shell) Current() *strq.Context { return s.current }

// Queues returns the number of live queues.
func (s *Shell) Queues() int { return s.chain.Len() }

// Exec parses and runs a single line. Blank lines and lines starting
// with '#' are ignored. A failing command is reported on the
// transcript, counted, and returned.
func (s *Shell) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	if s.opts.Echo {
		fmt.Fprintf(s.out, "cmd> %s\n", line)
	}

	args, err := shellwords.Parse(line)
	if err != nil {
		return s.fail(line, errors.Wrapf(ErrUsage, "parse %q: %v", line, err))
	}
	if len(args) == 0 {
		return nil
	}

	cmd, ok := s.commands[args[0]]
	if !ok {
		return s.fail(line, errors.Wrap(ErrUnknownCommand, args[0]))
	}

	s.log.Debug("command", zap.String("name", cmd.name), zap.Strings("args", args[1:]))
	if err := cmd.run(s, args[1:]); err != nil {
		var rep *reportedError
		if errors.As(err, &rep) {
			return err
		}
		if errors.Is(err, ErrUsage) {
			err = errors.Wrapf(err, "usage: %s", cmd.usage)
		}
		return s.fail(line, err)
	}
	return nil
}

// reportedError marks a failure that has already been counted and
// printed, so that commands which run other commands (source) do not
// report it a second time.
type reportedError struct{ error }

func (e *reportedError) Unwrap() error { return e.error }

func (s *Shell) fail(line string, err error) error {
	s.failed++
	s.log.Warn("command failed", zap.String("line", line), zap.Error(err))
	s.errColor.Fprintf(s.out, "ERROR: %s\n", err)
	err = &reportedError{error: err}
	if s.opts.Strict {
		return errors.WithStack(err)
	}
	return err
}

// Run reads commands from in, one per line, until input is exhausted,
// the quit command runs, or ctx is canceled. In strict mode the first
// failing command stops the run and its error is returned; otherwise
// failures are only counted.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	parent := s.ctx
	s.ctx = ctx
	defer func() { s.ctx = parent }()

	scanner := bufio.NewScanner(in)
	for !s.done && scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Exec(scanner.Text()); err != nil && s.opts.Strict {
			return err
		}
	}
	return scanner.Err()
}

// Source runs the commands in the named file.
func (s *Shell) Source(ctx context.Context, path string) error {
	if s.depth >= maxSourceDepth {
		return errors.Errorf("source %s: nested too deeply", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	defer f.Close()

	s.depth++
	defer func() { s.depth-- }()
	return s.Run(ctx, f)
}

const maxSourceDepth = 16

// Close frees every queue held by the shell.
func (s *Shell) Close() {
	for ctx := range s.chain.All() {
		ctx.Queue.Free()
		s.chain.Remove(ctx)
	}
	s.current = nil
}

func (s *Shell) queue() (*strq.Queue, error) {
	if s.current == nil {
		return nil, ErrNoQueue
	}
	return s.current.Queue, nil
}

// refresh records the size of the current queue and prints it.
func (s *Shell) refresh() {
	if s.current == nil {
		fmt.Fprintln(s.out, "l = NULL")
		return
	}
	s.current.Size = s.current.Queue.Size()
	fmt.Fprintf(s.out, "l = %s\n", s.format(s.current.Queue))
}

func (s *Shell) format(q *strq.Queue) string {
	values := q.Values()
	if s.opts.Width > 0 {
		for idx := range values {
			values[idx] = runewidth.Truncate(values[idx], s.opts.Width, "...")
		}
	}
	return "[" + strings.Join(values, " ") + "]"
}

func (s *Shell) ok(format string, args ...any) {
	s.okColor.Fprintf(s.out, format+"\n", args...)
}

func (s *Shell) help() {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	width := 0
	for _, name := range names {
		width = max(width, runewidth.StringWidth(s.commands[name].usage))
	}
	for _, name := range names {
		cmd := s.commands[name]
		fmt.Fprintf(s.out, "  %s | %s\n", runewidth.FillRight(cmd.usage, width), cmd.help)
	}
}
