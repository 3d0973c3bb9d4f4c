// Package shell implements the line-oriented org chart interpreter behind the
// `orgchart shell` command. Each line is one command; a failing command prints
// an error line and the session goes on.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
	"github.com/zjrosen/orgchart/internal/log"
	"github.com/zjrosen/orgchart/internal/presentation"
	"github.com/zjrosen/orgchart/internal/tracing"
)

const (
	// DefaultPrompt is printed before each command on an interactive terminal.
	DefaultPrompt = "org> "
	// MaxLineBytes bounds one input line.
	MaxLineBytes = 1 << 20
)

var (
	// ErrUsage is wrapped by every argument error.
	ErrUsage = errors.New("wrong number of arguments")
	// ErrEmptyName rejects blank names, which would print as a bare "[id]".
	ErrEmptyName = errors.New("employee name cannot be empty")
	// ErrLineTooLong is returned for an input line over MaxLineBytes. The
	// session skips the line and goes on.
	ErrLineTooLong = fmt.Errorf("line longer than %d bytes", MaxLineBytes)
)

// Service is the part of the org chart application service the shell drives.
type Service interface {
	Add(ctx context.Context, id domainorg.ID, name string) error
	AddUnder(ctx context.Context, id domainorg.ID, name string, managerID domainorg.ID) error
	Move(ctx context.Context, employeeID, newManagerID domainorg.ID) error
	Remove(ctx context.Context, employeeID domainorg.ID) error
	CountReports(ctx context.Context, employeeID domainorg.ID) (int, error)
	Print(ctx context.Context, w io.Writer) error
	Get(id domainorg.ID) (domainorg.Employee, error)
	Roots() []domainorg.Employee
	WriteMetrics(w io.Writer) error
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the prompt text.
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithInteractive forces prompting on or off. By default the shell prompts only
// when its input is a terminal.
func WithInteractive(interactive bool) Option {
	return func(s *Shell) {
		s.interactive = &interactive
	}
}

// WithColor enables styled output on terminals.
func WithColor(enabled bool) Option {
	return func(s *Shell) {
		s.color = enabled
	}
}

// WithTracer sets the tracer for per-command spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Shell) {
		s.tracer = tracer
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(s *Shell) {
		s.sessionID = id
	}
}

// Shell reads commands from in and writes results to out.
type Shell struct {
	svc         Service
	in          io.Reader
	out         *presentation.Formatter
	prompt      string
	interactive *bool
	color       bool
	tracer      trace.Tracer
	sessionID   string
	commands    map[string]command
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// New creates a shell over svc.
func New(svc Service, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		svc:       svc,
		in:        in,
		prompt:    DefaultPrompt,
		tracer:    tracing.Noop().Tracer(),
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.out = presentation.NewFormatter(out, presentation.WithColor(s.color))
	s.commands = s.buildCommands()
	return s
}

// SessionID returns the id attached to this session's log lines and spans.
func (s *Shell) SessionID() string {
	return s.sessionID
}

// IsTerminal reports whether r is a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

func (s *Shell) isInteractive() bool {
	if s.interactive != nil {
		return *s.interactive
	}
	return IsTerminal(s.in)
}

// Run executes commands until EOF, quit/exit, or ctx is cancelled. Command
// failures are printed and do not stop the session; only read and write
// failures are returned.
func (s *Shell) Run(ctx context.Context) error {
	ctx = tracing.ContextWithSessionID(ctx, s.sessionID)
	log.Info(log.CatShell, "session started", "session", s.sessionID)
	defer log.Info(log.CatShell, "session ended", "session", s.sessionID)

	interactive := s.isInteractive()
	reader := bufio.NewReader(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if interactive {
			if err := s.out.FormatPrompt(s.prompt); err != nil {
				return err
			}
		}
		line, err := readLine(reader, MaxLineBytes)
		if errors.Is(err, io.EOF) {
			if interactive {
				_ = s.out.FormatLine("")
			}
			return nil
		}
		if err != nil && !errors.Is(err, ErrLineTooLong) {
			return err
		}

		quit := false
		if err == nil {
			quit, err = s.Exec(ctx, line)
		}
		if err != nil {
			if werr := s.out.FormatError(err); werr != nil {
				return werr
			}
		}
		if quit {
			return nil
		}
	}
}

// readLine returns the next line without its terminator. A line over limit bytes
// is consumed and reported as ErrLineTooLong. io.EOF is returned only once
// nothing is left to read.
func readLine(r *bufio.Reader, limit int) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := r.ReadSlice('\n')
		n := len(chunk)
		if n > 0 && chunk[n-1] == '\n' {
			n--
		}
		if !tooLong {
			if len(buf)+n > limit {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && (!errors.Is(err, io.EOF) || (len(buf) == 0 && !tooLong)) {
			return "", err
		}
		break
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	line := strings.TrimSuffix(string(buf), "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Exec runs one line. quit is true for quit/exit.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	words, err := NewLexer(line).Words()
	if err != nil {
		return false, err
	}
	if len(words) == 0 {
		return false, nil
	}

	name := strings.ToLower(words[0])
	if name == "quit" || name == "exit" {
		return true, nil
	}

	cmd, ok := s.commands[name]
	if !ok {
		return false, fmt.Errorf("unknown command %q (try \"help\")", words[0])
	}

	attrs := []attribute.KeyValue{attribute.String(tracing.AttrShellCommand, name)}
	err = tracing.Run(ctx, s.tracer, tracing.SpanShellCommand, attrs, func(ctx context.Context, _ trace.Span) error {
		return cmd.run(ctx, words[1:])
	})
	if err != nil {
		log.Debug(log.CatShell, "command failed", "session", s.sessionID, "command", name, "error", err)
		if errors.Is(err, ErrUsage) {
			return false, fmt.Errorf("%w (usage: %s)", err, cmd.usage)
		}
	}
	return false, err
}
