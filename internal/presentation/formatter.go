// Package presentation renders org chart results as the text lines the shell
// and the demo command print.
package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
)

// Option configures a Formatter.
type Option func(*Formatter)

// WithColor turns styling on or off. Styling is also dropped when the writer is
// not a terminal.
func WithColor(enabled bool) Option {
	return func(f *Formatter) {
		f.color = enabled
	}
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	color  bool
	styles styles
}

type styles struct {
	name   lipgloss.Style
	id     lipgloss.Style
	err    lipgloss.Style
	prompt lipgloss.Style
	rule   lipgloss.Style
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, opts ...Option) *Formatter {
	f := &Formatter{writer: writer}
	for _, opt := range opts {
		opt(f)
	}
	f.styles = newStyles(writer, f.color)
	return f
}

func newStyles(w io.Writer, color bool) styles {
	// The renderer inspects w, so buffers and pipes get plain text.
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return styles{name: plain, id: plain, err: plain, prompt: plain, rule: plain}
	}
	return styles{
		name:   r.NewStyle().Bold(true),
		id:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}),
		err:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}),
		prompt: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"}).Bold(true),
		rule:   r.NewStyle().Faint(true),
	}
}

// Label renders "name [id]".
func (f *Formatter) Label(e domainorg.Employee) string {
	return fmt.Sprintf("%s %s", f.styles.name.Render(e.Name()), f.styles.id.Render(fmt.Sprintf("[%d]", e.ID())))
}

// FormatCount writes "name [id] has N reports."
func (f *Formatter) FormatCount(e domainorg.Employee, count int) error {
	_, err := fmt.Fprintf(f.writer, "%s has %d reports.\n", f.Label(e), count)
	return err
}

// FormatEmployee writes one employee with its manager and direct reports:
// "name [id] manager=<id|none> reports=[a b]".
func (f *Formatter) FormatEmployee(e domainorg.Employee) error {
	manager := "none"
	if id, ok := e.ManagerID(); ok {
		manager = fmt.Sprintf("%d", id)
	}

	reports := e.ReportIDs()
	ids := make([]string, len(reports))
	for i, id := range reports {
		ids[i] = fmt.Sprintf("%d", id)
	}

	_, err := fmt.Fprintf(f.writer, "%s manager=%s reports=[%s]\n", f.Label(e), manager, strings.Join(ids, " "))
	return err
}

// FormatEmployees writes one "name [id]" line per employee.
func (f *Formatter) FormatEmployees(employees []domainorg.Employee) error {
	for _, e := range employees {
		if _, err := fmt.Fprintln(f.writer, f.Label(e)); err != nil {
			return err
		}
	}
	return nil
}

// FormatError writes "error: <message>".
func (f *Formatter) FormatError(err error) error {
	_, werr := fmt.Fprintln(f.writer, f.styles.err.Render("error: "+err.Error()))
	return werr
}

// FormatPrompt writes the shell prompt without a trailing newline.
func (f *Formatter) FormatPrompt(prompt string) error {
	_, err := io.WriteString(f.writer, f.styles.prompt.Render(prompt))
	return err
}

// FormatSeparator writes the rule the demo prints between steps.
func (f *Formatter) FormatSeparator() error {
	_, err := fmt.Fprintf(f.writer, "\n%s\n\n", f.styles.rule.Render(strings.Repeat("-", 46)))
	return err
}

// FormatLine writes s followed by a newline.
func (f *Formatter) FormatLine(s string) error {
	_, err := fmt.Fprintln(f.writer, s)
	return err
}

// Writer returns the destination the formatter writes to.
func (f *Formatter) Writer() io.Writer {
	return f.writer
}
