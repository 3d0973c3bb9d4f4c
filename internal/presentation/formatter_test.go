package presentation

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
)

func demoRegistry(t *testing.T) *domainorg.Registry {
	t.Helper()
	reg := domainorg.NewRegistry()
	require.NoError(t, reg.Add(1, "Bob"))
	require.NoError(t, reg.Add(2, "Kevin"))
	require.NoError(t, reg.Add(3, "Tim", domainorg.WithManager(1)))
	require.NoError(t, reg.Add(4, "Ralph", domainorg.WithManager(1)))
	return reg
}

func mustGet(t *testing.T, reg *domainorg.Registry, id domainorg.ID) domainorg.Employee {
	t.Helper()
	e, err := reg.Get(id)
	require.NoError(t, err)
	return e
}

func TestFormatter_FormatCount(t *testing.T) {
	reg := demoRegistry(t)
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatCount(mustGet(t, reg, 1), 2))

	require.Equal(t, "Bob [1] has 2 reports.\n", buf.String())
}

func TestFormatter_FormatEmployee(t *testing.T) {
	reg := demoRegistry(t)

	tests := []struct {
		name     string
		id       domainorg.ID
		expected string
	}{
		{name: "root with reports", id: 1, expected: "Bob [1] manager=none reports=[3 4]\n"},
		{name: "leaf", id: 3, expected: "Tim [3] manager=1 reports=[]\n"},
		{name: "lone root", id: 2, expected: "Kevin [2] manager=none reports=[]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewFormatter(&buf).FormatEmployee(mustGet(t, reg, tt.id)))
			require.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestFormatter_FormatEmployees(t *testing.T) {
	reg := demoRegistry(t)
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatEmployees(reg.Roots()))

	require.Equal(t, "Bob [1]\nKevin [2]\n", buf.String())
}

func TestFormatter_FormatError(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("%w: %d", domainorg.ErrNotFound, 9)

	require.NoError(t, NewFormatter(&buf).FormatError(err))

	require.Equal(t, "error: employee not found: 9\n", buf.String())
}

func TestFormatter_ColorIgnoredForNonTerminal(t *testing.T) {
	reg := demoRegistry(t)
	var buf bytes.Buffer

	f := NewFormatter(&buf, WithColor(true))
	require.NoError(t, f.FormatCount(mustGet(t, reg, 2), 0))
	require.NoError(t, f.FormatPrompt("org> "))

	require.Equal(t, "Kevin [2] has 0 reports.\norg> ", buf.String())
}

func TestFormatter_FormatSeparator(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).FormatSeparator())

	require.Equal(t, "\n----------------------------------------------\n\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestFormatter_WriteErrors(t *testing.T) {
	reg := demoRegistry(t)
	f := NewFormatter(failingWriter{})

	require.Error(t, f.FormatCount(mustGet(t, reg, 1), 2))
	require.Error(t, f.FormatEmployee(mustGet(t, reg, 1)))
	require.Error(t, f.FormatEmployees(reg.Roots()))
	require.Error(t, f.FormatError(errors.New("boom")))
	require.Error(t, f.FormatLine("x"))
}
