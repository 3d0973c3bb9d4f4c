// Package testutil provides fixtures for tests that need a populated org chart.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
)

// OrgBuilder provides a fluent API for building org chart fixtures.
type OrgBuilder struct {
	t         *testing.T
	employees []employeeData
}

// NewOrgBuilder creates a new builder.
func NewOrgBuilder(t *testing.T) *OrgBuilder {
	t.Helper()
	return &OrgBuilder{t: t}
}

// WithEmployee queues an employee for insertion. Employees are inserted in the
// order they were queued.
func (b *OrgBuilder) WithEmployee(id domainorg.ID, opts ...EmployeeOption) *OrgBuilder {
	e := employeeData{id: id, name: fmt.Sprintf("E%d", id)}
	for _, opt := range opts {
		opt(&e)
	}
	b.employees = append(b.employees, e)
	return b
}

// WithRoot queues an employee without a manager.
func (b *OrgBuilder) WithRoot(id domainorg.ID, name string) *OrgBuilder {
	return b.WithEmployee(id, Named(name))
}

// WithReport queues an employee reporting to managerID.
func (b *OrgBuilder) WithReport(id domainorg.ID, name string, managerID domainorg.ID) *OrgBuilder {
	return b.WithEmployee(id, Named(name), ReportsTo(managerID))
}

// Build inserts every queued employee into a new registry and checks that the
// result is structurally sound.
func (b *OrgBuilder) Build() *domainorg.Registry {
	b.t.Helper()

	reg := domainorg.NewRegistry()
	for _, e := range b.employees {
		var opts []domainorg.AddOption
		if e.hasManager {
			opts = append(opts, domainorg.WithManager(e.managerID))
		}
		require.NoError(b.t, reg.Add(e.id, e.name, opts...), "failed to add employee %d", e.id)
	}
	require.NoError(b.t, reg.Validate(), "fixture registry is inconsistent")
	return reg
}
