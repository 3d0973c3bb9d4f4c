package testutil

import domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"

// employeeData holds one employee to be inserted.
type employeeData struct {
	id         domainorg.ID
	name       string
	managerID  domainorg.ID
	hasManager bool
}

// EmployeeOption configures an employee before it is inserted.
type EmployeeOption func(*employeeData)

// ReportsTo sets the employee's manager. The manager must already be in the
// builder unless the test wants the unknown-manager fallback.
func ReportsTo(managerID domainorg.ID) EmployeeOption {
	return func(e *employeeData) {
		e.managerID = managerID
		e.hasManager = true
	}
}

// Named overrides the default name, which is "E<id>".
func Named(name string) EmployeeOption {
	return func(e *employeeData) {
		e.name = name
	}
}
