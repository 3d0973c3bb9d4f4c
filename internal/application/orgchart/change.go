package orgchart

import (
	"github.com/google/uuid"

	domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
	"github.com/zjrosen/orgchart/internal/pubsub"
)

// ChangeKind names the operation that produced a Change.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeMoved   ChangeKind = "moved"
	ChangeRemoved ChangeKind = "removed"
)

// Change describes one successful mutation of the org chart.
type Change struct {
	ID         uuid.UUID
	Kind       ChangeKind
	EmployeeID domainorg.ID
	Name       string
	// ManagerID is the manager after the change (the former manager for removals).
	ManagerID  domainorg.ID
	HasManager bool
	// Reports lists the direct reports handed to ManagerID, or orphaned when
	// HasManager is false, by a removal.
	Reports []domainorg.ID
}

// eventType maps a change to the pubsub event type it is published under.
func (c Change) eventType() pubsub.EventType {
	switch c.Kind {
	case ChangeAdded:
		return pubsub.CreatedEvent
	case ChangeRemoved:
		return pubsub.DeletedEvent
	default:
		return pubsub.UpdatedEvent
	}
}

func newChange(kind ChangeKind, e domainorg.Employee) Change {
	managerID, hasManager := e.ManagerID()
	return Change{
		ID:         uuid.New(),
		Kind:       kind,
		EmployeeID: e.ID(),
		Name:       e.Name(),
		ManagerID:  managerID,
		HasManager: hasManager,
	}
}
