package orgchart

import (
	"fmt"
	"io"
	"strings"
)

// ID identifies an employee. Ids are chosen by the caller and never change.
type ID int

// noManager is the manager slot of a root.
const noManager = -1

// node is one arena slot. manager and reports hold slot indices into the owning
// registry's arena, never ids.
type node struct {
	id      ID
	name    string
	manager int   // slot of the manager, or noManager
	reports []int // slots of direct reports, in insertion order
}

func newNode(id ID, name string, manager int) *node {
	return &node{
		id:      id,
		name:    name,
		manager: manager,
		reports: []int{},
	}
}

// addReport appends slot to the end of the report list. It does not check for
// duplicates; keeping the list consistent is the registry's job.
func (n *node) addReport(slot int) {
	n.reports = append(n.reports, slot)
}

// addReports appends slots in their given order.
func (n *node) addReports(slots []int) {
	n.reports = append(n.reports, slots...)
}

// removeReport drops the first occurrence of slot. Unknown slots are ignored.
func (n *node) removeReport(slot int) {
	for i, s := range n.reports {
		if s == slot {
			n.reports = append(n.reports[:i], n.reports[i+1:]...)
			return
		}
	}
}

func (n *node) setManager(slot int) {
	n.manager = slot
}

func (n *node) hasManager() bool {
	return n.manager != noManager
}

func (n *node) label() string {
	return fmt.Sprintf("%s [%d]", n.name, n.id)
}

// print writes n and its whole subtree pre-order, one "name [id]" line per employee.
// Each level is indented two spaces deeper than its parent.
func (n *node) print(w io.Writer, indent int, arena []*node) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), n.label()); err != nil {
		return err
	}
	for _, slot := range n.reports {
		if err := arena[slot].print(w, indent+2, arena); err != nil {
			return err
		}
	}
	return nil
}

// Employee is a read-only view of a tracked employee.
type Employee struct {
	id         ID
	name       string
	managerID  ID
	hasManager bool
	reportIDs  []ID
}

// ID returns the employee's id.
func (e Employee) ID() ID {
	return e.id
}

// Name returns the display name.
func (e Employee) Name() string {
	return e.name
}

// ManagerID returns the manager's id, or false for a root.
func (e Employee) ManagerID() (ID, bool) {
	return e.managerID, e.hasManager
}

// IsRoot reports whether the employee has no manager.
func (e Employee) IsRoot() bool {
	return !e.hasManager
}

// ReportIDs returns the ids of the direct reports in their stored order.
func (e Employee) ReportIDs() []ID {
	ids := make([]ID, len(e.reportIDs))
	copy(ids, e.reportIDs)
	return ids
}

// String formats the employee as "name [id]".
func (e Employee) String() string {
	return fmt.Sprintf("%s [%d]", e.name, e.id)
}
