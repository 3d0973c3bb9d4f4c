package orgchart

import (
	"fmt"
	"io"
	"strings"
)

// Registry owns every employee node and mediates all structural changes.
// It is not safe for concurrent use.
type Registry struct {
	arena []*node    // nil entries are tombstones of removed employees
	index map[ID]int // id -> slot
	live  int        // non-nil entries in arena
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		arena: make([]*node, 0),
		index: make(map[ID]int),
	}
}

// AddOption configures Add.
type AddOption func(*addOptions)

type addOptions struct {
	managerID  ID
	hasManager bool
}

// WithManager asks Add to place the new employee under managerID. An id that does
// not resolve is not an error: the employee is added as a root instead.
func WithManager(managerID ID) AddOption {
	return func(o *addOptions) {
		o.managerID = managerID
		o.hasManager = true
	}
}

// find resolves id to its slot. Absence is an expected outcome here.
func (r *Registry) find(id ID) (int, bool) {
	slot, ok := r.index[id]
	return slot, ok
}

// lookup resolves id to its slot, failing with ErrNotFound.
func (r *Registry) lookup(id ID) (int, error) {
	slot, ok := r.find(id)
	if !ok {
		return noManager, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return slot, nil
}

// Add tracks a new employee, optionally under an existing manager.
func (r *Registry) Add(id ID, name string, opts ...AddOption) error {
	if _, exists := r.find(id); exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}

	var o addOptions
	for _, opt := range opts {
		opt(&o)
	}

	manager := noManager
	if o.hasManager {
		if slot, ok := r.find(o.managerID); ok {
			manager = slot
		}
	}

	slot := len(r.arena)
	r.arena = append(r.arena, newNode(id, name, manager))
	r.index[id] = slot
	r.live++

	if manager != noManager {
		r.arena[manager].addReport(slot)
	}
	return nil
}

// Move reparents an employee, together with its subtree, under newManagerID.
func (r *Registry) Move(employeeID, newManagerID ID) error {
	slot, err := r.lookup(employeeID)
	if err != nil {
		return err
	}
	newManager, err := r.lookup(newManagerID)
	if err != nil {
		return err
	}
	if r.inSubtree(newManager, slot) {
		return fmt.Errorf("%w: %d cannot report to %d", ErrCycle, employeeID, newManagerID)
	}

	emp := r.arena[slot]
	if emp.hasManager() {
		r.arena[emp.manager].removeReport(slot)
	}
	emp.setManager(newManager)
	r.arena[newManager].addReport(slot)
	return nil
}

// inSubtree reports whether slot is root or one of root's descendants, walking the
// manager chain upward from slot.
func (r *Registry) inSubtree(slot, root int) bool {
	for s := slot; s != noManager; s = r.arena[s].manager {
		if s == root {
			return true
		}
	}
	return false
}

// Remove deletes an employee. Its direct reports move up to its manager, or become
// roots when the removed employee was a root itself.
func (r *Registry) Remove(employeeID ID) error {
	slot, err := r.lookup(employeeID)
	if err != nil {
		return err
	}

	emp := r.arena[slot]
	if emp.hasManager() {
		manager := r.arena[emp.manager]
		manager.removeReport(slot)
		manager.addReports(emp.reports)
		for _, s := range emp.reports {
			r.arena[s].setManager(emp.manager)
		}
	} else {
		// Orphaned reports are not adopted by anyone.
		for _, s := range emp.reports {
			r.arena[s].setManager(noManager)
		}
	}

	r.arena[slot] = nil
	delete(r.index, employeeID)
	r.live--
	r.compact()
	return nil
}

// compact drops tombstones once they make up more than half of the arena,
// rewriting every slot reference in a single pass. Relative order is preserved.
func (r *Registry) compact() {
	dead := len(r.arena) - r.live
	if dead == 0 || dead*2 <= len(r.arena) {
		return
	}

	remap := make([]int, len(r.arena))
	packed := make([]*node, 0, r.live)
	for i, n := range r.arena {
		if n == nil {
			remap[i] = noManager
			continue
		}
		remap[i] = len(packed)
		packed = append(packed, n)
	}

	for _, n := range packed {
		if n.hasManager() {
			n.manager = remap[n.manager]
		}
		for i, s := range n.reports {
			n.reports[i] = remap[s]
		}
		r.index[n.id] = remap[r.index[n.id]]
	}
	r.arena = packed
}

// CountReports returns the number of direct and indirect reports under an employee.
func (r *Registry) CountReports(employeeID ID) (int, error) {
	slot, err := r.lookup(employeeID)
	if err != nil {
		return 0, err
	}
	// The employee counts itself in subtreeSize.
	return r.subtreeSize(slot) - 1, nil
}

func (r *Registry) subtreeSize(slot int) int {
	count := 1
	for _, s := range r.arena[slot].reports {
		count += r.subtreeSize(s)
	}
	return count
}

// Print writes every root's subtree to w in registry order.
func (r *Registry) Print(w io.Writer) error {
	for _, n := range r.arena {
		if n == nil || n.hasManager() {
			continue
		}
		if err := n.print(w, 0, r.arena); err != nil {
			return err
		}
	}
	return nil
}

// String returns the Print rendering.
func (r *Registry) String() string {
	var b strings.Builder
	_ = r.Print(&b)
	return b.String()
}

// Get returns a view of one employee.
func (r *Registry) Get(id ID) (Employee, error) {
	slot, err := r.lookup(id)
	if err != nil {
		return Employee{}, err
	}
	return r.view(slot), nil
}

// Contains reports whether id is tracked.
func (r *Registry) Contains(id ID) bool {
	_, ok := r.find(id)
	return ok
}

// Len returns the number of tracked employees.
func (r *Registry) Len() int {
	return r.live
}

// Employees returns every tracked employee in registry order.
func (r *Registry) Employees() []Employee {
	result := make([]Employee, 0, r.live)
	for slot, n := range r.arena {
		if n != nil {
			result = append(result, r.view(slot))
		}
	}
	return result
}

// Roots returns the employees without a manager, in registry order.
func (r *Registry) Roots() []Employee {
	result := make([]Employee, 0)
	for slot, n := range r.arena {
		if n != nil && !n.hasManager() {
			result = append(result, r.view(slot))
		}
	}
	return result
}

func (r *Registry) view(slot int) Employee {
	n := r.arena[slot]
	e := Employee{
		id:        n.id,
		name:      n.name,
		reportIDs: make([]ID, len(n.reports)),
	}
	if n.hasManager() {
		e.managerID = r.arena[n.manager].id
		e.hasManager = true
	}
	for i, s := range n.reports {
		e.reportIDs[i] = r.arena[s].id
	}
	return e
}
