package orgchart

import "fmt"

// Validate checks the registry's structural invariants and returns the first
// violation found, wrapped in ErrCorrupt. A registry mutated only through its own
// operations always validates.
func (r *Registry) Validate() error {
	live := 0
	for slot, n := range r.arena {
		if n == nil {
			continue
		}
		live++

		if indexed, ok := r.index[n.id]; !ok || indexed != slot {
			return fmt.Errorf("%w: id %d is not indexed at slot %d", ErrCorrupt, n.id, slot)
		}

		if n.hasManager() {
			if !r.liveSlot(n.manager) {
				return fmt.Errorf("%w: manager of %d is not tracked", ErrCorrupt, n.id)
			}
			if c := countSlot(r.arena[n.manager].reports, slot); c != 1 {
				return fmt.Errorf("%w: %d appears %d times in its manager's reports", ErrCorrupt, n.id, c)
			}
		}

		seen := make(map[int]bool, len(n.reports))
		for _, s := range n.reports {
			if seen[s] {
				return fmt.Errorf("%w: duplicate report under %d", ErrCorrupt, n.id)
			}
			seen[s] = true
			if !r.liveSlot(s) {
				return fmt.Errorf("%w: %d has an untracked report", ErrCorrupt, n.id)
			}
			// Also rules out roots listed as someone's report.
			if r.arena[s].manager != slot {
				return fmt.Errorf("%w: report %d of %d has a different manager", ErrCorrupt, r.arena[s].id, n.id)
			}
		}

		// A manager chain longer than the population has to loop.
		steps := 0
		for s := n.manager; s != noManager; s = r.arena[s].manager {
			if !r.liveSlot(s) {
				return fmt.Errorf("%w: broken manager chain above %d", ErrCorrupt, n.id)
			}
			steps++
			if steps > r.live {
				return fmt.Errorf("%w: reporting cycle through %d", ErrCorrupt, n.id)
			}
		}
	}

	if live != r.live || len(r.index) != live {
		return fmt.Errorf("%w: tracked %d employees, indexed %d, counted %d", ErrCorrupt, live, len(r.index), r.live)
	}
	return nil
}

func (r *Registry) liveSlot(slot int) bool {
	return slot >= 0 && slot < len(r.arena) && r.arena[slot] != nil
}

func countSlot(slots []int, slot int) int {
	count := 0
	for _, s := range slots {
		if s == slot {
			count++
		}
	}
	return count
}
