package testutil

import domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"

// WithDemoOrg adds the two-tree chart used across the service and shell tests:
//
//	Bob [1]
//	  Tim [3]
//	    Ralph [4]
//	Kevin [2]
func (b *OrgBuilder) WithDemoOrg() *OrgBuilder {
	return b.
		WithRoot(1, "Bob").
		WithRoot(2, "Kevin").
		WithReport(3, "Tim", 1).
		WithReport(4, "Ralph", 3)
}

// WithWideOrg adds a single root with the given number of direct reports, each
// with one report of its own. Report ids start at 10.
func (b *OrgBuilder) WithWideOrg(rootID domainorg.ID, width int) *OrgBuilder {
	b.WithRoot(rootID, "CEO")
	for i := 0; i < width; i++ {
		lead := domainorg.ID(10 + 2*i)
		b.WithEmployee(lead, ReportsTo(rootID))
		b.WithEmployee(lead+1, ReportsTo(lead))
	}
	return b
}
