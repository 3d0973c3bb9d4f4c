package orgchart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	n := newNode(7, "Ada", noManager)

	require.Equal(t, ID(7), n.id)
	require.Equal(t, "Ada", n.name)
	require.False(t, n.hasManager())
	require.Empty(t, n.reports)
}

func TestNode_AddReport(t *testing.T) {
	n := newNode(1, "Bob", noManager)

	n.addReport(3)
	n.addReport(5)

	require.Equal(t, []int{3, 5}, n.reports)
}

func TestNode_AddReport_AllowsDuplicates(t *testing.T) {
	n := newNode(1, "Bob", noManager)

	n.addReport(3)
	n.addReport(3)

	require.Equal(t, []int{3, 3}, n.reports)
}

func TestNode_AddReports_PreservesOrder(t *testing.T) {
	n := newNode(1, "Bob", noManager)
	n.addReport(2)

	n.addReports([]int{9, 4, 6})

	require.Equal(t, []int{2, 9, 4, 6}, n.reports)
}

func TestNode_RemoveReport(t *testing.T) {
	tests := []struct {
		name     string
		reports  []int
		remove   int
		expected []int
	}{
		{
			name:     "removes middle entry",
			reports:  []int{1, 2, 3},
			remove:   2,
			expected: []int{1, 3},
		},
		{
			name:     "removes only the first match",
			reports:  []int{4, 2, 4},
			remove:   4,
			expected: []int{2, 4},
		},
		{
			name:     "missing entry is a no-op",
			reports:  []int{1, 2},
			remove:   8,
			expected: []int{1, 2},
		},
		{
			name:     "empty list is a no-op",
			reports:  []int{},
			remove:   1,
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNode(1, "Bob", noManager)
			n.addReports(tt.reports)

			n.removeReport(tt.remove)

			require.Equal(t, tt.expected, n.reports)
		})
	}
}

func TestNode_SetManager_DoesNotTouchReports(t *testing.T) {
	manager := newNode(1, "Bob", noManager)
	n := newNode(2, "Tim", noManager)

	n.setManager(0)

	require.True(t, n.hasManager())
	require.Equal(t, 0, n.manager)
	require.Empty(t, manager.reports)
}

func TestNode_Print(t *testing.T) {
	arena := []*node{
		newNode(1, "Bob", noManager),
		newNode(3, "Tim", 0),
		newNode(4, "Ralph", 1),
		newNode(5, "Sue", 0),
	}
	arena[0].addReports([]int{1, 3})
	arena[1].addReport(2)

	var buf bytes.Buffer
	err := arena[0].print(&buf, 0, arena)

	require.NoError(t, err)
	require.Equal(t, "Bob [1]\n  Tim [3]\n    Ralph [4]\n  Sue [5]\n", buf.String())
}

func TestNode_Print_StartingIndent(t *testing.T) {
	arena := []*node{newNode(1, "Bob", noManager), newNode(2, "Tim", 0)}
	arena[0].addReport(1)

	var buf bytes.Buffer
	require.NoError(t, arena[0].print(&buf, 3, arena))

	require.Equal(t, "   Bob [1]\n     Tim [2]\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestNode_Print_PropagatesWriteError(t *testing.T) {
	arena := []*node{newNode(1, "Bob", noManager)}

	err := arena[0].print(failingWriter{}, 0, arena)

	require.EqualError(t, err, "sink closed")
}

func TestEmployee_ReportIDsReturnsCopy(t *testing.T) {
	e := Employee{id: 1, name: "Bob", reportIDs: []ID{2, 3}}

	ids := e.ReportIDs()
	ids[0] = 99

	require.Equal(t, []ID{2, 3}, e.ReportIDs())
}

func TestEmployee_Accessors(t *testing.T) {
	root := Employee{id: 1, name: "Bob"}
	report := Employee{id: 3, name: "Tim", managerID: 1, hasManager: true}

	require.True(t, root.IsRoot())
	_, ok := root.ManagerID()
	require.False(t, ok)

	require.False(t, report.IsRoot())
	managerID, ok := report.ManagerID()
	require.True(t, ok)
	require.Equal(t, ID(1), managerID)
	require.Equal(t, "Tim [3]", report.String())
}
