// Package orgchart implements the domain layer for the organizational hierarchy.
//
// This package follows the same rules as the rest of the domain layer:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the entity type (employee node) and the Registry that owns every node
//   - Has no knowledge of logging, tracing, configuration, or the CLI
//
// # Core Types
//
// Registry owns the arena of employee nodes. It is the only type that creates or
// destroys nodes and the only place where manager and report links are kept in sync.
// Every public operation validates its inputs before touching state, so a failed call
// never leaves a partial mutation behind.
//
// Employee is a read-only view of a tracked node (id, name, manager id, report ids)
// returned by the Registry's read operations.
//
// # Arena
//
// Nodes live in a slice indexed by slot; links between nodes are slot indices, and an
// id → slot index resolves caller ids. Removed nodes leave a nil tombstone so the slots
// of live nodes stay valid; the arena is compacted once tombstones make up more than
// half of it.
//
// # Invariants
//
//   - Ids are unique.
//   - A node with a manager appears exactly once in that manager's reports.
//   - A root appears in no report list.
//   - The forest is acyclic: Move rejects reparenting under the employee's own subtree.
//
// Registry.Validate checks all of them and is used by the property tests.
//
// # Import Aliasing
//
// The application layer (internal/application/orgchart) uses the same package name.
// When importing both, alias the domain package:
//
//	import (
//	    domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
//	    "github.com/zjrosen/orgchart/internal/application/orgchart"
//	)
package orgchart
