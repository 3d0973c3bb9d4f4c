// Package orgchart implements the application layer for the org chart.
//
// Service wraps a single domain Registry and adds the concerns the domain layer
// stays free of:
//   - Structured logging of every change and failure (internal/log)
//   - One OpenTelemetry span per operation (internal/tracing)
//   - Change events fanned out to subscribers (internal/pubsub)
//   - A read-through cache for report counts, flushed on every mutation
//     (internal/cachemanager, gated by the count-cache flag)
//   - Operation counters (internal/metrics)
//
// The structural semantics are exactly those of the domain Registry. Service is
// single-writer like the registry it wraps.
//
// # Import Aliasing
//
// This package has the same name as the domain package. When importing both, alias
// the domain package:
//
//	import (
//	    domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
//	    apporg "github.com/zjrosen/orgchart/internal/application/orgchart"
//	)
package orgchart
