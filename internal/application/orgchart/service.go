package orgchart

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/orgchart/internal/cachemanager"
	domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
	"github.com/zjrosen/orgchart/internal/flags"
	"github.com/zjrosen/orgchart/internal/log"
	"github.com/zjrosen/orgchart/internal/metrics"
	"github.com/zjrosen/orgchart/internal/pubsub"
	"github.com/zjrosen/orgchart/internal/tracing"
)

// DefaultCountTTL is how long a cached report count is served when no TTL is
// configured. Mutations flush the cache regardless.
const DefaultCountTTL = 5 * time.Minute

// Option configures a Service.
type Option func(*Service)

// WithTracer sets the tracer used for operation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithFlags sets the feature flags consulted by the service.
func WithFlags(f *flags.Registry) Option {
	return func(s *Service) {
		s.flags = f
	}
}

// WithMetrics sets the instruments operations are recorded on.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCountTTL sets how long cached report counts live.
func WithCountTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.countTTL = ttl
		}
	}
}

// WithRegistry makes the service wrap an existing registry instead of a new one.
func WithRegistry(reg *domainorg.Registry) Option {
	return func(s *Service) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// Service is the application entry point for org chart operations.
type Service struct {
	registry *domainorg.Registry
	tracer   trace.Tracer
	flags    *flags.Registry
	metrics  *metrics.Metrics
	broker   *pubsub.Broker[Change]
	counts   *cachemanager.ReadThroughCache[string, int, domainorg.ID]
	countTTL time.Duration
}

// NewService creates a service around a new empty registry. Without options it
// traces nothing, caches nothing and records metrics on a private registry.
func NewService(opts ...Option) *Service {
	s := &Service{
		registry: domainorg.NewRegistry(),
		tracer:   tracing.Noop().Tracer(),
		broker:   pubsub.NewBroker[Change](),
		countTTL: DefaultCountTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	cache := cachemanager.NewInMemoryCacheManager[string, int]("report-counts", s.countTTL, 2*s.countTTL)
	s.counts = cachemanager.NewReadThroughCache[string, int, domainorg.ID](cache, s.loadCount, !s.flags.Enabled(flags.FlagCountCache))
	s.metrics.SetEmployees(s.registry.Len())
	return s
}

// Add tracks a new root employee.
func (s *Service) Add(ctx context.Context, id domainorg.ID, name string) error {
	return s.add(ctx, id, name, nil)
}

// AddUnder tracks a new employee under managerID. An unknown manager is not an
// error: the employee is added as a root and the miss is logged.
func (s *Service) AddUnder(ctx context.Context, id domainorg.ID, name string, managerID domainorg.ID) error {
	return s.add(ctx, id, name, &managerID)
}

func (s *Service) add(ctx context.Context, id domainorg.ID, name string, managerID *domainorg.ID) error {
	attrs := []attribute.KeyValue{
		attribute.Int(tracing.AttrEmployeeID, int(id)),
		attribute.String(tracing.AttrEmployeeName, name),
	}
	var opts []domainorg.AddOption
	if managerID != nil {
		attrs = append(attrs, attribute.Int(tracing.AttrManagerID, int(*managerID)))
		opts = append(opts, domainorg.WithManager(*managerID))
	}

	err := tracing.Run(ctx, s.tracer, tracing.SpanAdd, attrs, func(ctx context.Context, span trace.Span) error {
		if err := s.registry.Add(id, name, opts...); err != nil {
			return err
		}

		e, err := s.registry.Get(id)
		if err != nil {
			return err
		}
		if managerID != nil && e.IsRoot() {
			span.AddEvent(tracing.EventManagerUnresolved)
			log.Debug(log.CatService, "manager not found, added as root", "id", id, "manager", *managerID)
		}
		if got, ok := e.ManagerID(); ok {
			log.Info(log.CatRegistry, "employee added", "id", id, "name", name, "manager", got)
		} else {
			log.Info(log.CatRegistry, "employee added", "id", id, "name", name)
		}

		s.afterMutation(ctx, span, newChange(ChangeAdded, e))
		return nil
	})
	s.metrics.ObserveOperation(metrics.OpAdd, err)
	if err != nil {
		log.ErrorErr(log.CatService, "add failed", err, "id", id)
	}
	return err
}

// Move reparents an employee and its subtree under newManagerID.
func (s *Service) Move(ctx context.Context, employeeID, newManagerID domainorg.ID) error {
	attrs := []attribute.KeyValue{
		attribute.Int(tracing.AttrEmployeeID, int(employeeID)),
		attribute.Int(tracing.AttrManagerID, int(newManagerID)),
	}

	err := tracing.Run(ctx, s.tracer, tracing.SpanMove, attrs, func(ctx context.Context, span trace.Span) error {
		if err := s.registry.Move(employeeID, newManagerID); err != nil {
			return err
		}

		e, err := s.registry.Get(employeeID)
		if err != nil {
			return err
		}
		log.Info(log.CatRegistry, "employee moved", "id", employeeID, "manager", newManagerID)
		s.afterMutation(ctx, span, newChange(ChangeMoved, e))
		return nil
	})
	s.metrics.ObserveOperation(metrics.OpMove, err)
	if err != nil {
		log.ErrorErr(log.CatService, "move failed", err, "id", employeeID, "manager", newManagerID)
	}
	return err
}

// Remove deletes an employee. Its direct reports move up to its manager, or
// become roots when it had none.
func (s *Service) Remove(ctx context.Context, employeeID domainorg.ID) error {
	attrs := []attribute.KeyValue{attribute.Int(tracing.AttrEmployeeID, int(employeeID))}

	err := tracing.Run(ctx, s.tracer, tracing.SpanRemove, attrs, func(ctx context.Context, span trace.Span) error {
		e, err := s.registry.Get(employeeID)
		if err != nil {
			return err
		}
		if err := s.registry.Remove(employeeID); err != nil {
			return err
		}

		change := newChange(ChangeRemoved, e)
		change.Reports = e.ReportIDs()

		event := tracing.EventReportsOrphaned
		if change.HasManager {
			event = tracing.EventReportsAdopted
			span.SetAttributes(attribute.Int(tracing.AttrManagerID, int(change.ManagerID)))
		}
		span.AddEvent(event, trace.WithAttributes(attribute.Int(tracing.AttrReportCount, len(change.Reports))))
		log.Info(log.CatRegistry, "employee removed", "id", employeeID, "reports", len(change.Reports), "adopted", change.HasManager)

		s.afterMutation(ctx, span, change)
		return nil
	})
	s.metrics.ObserveOperation(metrics.OpRemove, err)
	if err != nil {
		log.ErrorErr(log.CatService, "remove failed", err, "id", employeeID)
	}
	return err
}

// CountReports returns the number of direct and indirect reports under an
// employee, served from the count cache when enabled.
func (s *Service) CountReports(ctx context.Context, employeeID domainorg.ID) (int, error) {
	var count int
	attrs := []attribute.KeyValue{attribute.Int(tracing.AttrEmployeeID, int(employeeID))}

	err := tracing.Run(ctx, s.tracer, tracing.SpanCountReports, attrs, func(ctx context.Context, span trace.Span) error {
		loaded := false
		ctx = context.WithValue(ctx, loadMarkerKey{}, &loaded)

		var err error
		count, err = s.counts.Get(ctx, countKey(employeeID), employeeID, s.countTTL)
		if err != nil {
			return err
		}

		if s.counts.Enabled() {
			span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, !loaded))
			s.metrics.ObserveCache(!loaded)
		}
		span.SetAttributes(attribute.Int(tracing.AttrReportCount, count))
		return nil
	})
	s.metrics.ObserveOperation(metrics.OpCount, err)
	if err != nil {
		log.ErrorErr(log.CatService, "count failed", err, "id", employeeID)
		return 0, err
	}
	return count, nil
}

// loadMarkerKey carries a flag that loadCount sets, telling CountReports the
// value did not come from the cache.
type loadMarkerKey struct{}

func (s *Service) loadCount(ctx context.Context, id domainorg.ID) (int, error) {
	if loaded, ok := ctx.Value(loadMarkerKey{}).(*bool); ok {
		*loaded = true
	}
	return s.registry.CountReports(id)
}

func countKey(id domainorg.ID) string {
	return fmt.Sprintf("count:%d", id)
}

// Print writes the whole forest to w, one "name [id]" line per employee.
func (s *Service) Print(ctx context.Context, w io.Writer) error {
	err := tracing.Run(ctx, s.tracer, tracing.SpanPrint, nil, func(_ context.Context, span trace.Span) error {
		span.SetAttributes(attribute.Int(tracing.AttrReportCount, s.registry.Len()))
		return s.registry.Print(w)
	})
	s.metrics.ObserveOperation(metrics.OpPrint, err)
	if err != nil {
		log.ErrorErr(log.CatService, "print failed", err)
	}
	return err
}

// Get returns a view of one employee.
func (s *Service) Get(id domainorg.ID) (domainorg.Employee, error) {
	return s.registry.Get(id)
}

// Roots returns the employees without a manager, in registry order.
func (s *Service) Roots() []domainorg.Employee {
	return s.registry.Roots()
}

// Employees returns every tracked employee in registry order.
func (s *Service) Employees() []domainorg.Employee {
	return s.registry.Employees()
}

// Len returns the number of tracked employees.
func (s *Service) Len() int {
	return s.registry.Len()
}

// Subscribe returns a channel of changes. It closes when ctx is cancelled or the
// service is closed.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return s.broker.Subscribe(ctx)
}

// WriteMetrics renders the operation metrics in the Prometheus text format.
func (s *Service) WriteMetrics(w io.Writer) error {
	return s.metrics.Write(w)
}

// Close ends every change subscription.
func (s *Service) Close() {
	s.broker.Close()
}

// afterMutation runs the bookkeeping shared by every successful mutation.
func (s *Service) afterMutation(ctx context.Context, span trace.Span, change Change) {
	if err := s.counts.Invalidate(ctx); err != nil {
		log.ErrorErr(log.CatCache, "flush report counts", err)
	}
	s.metrics.SetEmployees(s.registry.Len())

	if s.flags.Enabled(flags.FlagValidateMutations) {
		if err := s.registry.Validate(); err != nil {
			span.AddEvent(tracing.EventValidationFailed, trace.WithAttributes(attribute.String(tracing.AttrErrorType, err.Error())))
			log.ErrorErr(log.CatRegistry, "registry validation failed", err, "change", change.Kind, "id", change.EmployeeID)
		}
	}

	s.broker.Publish(change.eventType(), change)
}
