package tracing

// Span attribute keys for org chart operations.
const (
	AttrEmployeeID   = "employee.id"
	AttrEmployeeName = "employee.name"
	AttrManagerID    = "manager.id"
	AttrReportCount  = "reports.count"
	AttrCacheHit     = "cache.hit"
	AttrSessionID    = "session.id"
	AttrShellCommand = "shell.command"
	AttrErrorType    = "error.type"
)

// Span names, one per service operation.
const (
	SpanPrefix       = "orgchart."
	SpanAdd          = SpanPrefix + "add"
	SpanMove         = SpanPrefix + "move"
	SpanRemove       = SpanPrefix + "remove"
	SpanCountReports = SpanPrefix + "count_reports"
	SpanPrint        = SpanPrefix + "print"
	SpanShellCommand = "shell.command"
)

// Event names for span events.
const (
	EventManagerUnresolved = "manager.unresolved"
	EventReportsAdopted    = "reports.adopted"
	EventReportsOrphaned   = "reports.orphaned"
	EventValidationFailed  = "validation.failed"
)
