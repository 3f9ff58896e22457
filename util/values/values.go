package values

// Response status strings mapped to HTTP codes in util.StatusCode.
const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	SystemErr      = "system-error"
	BadRequestBody = "bad-request-body"
	Unprocessable  = "unprocessable"
	NotAllowed     = "not-allowed"
	Conflict       = "conflict"
	NotFound       = "not-found"
	NotAuthorised  = "not-authorised"
	TokenExpired   = "token-expired"
)

const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-Id"
)

type ContextKey string

const (
	ContextTracingKey   = ContextKey("tracing_context")
	ContextModeratorKey = ContextKey("moderator_id")
)
