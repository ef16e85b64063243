package values

type contextKey string

const (
	Success          = "success"
	Created          = "created"
	Error            = "error"
	SystemErr        = "system-error"
	BadRequestBody   = "bad-request-body"
	Unprocessable    = "unprocessable"
	NotFound         = "not-found"
	Conflict         = "conflict"
	NotAllowed       = "not-allowed"
	NotAuthorised    = "not-authorised"
	DataUnavailable  = "data-unavailable"
	AddressNotFound  = "address-not-found"
	ValidationFailed = "validation-failed"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderRequestSource = "X-Request-Source"
)

const ContextTracingKey contextKey = "tracing"
