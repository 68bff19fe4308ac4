package api

import "net/http"

// Problem is an RFC 9457 style error payload returned by every handler.
type Problem struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`

	// Fields holds per-field validation messages when the problem is a 400.
	Fields map[string]string `json:"fields,omitempty"`

	// Log carries the internal cause. It is logged server-side and never
	// serialized to the client.
	Log error `json:"-"`
}

func (p *Problem) Error() string {
	if p.Detail != "" {
		return p.Title + ": " + p.Detail
	}
	return p.Title
}

type Option func(*Problem)

func WithLog(err error) Option {
	return func(p *Problem) { p.Log = err }
}

func WithFields(fields map[string]string) Option {
	return func(p *Problem) { p.Fields = fields }
}

func NewError(status int, title, detail string, opts ...Option) *Problem {
	p := &Problem{Status: status, Title: title, Detail: detail}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ValidationError wraps per-field messages produced by request binding.
func ValidationError(fields map[string]string) *Problem {
	return NewError(http.StatusBadRequest, "Validation Failed",
		"One or more fields are invalid.", WithFields(fields))
}

func BadRequestError(detail string, opts ...Option) *Problem {
	return NewError(http.StatusBadRequest, "Bad Request", detail, opts...)
}

func UnauthorizedError(detail string, opts ...Option) *Problem {
	return NewError(http.StatusUnauthorized, "Unauthorized", detail, opts...)
}

func NotFoundError(detail string, opts ...Option) *Problem {
	return NewError(http.StatusNotFound, "Not Found", detail, opts...)
}

func ConflictError(detail string, opts ...Option) *Problem {
	return NewError(http.StatusConflict, "Conflict", detail, opts...)
}

func UpstreamError(detail string, err error) *Problem {
	return NewError(http.StatusBadGateway, "Upstream Failure", detail, WithLog(err))
}

func InternalError(err error) *Problem {
	return NewError(http.StatusInternalServerError, "Internal Server Error",
		"An unexpected error occurred.", WithLog(err))
}
