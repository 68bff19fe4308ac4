package llm

import "context"

// Response status tags. A Response always carries exactly one of these;
// callers branch on Status instead of catching errors.
const (
	StatusSuccess  = "SUCCESS"
	StatusError    = "ERROR"
	StatusCacheHit = "CACHE_HIT"
)

// Request is a single generation request. Immutable once constructed.
type Request struct {
	Prompt      string
	Ingredients []string
	Model       string
	Temperature float64
	UserID      string
}

// Response is the outcome of one generation attempt, success or failure.
type Response struct {
	Content      string
	Model        string
	TokensUsed   int
	Cached       bool
	Status       string
	ErrorMessage string
	LatencyMS    int64
}

func (r *Response) IsSuccess() bool {
	return r != nil && r.Status == StatusSuccess
}

// Client is the boundary to the model backend. Generate returns an error
// only for transport-level faults; a backend that answered with its own
// failure payload is reported through Response.Status.
type Client interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
	IsAvailable(ctx context.Context) bool
	ModelName() string
}
