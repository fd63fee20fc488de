package mediator

import "context"

// Request is a command or query dispatched by type, for example
// *commands.EvaluateBlueprintsCommand or *queries.ListEvaluationRunsQuery.
// Handlers are keyed by the request's dynamic type, so pointer and value
// forms of the same struct are distinct requests.
type Request interface{}

// Response is whatever the handler of a request returns, for example
// *commands.EvaluateBlueprintsResponse. Callers type-assert it.
type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a plain function to RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps every Send, e.g. request logging or the Prometheus
// request metrics. It must call next to reach the handler.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
