package common

import (
	"context"
	"fmt"
	"time"
)

// LoggingMiddleware logs the start, outcome and duration of every request
// using the logger carried by the context
func LoggingMiddleware() Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		logger := LoggerFromContext(ctx)
		name := fmt.Sprintf("%T", request)

		start := time.Now()
		logger.Log("DEBUG", "handling request", map[string]interface{}{
			"request": name,
		})

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":  name,
			"duration": time.Since(start).String(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("ERROR", "request failed", metadata)
			return response, err
		}

		logger.Log("DEBUG", "request completed", metadata)
		return response, nil
	}
}
