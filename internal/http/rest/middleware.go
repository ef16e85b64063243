package rest

import (
	"context"
	"net/http"

	"github.com/bwise1/lifegroup_locator/util/tracing"
	"github.com/bwise1/lifegroup_locator/util/values"
	"github.com/lucsky/cuid"
)

const defaultRequestSource = "web"

// RequestTracing handles the request tracing context
func RequestTracing(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestSource := r.Header.Get(values.HeaderRequestSource)
		if requestSource == "" {
			requestSource = defaultRequestSource
		}

		requestID := r.Header.Get(values.HeaderRequestID)
		if requestID == "" {
			requestID = cuid.New()
		}
		w.Header().Set(values.HeaderRequestID, requestID)

		tracingContext := tracing.Context{
			RequestID:     requestID,
			RequestSource: requestSource,
		}

		ctx = context.WithValue(ctx, values.ContextTracingKey, tracingContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}
