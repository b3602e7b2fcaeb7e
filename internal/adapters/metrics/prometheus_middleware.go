package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/spacecolony-go/internal/application/common"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
)

// PrometheusMiddleware records the duration and status of every command and
// query sent through the mediator
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordRequest(common.RequestName(request), time.Since(start).Seconds(), err)

		return response, err
	}
}
