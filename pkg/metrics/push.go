package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the default registry to a Prometheus Pushgateway under job.
// The dashboard exits after one command, so there is nothing to scrape.
func Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(prometheus.DefaultGatherer).PushContext(ctx)
}
