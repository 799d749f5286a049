package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// HTTPMetrics returns the process-wide Prometheus HTTP middleware. The
// underlying collectors register against the default registry, so the
// middleware is built once no matter how many apps are assembled.
func HTTPMetrics(service string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(service)
	})
	return prom
}
