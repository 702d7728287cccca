package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	Register()
	Register() // second call must not panic

	IncHTTP("/api/v1/rooms")
	IncHTTP("/api/v1/rooms")
	assert.Equal(t, float64(2), testutil.ToFloat64(httpRequests.WithLabelValues("/api/v1/rooms")))

	IncOp("booking", "create", "ok")
	IncOp("booking", "create", "error")
	assert.Equal(t, float64(1), testutil.ToFloat64(operations.WithLabelValues("booking", "create", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(operations.WithLabelValues("booking", "create", "error")))
}
