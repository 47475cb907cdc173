package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(ContactSubmissions.WithLabelValues(ResultOK))
	ContactSubmissions.WithLabelValues(ResultOK).Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(ContactSubmissions.WithLabelValues(ResultOK)), 0.001)

	before = testutil.ToFloat64(RecordMutations.WithLabelValues("posts", "create"))
	RecordMutations.WithLabelValues("posts", "create").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(RecordMutations.WithLabelValues("posts", "create")), 0.001)
}
