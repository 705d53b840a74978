package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestQueryObserver_CountsByStatus(t *testing.T) {
	RegisterQueryMetrics()
	RegisterQueryMetrics() // idempotent

	okBefore := testutil.ToFloat64(QueriesTotal.WithLabelValues("SELECT", "ok"))
	errBefore := testutil.ToFloat64(QueriesTotal.WithLabelValues("SELECT", "error"))

	var o QueryObserver
	o.ObserveQuery("SELECT", 3*time.Millisecond, nil)
	o.ObserveQuery("SELECT", 5*time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(QueriesTotal.WithLabelValues("SELECT", "ok")) - okBefore; got != 1 {
		t.Errorf("ok delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(QueriesTotal.WithLabelValues("SELECT", "error")) - errBefore; got != 1 {
		t.Errorf("error delta = %f, want 1", got)
	}
	if testutil.CollectAndCount(QueryDuration) == 0 {
		t.Error("expected query_duration_seconds observations")
	}
}
