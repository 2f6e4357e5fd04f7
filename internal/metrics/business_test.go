package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBusinessMetrics(t *testing.T) *BusinessMetrics {
	t.Helper()

	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	return bm
}

func TestNewBusinessMetrics(t *testing.T) {
	bm := newTestBusinessMetrics(t)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_RecordLogin(t *testing.T) {
	bm := newTestBusinessMetrics(t)

	t.Run("Success_RecordSuccessfulLogin", func(t *testing.T) {
		// Should not panic
		bm.RecordLogin(context.Background(), true)
	})

	t.Run("Success_RecordFailedLogin", func(t *testing.T) {
		bm.RecordLogin(context.Background(), false)
	})
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	bm := newTestBusinessMetrics(t)

	t.Run("Success_RecordSuccessfulOperation", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "student", "create", "success")
	})

	t.Run("Success_RecordFailedOperation", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "student", "create", "error")
	})

	t.Run("Success_RecordMultipleEntities", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "student", "update", "success")
		bm.RecordOperation(context.Background(), "class", "delete", "success")
		bm.RecordOperation(context.Background(), "enrollment", "create", "error")
	})
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	bm := newTestBusinessMetrics(t)

	t.Run("Success_RecordDuration", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "student", "create", 150*time.Millisecond, "success")
	})
}

func TestBusinessMetrics_NilReceiver(t *testing.T) {
	var bm *BusinessMetrics

	// A nil BusinessMetrics must be safe to call
	bm.RecordLogin(context.Background(), true)
	bm.RecordOperation(context.Background(), "student", "create", "success")
	bm.RecordDuration(context.Background(), "student", "create", time.Second, "success")
}
