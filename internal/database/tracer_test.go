package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingTracer struct {
	starts, ends int
}

func (c *countingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	c.starts++
	return ctx
}

func (c *countingTracer) TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData) {
	c.ends++
}

func TestNewMultiTracer(t *testing.T) {
	t.Run("no tracers", func(t *testing.T) {
		assert.Nil(t, newMultiTracer(nil, nil))
	})

	t.Run("single tracer is returned as is", func(t *testing.T) {
		only := &countingTracer{}
		assert.Same(t, only, newMultiTracer(nil, only))
	})

	t.Run("fans out to every tracer", func(t *testing.T) {
		a, b := &countingTracer{}, &countingTracer{}
		tracer := newMultiTracer(a, nil, b)

		ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
		tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

		assert.Equal(t, 1, a.starts)
		assert.Equal(t, 1, a.ends)
		assert.Equal(t, 1, b.starts)
		assert.Equal(t, 1, b.ends)
	})
}

func TestSlowQueryTracer(t *testing.T) {
	assert.Nil(t, newSlowQueryTracer(0, nil))

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer := &slowQueryTracer{
		threshold: 100 * time.Millisecond,
		logger:    &logger,
		now:       func() time.Time { return clock },
	}

	t.Run("fast query is not logged", func(t *testing.T) {
		buf.Reset()
		ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
		clock = clock.Add(10 * time.Millisecond)
		tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

		assert.Empty(t, buf.String())
	})

	t.Run("slow query is logged with sql", func(t *testing.T) {
		buf.Reset()
		ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT pg_sleep(1)"})
		clock = clock.Add(time.Second)
		tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{
			CommandTag: pgconn.NewCommandTag("SELECT 1"),
			Err:        errors.New("canceled"),
		})

		out := buf.String()
		require.NotEmpty(t, out)
		assert.Contains(t, out, `"message":"slow query"`)
		assert.Contains(t, out, "pg_sleep")
		assert.Contains(t, out, "canceled")
	})

	t.Run("end without start is ignored", func(t *testing.T) {
		buf.Reset()
		tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
		assert.Empty(t, buf.String())
	})
}
