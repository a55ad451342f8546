package time

import (
	"context"
	"testing"
	"time"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	ctx := context.Background()
	result, err := Now(ctx)
	require.NoError(t, err)
	tm, ok := result.(*object.Time)
	require.True(t, ok)
	require.WithinDuration(t, time.Now(), tm.Value(), time.Minute)
}

func TestUnix(t *testing.T) {
	ctx := context.Background()
	result, err := Unix(ctx, object.NewInt(0), object.NewInt(0))
	require.NoError(t, err)
	tm := result.(*object.Time)
	require.Equal(t, int64(0), tm.Value().Unix())
}

func TestParseReturnsResult(t *testing.T) {
	ctx := context.Background()

	result, err := Parse(ctx, object.NewString(time.RFC3339), object.NewString("2026-08-29T00:00:00Z"))
	require.NoError(t, err)
	res, ok := result.(*object.Result)
	require.True(t, ok)
	require.True(t, res.IsOk())

	result, err = Parse(ctx, object.NewString(time.RFC3339), object.NewString("not a time"))
	require.NoError(t, err)
	res = result.(*object.Result)
	require.True(t, res.IsErr())
}

func TestSleepCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sleep(ctx, object.NewFloat(10))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSince(t *testing.T) {
	ctx := context.Background()
	past := object.NewTime(time.Now().Add(-2 * time.Second))
	result, err := Since(ctx, past)
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.(*object.Float).Value(), 2.0)
}
