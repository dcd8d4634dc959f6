package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/oomph-ac/kcc/oerror"
	"github.com/stretchr/testify/require"
)

func TestRunVisitsEveryIndex(t *testing.T) {
	seen := make([]atomic.Int32, 100)
	err := Run(context.Background(), 4, len(seen), func(_ context.Context, i int) error {
		seen[i].Add(1)
		return nil
	})
	require.NoError(t, err)
	for i := range seen {
		require.EqualValues(t, 1, seen[i].Load(), "index %d", i)
	}
}

func TestRunRespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	err := Run(context.Background(), 2, 50, func(context.Context, int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return nil
	})
	require.NoError(t, err)
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunReturnsFirstError(t *testing.T) {
	bad := errors.New("bad agent")
	err := Run(context.Background(), 1, 10, func(_ context.Context, i int) error {
		if i == 3 {
			return bad
		}
		return nil
	})
	require.ErrorIs(t, err, bad)
}

func TestRunRecoversPanics(t *testing.T) {
	err := Run(context.Background(), 0, 3, func(_ context.Context, i int) error {
		if i == 1 {
			panic("boom")
		}
		return nil
	})
	var oerr *oerror.Error
	require.ErrorAs(t, err, &oerr)
	require.Contains(t, oerr.Error(), "boom")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := Run(ctx, 1, 10, func(context.Context, int) error {
		calls.Add(1)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, calls.Load())
}
