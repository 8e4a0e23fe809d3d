package suggest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_SingleCall(t *testing.T) {
	d := New[string](5 * time.Millisecond)

	res, err := d.Do(context.Background(), "k", func(context.Context) (string, error) {
		return "tokyo", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "tokyo", res)
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_SupersededDuringDelay(t *testing.T) {
	d := New[string](50 * time.Millisecond)

	var calls atomic.Int32
	var wg sync.WaitGroup
	var firstErr error
	var firstRes string

	wg.Add(1)
	go func() {
		defer wg.Done()
		firstRes, firstErr = d.Do(context.Background(), "client:origin", func(context.Context) (string, error) {
			calls.Add(1)
			return "to", nil
		})
	}()

	time.Sleep(10 * time.Millisecond)

	res, err := d.Do(context.Background(), "client:origin", func(context.Context) (string, error) {
		calls.Add(1)
		return "tokyo", nil
	})
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, "tokyo", res)
	require.ErrorIs(t, firstErr, ErrSuperseded)
	assert.Empty(t, firstRes)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_StaleResponseDiscarded(t *testing.T) {
	d := New[string](0)

	started := make(chan struct{})
	unblock := make(chan struct{})

	var wg sync.WaitGroup
	var firstErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = d.Do(context.Background(), "k", func(context.Context) (string, error) {
			close(started)
			<-unblock
			return "old", nil
		})
	}()

	<-started

	res, err := d.Do(context.Background(), "k", func(context.Context) (string, error) {
		return "new", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", res)

	close(unblock)
	wg.Wait()

	require.ErrorIs(t, firstErr, ErrSuperseded)
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_IndependentKeys(t *testing.T) {
	d := New[string](20 * time.Millisecond)

	var wg sync.WaitGroup
	results := make([]string, 2)
	errs := make([]error, 2)

	for i, key := range []string{"c:origin", "c:destination"} {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			results[i], errs[i] = d.Do(context.Background(), key, func(context.Context) (string, error) {
				return key, nil
			})
		}(i, key)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, []string{"c:origin", "c:destination"}, results)
}

func TestDebouncer_ContextCanceled(t *testing.T) {
	d := New[string](time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := d.Do(ctx, "k", func(context.Context) (string, error) {
		t.Fatalf("fn must not be called after cancellation")
		return "", nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, d.Pending())
}
