package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	t.Run(`keys are released after run`, func(t *testing.T) {
		ok, err := WithKeys(context.Background(), []string{"b", "a", "a"}, time.Second, func() error {
			require.True(t, IsLocked("a"))
			require.True(t, IsLocked("b"))
			return errors.New("boom")
		})
		require.True(t, ok)
		require.EqualError(t, err, "boom")
		require.False(t, IsLocked("a"))
		require.False(t, IsLocked("b"))
	})

	t.Run(`timeout when key is held`, func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "held", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(context.Background(), "held", 50*time.Millisecond, func() error {
			t.Fatal("must not run")
			return nil
		})
		require.False(t, ok)
		require.NoError(t, err)
		close(release)
	})

	t.Run(`same key is serialized`, func(t *testing.T) {
		var inside int32
		var maxInside int32
		wg := sync.WaitGroup{}
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, _ := WithKeys(context.Background(), []string{"emp:2025-01-10"}, 5*time.Second, func() error {
					cur := atomic.AddInt32(&inside, 1)
					if cur > atomic.LoadInt32(&maxInside) {
						atomic.StoreInt32(&maxInside, cur)
					}
					time.Sleep(5 * time.Millisecond)
					atomic.AddInt32(&inside, -1)
					return nil
				})
				require.True(t, ok)
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), maxInside)
	})

	t.Run(`unique sorted keys`, func(t *testing.T) {
		require.Equal(t, []string{"a", "b", "c"}, UniqueSorted([]string{"c", "a", "b", "a", "c"}))
		require.Empty(t, UniqueSorted(nil))
	})
}
