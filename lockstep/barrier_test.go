package lockstep

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBarrierHoldsUntilAllArrive(t *testing.T) {
	defer goleak.VerifyNone(t)

	const parties = 4

	barrier := NewBarrier(parties)

	var (
		wg     sync.WaitGroup
		passed int32
	)

	for i := 0; i < parties-1; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if barrier.Wait() {
				atomic.AddInt32(&passed, 1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, atomic.LoadInt32(&passed))

	require.True(t, barrier.Wait())

	wg.Wait()
	require.Equal(t, int32(parties-1), atomic.LoadInt32(&passed))
}

func TestBarrierBreak(t *testing.T) {
	defer goleak.VerifyNone(t)

	barrier := NewBarrier(3)

	result := make(chan bool)

	go func() { result <- barrier.Wait() }()

	barrier.Break()

	require.False(t, <-result)
	require.False(t, barrier.Wait())
}

func TestBarrierBreakAfterRelease(t *testing.T) {
	barrier := NewBarrier(1)

	require.True(t, barrier.Wait())

	barrier.Break()

	require.True(t, barrier.Wait())
}
