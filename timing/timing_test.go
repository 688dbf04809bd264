package timing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimer(t *testing.T) {
	var timer Timer

	timer.Start()
	time.Sleep(10 * time.Millisecond)
	timer.Stop()

	require.GreaterOrEqual(t, timer.Elapsed(), 10*time.Millisecond)
}

func TestMeasure(t *testing.T) {
	elapsed, err := Measure(func() error {
		time.Sleep(5 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, elapsed, 5*time.Millisecond)

	errFailed := errors.New("failed")

	_, err = Measure(func() error { return errFailed })
	require.ErrorIs(t, err, errFailed)
}
