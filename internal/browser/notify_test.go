package browser

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotifierLifecycle(t *testing.T) {
	t.Parallel()

	n := NewNotifierWithTimings(20*time.Millisecond, 10*time.Millisecond)

	var mu sync.Mutex
	var sawLeaving bool
	n.OnChange(func(active []Notification) {
		mu.Lock()
		defer mu.Unlock()
		for _, note := range active {
			if note.Leaving {
				sawLeaving = true
			}
		}
	})

	n.Success("saved")
	n.Error("failed")

	active := n.Active()
	require.Len(t, active, 2)
	require.Equal(t, NotifySuccess, active[0].Kind)
	require.Equal(t, NotifyError, active[1].Kind)
	require.Equal(t, "error", active[1].Kind.String())

	require.Eventually(t, func() bool { return len(n.Active()) == 0 }, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.True(t, sawLeaving)
}

func TestNotificationsAreIndependentlyTimed(t *testing.T) {
	t.Parallel()

	n := NewNotifierWithTimings(150*time.Millisecond, 5*time.Millisecond)

	first := n.Success("first")
	time.Sleep(75 * time.Millisecond)
	second := n.Success("second")

	require.Eventually(t, func() bool {
		active := n.Active()
		return len(active) == 1 && active[0].ID == second
	}, time.Second, 2*time.Millisecond)
	require.NotEqual(t, first, second)

	require.Eventually(t, func() bool { return len(n.Active()) == 0 }, time.Second, 5*time.Millisecond)
}
