package clickguard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atthapon-k/naofumi-clickguard/clock"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("wraps the handler with a fresh guard", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		gh, err := Wrap(rec)
		require.NoError(t, err)
		require.Same(t, rec, gh.Inner())
		require.NotNil(t, gh.Guard())
		require.Equal(t, DefaultPeriod, gh.Guard().Period())
	})

	t.Run("rejects a nil handler", func(t *testing.T) {
		t.Parallel()

		_, err := Wrap(nil)
		require.ErrorIs(t, err, ErrNilHandler)
	})

	t.Run("rejects an already guarded handler", func(t *testing.T) {
		t.Parallel()

		gh, err := Wrap(&recorder{})
		require.NoError(t, err)

		_, err = Wrap(gh)
		require.ErrorIs(t, err, ErrAlreadyGuarded)
	})
}

func TestWrapWithPeriod(t *testing.T) {
	t.Parallel()

	gh, err := WrapWithPeriod(250*time.Millisecond, &recorder{})
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, gh.Guard().Period())

	gh, err = WrapWithPeriod(0, &recorder{})
	require.NoError(t, err)
	require.Equal(t, DefaultPeriod, gh.Guard().Period())
}

func TestWrapWithGuard(t *testing.T) {
	t.Parallel()

	t.Run("binds to the given guard", func(t *testing.T) {
		t.Parallel()

		g := NewGuard(time.Second)
		gh, err := WrapWithGuard(g, &recorder{})
		require.NoError(t, err)
		require.Same(t, g, gh.Guard())
	})

	t.Run("rejects a nil guard", func(t *testing.T) {
		t.Parallel()

		_, err := WrapWithGuard(nil, &recorder{})
		require.ErrorIs(t, err, ErrNilGuard)
	})

	t.Run("rejects a nil handler", func(t *testing.T) {
		t.Parallel()

		_, err := WrapWithGuard(NewGuard(time.Second), nil)
		require.ErrorIs(t, err, ErrNilHandler)
	})
}

func TestNewGuardedHandler(t *testing.T) {
	t.Parallel()

	t.Run("has no inner handler", func(t *testing.T) {
		t.Parallel()

		fake := clock.NewFake()
		g := NewGuardWithClock(time.Second, fake)

		var clicked, ignored int
		gh, err := NewGuardedHandler(g,
			WithOnClicked(func(Control) bool {
				clicked++
				return true
			}),
			WithOnIgnored(func(Control) {
				ignored++
			}),
		)
		require.NoError(t, err)
		require.Nil(t, gh.Inner())

		c := &stubControl{handler: gh}
		c.click()
		c.click()
		require.Equal(t, 1, clicked)
		require.Equal(t, 1, ignored)
	})

	t.Run("rejects a nil guard", func(t *testing.T) {
		t.Parallel()

		_, err := NewGuardedHandler(nil)
		require.ErrorIs(t, err, ErrNilGuard)
	})
}

func TestGuardedHandler_WatchWindow(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake()
	g := NewGuardWithClock(0, fake)

	rec := &recorder{}
	var ignored int
	gh, err := WrapWithGuard(g, rec, WithOnIgnored(func(Control) { ignored++ }))
	require.NoError(t, err)

	c := &stubControl{handler: gh}

	// First click is forwarded and arms the guard.
	c.click()
	require.Equal(t, 1, rec.clicks)
	require.True(t, g.IsWatching())

	// A click halfway through the window is suppressed.
	fake.Advance(500 * time.Millisecond)
	c.click()
	require.Equal(t, 1, rec.clicks)
	require.Equal(t, 1, ignored)

	// Just past the window the next click is forwarded again.
	fake.Advance(501 * time.Millisecond)
	c.click()
	require.Equal(t, 2, rec.clicks)
	require.Equal(t, 1, ignored)
}

func TestGuardedHandler_GroupSharing(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake()
	g := NewGuardWithClock(600*time.Millisecond, fake)

	recX := &recorder{}
	recY := &recorder{}
	var ignored int

	ghX, err := WrapWithGuard(g, recX)
	require.NoError(t, err)
	ghY, err := WrapWithGuard(g, recY, WithOnIgnored(func(Control) { ignored++ }))
	require.NoError(t, err)

	x := &stubControl{handler: ghX}
	y := &stubControl{handler: ghY}

	// A click on X arms the shared guard and silences Y.
	x.click()
	require.Equal(t, 1, recX.clicks)

	fake.Advance(100 * time.Millisecond)
	y.click()
	require.Zero(t, recY.clicks)
	require.Equal(t, 1, ignored)

	fake.Advance(600 * time.Millisecond)
	y.click()
	require.Equal(t, 1, recY.clicks)
	require.Equal(t, 1, recX.clicks)
}

func TestGuardedHandler_DecisionFalse(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake()
	g := NewGuardWithClock(time.Second, fake)

	rec := &recorder{}
	gh, err := WrapWithGuard(g, rec, WithOnClicked(func(Control) bool { return false }))
	require.NoError(t, err)

	c := &stubControl{handler: gh}

	// The guard is never armed, so rapid clicks all go through.
	c.click()
	fake.Advance(10 * time.Millisecond)
	c.click()
	fake.Advance(10 * time.Millisecond)
	c.click()

	require.Equal(t, 3, rec.clicks)
	require.False(t, g.IsWatching())
}

func TestGuardedHandler_Decision(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake()
	g := NewGuardWithClock(time.Second, fake)

	rec := &recorder{}
	var seen Control
	arm := false
	gh, err := WrapWithGuard(g, rec, WithOnClicked(func(c Control) bool {
		seen = c
		return arm
	}))
	require.NoError(t, err)

	c := &stubControl{handler: gh}

	c.click()
	require.Same(t, c, seen)
	require.False(t, g.IsWatching())

	arm = true
	c.click()
	require.True(t, g.IsWatching())
	require.Equal(t, 2, rec.clicks)
}

func TestGuardedHandler_OnIgnored(t *testing.T) {
	t.Parallel()

	t.Run("receives the suppressed control", func(t *testing.T) {
		t.Parallel()

		g := NewGuardWithClock(time.Second, clock.NewFake())

		var seen Control
		gh, err := WrapWithGuard(g, &recorder{}, WithOnIgnored(func(c Control) { seen = c }))
		require.NoError(t, err)

		c := &stubControl{handler: gh}
		c.click()
		c.click()
		require.Same(t, c, seen)
	})

	t.Run("suppression is silent without the option", func(t *testing.T) {
		t.Parallel()

		g := NewGuardWithClock(time.Second, clock.NewFake())

		rec := &recorder{}
		gh, err := WrapWithGuard(g, rec)
		require.NoError(t, err)

		c := &stubControl{handler: gh}
		c.click()
		c.click()
		require.Equal(t, 1, rec.clicks)
	})
}

func TestGuardedHandler_ArmsAfterForward(t *testing.T) {
	t.Parallel()

	g := NewGuardWithClock(time.Second, clock.NewFake())

	// The guard arms after the inner handler returns, so the handler
	// still observes a resting guard.
	var during bool
	gh, err := WrapWithGuard(g, HandlerFunc(func(Control) { during = g.IsWatching() }))
	require.NoError(t, err)

	c := &stubControl{handler: gh}
	c.click()

	require.False(t, during)
	require.True(t, g.IsWatching())
}

func TestGuardedHandler_ConcurrentClicks(t *testing.T) {
	t.Parallel()

	g := NewGuardWithClock(time.Second, clock.NewFake())

	rec := &recorder{}
	var ignored int
	gh, err := WrapWithGuard(g, rec, WithOnIgnored(func(Control) { ignored++ }))
	require.NoError(t, err)

	c := &stubControl{handler: gh}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.click()
		}()
	}
	wg.Wait()

	// Dispatch is serialized per guard: exactly one click wins the
	// window, the rest are suppressed.
	require.Equal(t, 1, rec.clicks)
	require.Equal(t, 9, ignored)
}
