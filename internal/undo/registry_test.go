package undo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvokeRunsRestoreOnce(t *testing.T) {
	registry := NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	calls := 0
	entry := registry.Register(KindWin, func() (any, error) {
		calls++
		return "restored", nil
	})

	gotEntry, restored, err := registry.Invoke(entry.ID)
	require.NoError(t, err)
	require.Equal(t, "restored", restored)
	require.Equal(t, KindWin, gotEntry.Kind)
	require.Equal(t, 1, calls)

	_, _, err = registry.Invoke(entry.ID)
	require.ErrorIs(t, err, ErrUnknownEntry)
	require.Equal(t, 1, calls)
}

func TestInvokePropagatesRestoreError(t *testing.T) {
	registry := NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	failure := errors.New("disk full")
	entry := registry.Register(KindExperiment, func() (any, error) {
		return nil, failure
	})

	_, _, err := registry.Invoke(entry.ID)
	require.ErrorIs(t, err, failure)
	require.Zero(t, registry.Pending())
}

func TestEntryExpiresAfterWindow(t *testing.T) {
	registry := NewRegistry(20 * time.Millisecond)
	t.Cleanup(registry.Close)

	entry := registry.Register(KindCollection, func() (any, error) {
		t.Fatal("expired restore must not run")
		return nil, nil
	})
	require.WithinDuration(t, time.Now().Add(20*time.Millisecond), entry.ExpiresAt, time.Second)

	require.Eventually(t, func() bool {
		return registry.Pending() == 0
	}, time.Second, 5*time.Millisecond)

	_, _, err := registry.Invoke(entry.ID)
	require.ErrorIs(t, err, ErrUnknownEntry)
}

func TestRegisterReplacesVisibleEntry(t *testing.T) {
	registry := NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	first := registry.Register(KindWin, func() (any, error) { return 1, nil })
	second := registry.Register(KindWin, func() (any, error) { return 2, nil })

	_, ok := registry.Lookup(first.ID)
	require.False(t, ok)
	_, ok = registry.Lookup(second.ID)
	require.True(t, ok)
	require.Equal(t, 1, registry.Pending())
}

func TestDismissCancelsEntry(t *testing.T) {
	registry := NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	entry := registry.Register(KindActivation, func() (any, error) { return nil, nil })

	require.True(t, registry.Dismiss(entry.ID))
	require.False(t, registry.Dismiss(entry.ID))
	require.Zero(t, registry.Pending())
}

func TestCloseDropsPendingAndLaterEntries(t *testing.T) {
	registry := NewRegistry(time.Minute)

	registry.Register(KindWin, func() (any, error) { return nil, nil })
	registry.Close()
	require.Zero(t, registry.Pending())

	late := registry.Register(KindWin, func() (any, error) { return nil, nil })
	_, _, err := registry.Invoke(late.ID)
	require.ErrorIs(t, err, ErrUnknownEntry)
}

func TestDismissAllKeepsRegistryOpen(t *testing.T) {
	registry := NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	dropped := registry.Register(KindCollection, func() (any, error) { return nil, nil })
	registry.DismissAll()
	require.Zero(t, registry.Pending())
	_, _, err := registry.Invoke(dropped.ID)
	require.ErrorIs(t, err, ErrUnknownEntry)

	next := registry.Register(KindWin, func() (any, error) { return "ok", nil })
	_, restored, err := registry.Invoke(next.ID)
	require.NoError(t, err)
	require.Equal(t, "ok", restored)
}
