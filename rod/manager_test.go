//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_ReplacesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer manager.Close()

	first, release1, err := manager.Acquire()
	require.NoError(t, err)
	release1()
	same, release2, err := manager.Acquire()
	require.NoError(t, err)
	release2()
	assert.Same(t, first, same)

	// The third lease exceeds the limit and gets a fresh browser.
	next, release3, err := manager.Acquire()
	require.NoError(t, err)
	defer release3()
	assert.NotSame(t, first, next)
}

func TestBrowserManager_KeepsRetiredBrowserUntilReleased(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()

	first, release1, err := manager.Acquire()
	require.NoError(t, err)

	second, release2, err := manager.Acquire()
	require.NoError(t, err)
	defer release2()
	require.NotSame(t, first, second)

	// The retired browser still serves the page leased before replacement.
	page, err := first.Page(proto.TargetCreateTarget{})
	require.NoError(t, err)
	require.NoError(t, page.Close())

	release1()
	release1()
}

func TestBrowserManager_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())

	_, _, err = manager.Acquire()

	assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
}
