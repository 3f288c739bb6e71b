package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/distill"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages a browser serves before it
// is replaced. Chrome's memory baseline keeps growing under load even when
// every page is closed.
const DefaultMaxPages = 75

// generation is one launched browser process.
type generation struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	active   int
	retired  bool
	down     bool
}

// shutdown must be called with the manager lock held.
func (g *generation) shutdown() error {
	if g.down {
		return nil
	}
	g.down = true
	var err error
	if g.browser != nil {
		err = g.browser.Close()
	}
	if g.launcher != nil {
		g.launcher.Kill()
	}
	return err
}

// BrowserManager hands out a headless Chrome browser and replaces it after
// it has served maxPages pages. A replaced browser stays up until the last
// page leased from it is released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *generation
	retired  []*generation
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages served before the browser is replaced.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	g, err := launch()
	if err != nil {
		return nil, err
	}
	bm.current = g
	return bm, nil
}

// Acquire leases the current browser for one page. The returned release
// function must be called once the page is closed; calling it more than
// once has no effect.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, distill.Errorf(distill.EINVALID, "browser manager is closed")
	}

	if bm.maxPages > 0 && bm.current.served >= bm.maxPages {
		bm.replace()
	}

	g := bm.current
	g.served++
	g.active++

	var once sync.Once
	release := func() {
		once.Do(func() { bm.release(g) })
	}
	return g.browser, release, nil
}

func (bm *BrowserManager) release(g *generation) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	g.active--
	if g.retired && g.active == 0 {
		_ = g.shutdown()
		bm.prune()
	}
}

// replace launches a fresh browser and retires the current one. If the
// launch fails the current browser keeps serving.
// Must be called with mu held.
func (bm *BrowserManager) replace() {
	g, err := launch()
	if err != nil {
		return
	}

	old := bm.current
	bm.current = g
	old.retired = true
	if old.active == 0 {
		_ = old.shutdown()
		return
	}
	bm.retired = append(bm.retired, old)
}

// prune drops retired generations that are shut down.
// Must be called with mu held.
func (bm *BrowserManager) prune() {
	live := bm.retired[:0]
	for _, g := range bm.retired {
		if !g.down {
			live = append(live, g)
		}
	}
	bm.retired = live
}

// Close shuts down every browser, including retired ones with pages still
// leased. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	err := bm.current.shutdown()
	for _, g := range bm.retired {
		_ = g.shutdown()
	}
	bm.retired = nil
	return err
}

// LauncherPID returns the process ID of the current browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil || bm.current.launcher == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// launch starts a browser with flags that keep background tabs from being
// throttled during long batches.
func launch() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &generation{browser: browser, launcher: l}, nil
}
