package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// browserPool hands out a headless Chrome instance and replaces it after
// maxPages pages, since Chrome's memory baseline keeps growing even with
// proper page cleanup.
type browserPool struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

func newBrowserPool(maxPages int) (*browserPool, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	p := &browserPool{maxPages: maxPages}
	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	p.browser, p.launcher = browser, l
	return p, nil
}

// acquire returns the browser to open the next page with, recycling it
// first if it has served maxPages pages. A failed relaunch keeps the old
// browser.
func (p *browserPool) acquire() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("browser closed")
	}

	if p.pages >= p.maxPages {
		if browser, l, err := launch(); err == nil {
			_ = p.browser.Close()
			p.launcher.Kill()
			p.browser, p.launcher = browser, l
			p.pages = 0
		}
	}
	p.pages++
	return p.browser, nil
}

// pid returns the process ID of the browser launcher.
func (p *browserPool) pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.launcher == nil {
		return 0
	}
	return p.launcher.PID()
}

func (p *browserPool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.browser.Close()
	p.launcher.Kill()
	return err
}

// launch starts a headless browser with flags that keep background pages
// from being throttled.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}
