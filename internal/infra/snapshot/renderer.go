// Package snapshot renders pages in a headless browser with a CSS filter applied.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
)

// applyFilterJS sets the root element's filter and returns the computed value.
const applyFilterJS = `(f) => {
	document.documentElement.style.filter = f;
	return getComputedStyle(document.documentElement).filter;
}`

// Renderer owns one browser process, started on first Capture.
type Renderer struct {
	mu sync.Mutex

	cfg        domain.SnapshotConfig
	controlURL string
	log        *slog.Logger

	launcher *launcher.Launcher
	browser  *rod.Browser
}

type Option func(*Renderer)

// WithControlURL connects to an already running browser instead of launching one.
func WithControlURL(u string) Option {
	return func(r *Renderer) { r.controlURL = u }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

func New(cfg domain.SnapshotConfig, opts ...Option) *Renderer {
	def := domain.DefaultConfig().Snapshot
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = def.ViewportWidth
	}
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = def.ViewportHeight
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = def.NavigationTimeout
	}

	r := &Renderer{
		cfg: cfg,
		log: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.SnapshotRenderer = (*Renderer)(nil)

func (r *Renderer) start() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	controlURL := r.controlURL
	if controlURL == "" {
		l := launcher.New().Headless(r.cfg.Headless)
		u, err := l.Launch()
		if err != nil {
			return nil, &domain.OpError{Op: "snapshot.launch", Kind: domain.KindExecution, Err: err}
		}
		r.launcher = l
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		r.killLocked()
		return nil, &domain.OpError{Op: "snapshot.connect", Kind: domain.KindExecution, Path: controlURL, Err: err}
	}

	r.browser = b
	r.log.Info("snapshot.browser_started", "headless", r.cfg.Headless, "external", r.controlURL != "")
	return b, nil
}

// Capture loads target, applies filter to the document root and returns a PNG.
func (r *Renderer) Capture(ctx context.Context, target string, filter domain.FilterExpression) ([]byte, error) {
	const op = "snapshot.capture"

	u, err := NormalizeURL(target)
	if err != nil {
		return nil, err
	}

	b, err := r.start()
	if err != nil {
		return nil, err
	}

	page, err := b.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: u, Err: fmt.Errorf("create page: %w", err)}
	}
	defer func() { _ = page.Close() }()

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             r.cfg.ViewportWidth,
		Height:            r.cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		r.log.Warn("snapshot.viewport_failed", "error", err)
	}

	nav := page.Timeout(r.cfg.NavigationTimeout)
	if err := nav.Navigate(u); err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindRemote, Path: u, Err: fmt.Errorf("navigate: %w", err)}
	}
	if err := nav.WaitLoad(); err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindRemote, Path: u, Err: fmt.Errorf("wait load: %w", err)}
	}

	css := filter.String()
	if css == "" {
		css = "none"
	}
	res, err := page.Eval(applyFilterJS, css)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: u, Err: fmt.Errorf("apply filter: %w", err)}
	}
	r.log.Debug("snapshot.filter_applied", "url", u, "filter", css, "computed", res.Value.String())

	// One frame for the compositor to pick up the new filter.
	if err := page.WaitRepaint(); err != nil {
		r.log.Debug("snapshot.repaint_wait_failed", "error", err)
	}

	start := time.Now()
	png, err := page.Screenshot(r.cfg.FullPage, nil)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: u, Err: fmt.Errorf("screenshot: %w", err)}
	}
	r.log.Info("snapshot.captured", "url", u, "filter", css, "bytes", len(png), "duration_ms", time.Since(start).Milliseconds())
	return png, nil
}

// Close shuts the browser down. The Renderer may be reused; the next Capture relaunches.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLocked()
	return err
}

func (r *Renderer) killLocked() {
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
}

// NormalizeURL defaults a bare host ("example.com") to https and allows only http(s).
func NormalizeURL(raw string) (string, error) {
	const op = "snapshot.url"

	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Err: fmt.Errorf("%w: empty url", domain.ErrInvalidInput)}
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Path: raw, Err: err}
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Path: raw, Err: fmt.Errorf("%w: scheme %q", domain.ErrInvalidInput, u.Scheme)}
	}
	if u.Host == "" {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Path: raw, Err: fmt.Errorf("%w: missing host", domain.ErrInvalidInput)}
	}
	return u.String(), nil
}
