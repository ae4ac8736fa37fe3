// Package snapshot captures PNG screenshots of the dashboard summary page
// with a headless browser.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"immo-dashboard/config"
	"immo-dashboard/metrics"
	"immo-dashboard/utils"
)

const readySelector = "#dashboard"

// Result reports the outcome of one capture.
type Result struct {
	Target Target
	Path   string
	Err    error
}

// Snapshotter drives a headless Chrome through a rate-limited worker pool.
type Snapshotter struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.URLSet
	retry   *utils.RetryConfig
}

// New creates a Snapshotter from cfg.
func New(cfg *config.Config, logger *utils.Logger) *Snapshotter {
	return &Snapshotter{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.SnapshotConcurrency, cfg.SnapshotRateLimitMs),
		visited: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Capture screenshots every target once, writing PNGs into the configured
// directory. Targets whose URL was already captured by this Snapshotter are
// skipped. Results follow the order of targets that were captured.
func (s *Snapshotter) Capture(ctx context.Context, targets []Target) ([]Result, error) {
	if err := os.MkdirAll(s.cfg.SnapshotDir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: create output dir: %w", err)
	}

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[snapshot] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1280, 900),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("snapshot: start browser: %w", err)
	}

	var (
		mu      sync.Mutex
		results = make([]*Result, len(targets))
	)
	for i, t := range targets {
		if !s.visited.Add(t.URL) {
			s.logger.Debug("[snapshot] Skipping duplicate: %s", t.URL)
			continue
		}
		i, t := i, t
		err := s.pool.Submit(ctx, func() {
			path, err := s.captureOne(browserCtx, t)
			outcome := "ok"
			if err != nil {
				outcome = "failed"
				s.logger.Warn("[snapshot] %s failed: %v", t.Name, err)
			} else {
				s.logger.Info("[snapshot] %s saved to %s", t.Name, path)
			}
			metrics.SnapshotsTaken.WithLabelValues(outcome).Inc()

			mu.Lock()
			results[i] = &Result{Target: t, Path: path, Err: err}
			mu.Unlock()
		})
		if err != nil {
			break
		}
	}
	s.pool.Wait()

	out := make([]Result, 0, len(results))
	var failed int
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Err != nil {
			failed++
		}
		out = append(out, *r)
	}
	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("snapshot: interrupted: %w", err)
	}
	if failed > 0 {
		return out, fmt.Errorf("snapshot: %d of %d captures failed", failed, len(out))
	}
	return out, nil
}

func (s *Snapshotter) captureOne(browserCtx context.Context, t Target) (string, error) {
	path := filepath.Join(s.cfg.SnapshotDir, FileName(t))

	err := s.retry.Do(browserCtx, "snapshot-"+t.Name, func() error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
		defer cancelTimeout()

		var buf []byte
		if err := chromedp.Run(tabCtx,
			chromedp.Navigate(t.URL),
			chromedp.WaitVisible(readySelector, chromedp.ByQuery),
			chromedp.FullScreenshot(&buf, 90),
		); err != nil {
			return fmt.Errorf("chromedp capture: %w", err)
		}
		return os.WriteFile(path, buf, 0644)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
