package utils

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// WorkerPool runs jobs on a bounded number of goroutines and spaces job
// starts by at least the configured interval.
type WorkerPool struct {
	interval time.Duration
	slots    chan struct{}
	wg       sync.WaitGroup

	mu          sync.Mutex
	lastStarted time.Time
}

// NewWorkerPool creates a WorkerPool running at most maxWorkers jobs at once,
// starting them at least rateLimitMs milliseconds apart.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		interval: time.Duration(rateLimitMs) * time.Millisecond,
		slots:    make(chan struct{}, maxWorkers),
	}
}

// Submit blocks until a slot is free, then runs job in its own goroutine.
// It returns ctx.Err() without scheduling job when ctx ends first. A job
// still waiting for its start slot when ctx ends is dropped.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) error {
	select {
	case wp.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.slots }()

		if err := wp.throttle(ctx); err != nil {
			return
		}
		job()
	}()
	return nil
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) throttle(ctx context.Context) error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.lastStarted.IsZero() {
		if wait := wp.interval - time.Since(wp.lastStarted); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	wp.lastStarted = time.Now()
	return nil
}

// URLSet records the URLs already scheduled so each page is visited once.
// URLs are compared after normalisation: the fragment is dropped and query
// parameters are sorted.
type URLSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add reports whether rawURL was new, recording it.
func (s *URLSet) Add(rawURL string) bool {
	key := normaliseURL(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Contains reports whether rawURL, or an equivalent form, was added.
func (s *URLSet) Contains(rawURL string) bool {
	key := normaliseURL(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[key]
	return ok
}

// Size returns the number of distinct URLs recorded.
func (s *URLSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

func normaliseURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}
	return u.String()
}
