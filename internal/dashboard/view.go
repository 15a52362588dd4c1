package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/dashview/internal/credentials"
)

// Settlement describes a fetch that completed while its view was mounted.
type Settlement struct {
	ViewID   string
	Snapshot Snapshot
	Duration time.Duration
}

// SettleHook is called once per mounted view when its fetch settles.
// It is not called for results discarded after Unmount.
type SettleHook func(Settlement)

// View holds the state of one mounted dashboard. The fetch runs at most once
// per View, started by Mount and cancelled by Unmount.
type View struct {
	id       string
	fetcher  Fetcher
	creds    credentials.Provider
	logger   *slog.Logger
	onSettle SettleHook

	mu        sync.Mutex
	snap      Snapshot
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc

	done      chan struct{}
	closeDone sync.Once
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) ViewOption {
	return func(v *View) {
		v.logger = l
	}
}

// WithSettleHook registers a callback for settled fetches.
func WithSettleHook(h SettleHook) ViewOption {
	return func(v *View) {
		v.onSettle = h
	}
}

// NewView creates an unmounted view in the loading state.
func NewView(fetcher Fetcher, creds credentials.Provider, opts ...ViewOption) *View {
	v := &View{
		id:      uuid.NewString(),
		fetcher: fetcher,
		creds:   creds,
		logger:  slog.Default(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With("view_id", v.id)
	return v
}

// ID uniquely identifies this mount.
func (v *View) ID() string {
	return v.id
}

// Mount starts the fetch. Only the first call has any effect, and a view
// that was already unmounted never fetches.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted || v.unmounted {
		return
	}
	v.mounted = true

	ctx, v.cancel = context.WithCancel(ctx)
	v.logger.Debug("dashboard mounted")
	go v.run(ctx)
}

// Unmount cancels an in-flight fetch and waits for it to return. Results
// that arrive afterwards are dropped. It is safe to call more than once.
func (v *View) Unmount() {
	v.mu.Lock()
	if v.unmounted {
		v.mu.Unlock()
		return
	}
	v.unmounted = true
	cancel, started := v.cancel, v.mounted
	v.mu.Unlock()

	if !started {
		v.closeDone.Do(func() { close(v.done) })
		return
	}
	cancel()
	<-v.done
	v.logger.Debug("dashboard unmounted")
}

// Done is closed once the fetch has returned, or on Unmount of a view that
// never mounted.
func (v *View) Done() <-chan struct{} {
	return v.done
}

// Snapshot returns the current state. Reading it never triggers a fetch.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

func (v *View) run(ctx context.Context) {
	defer v.closeDone.Do(func() { close(v.done) })
	start := time.Now()

	token, err := v.creds.Token(ctx)
	if err != nil {
		// A broken store is treated like an absent token; the request still goes out.
		v.logger.Warn("could not read dashboard token", "error", err)
		token = ""
	}

	payload, err := v.fetcher.Fetch(ctx, token)

	next := Snapshot{State: StateLoaded, Payload: payload}
	if err != nil {
		next = Snapshot{State: StateFailed, Err: err}
	}

	// The view may have been unmounted while the request was in flight.
	v.mu.Lock()
	if v.unmounted {
		v.mu.Unlock()
		v.logger.Debug("discarding dashboard result after unmount", "state", next.State.String())
		return
	}
	v.snap = next
	v.mu.Unlock()

	elapsed := time.Since(start)
	if err != nil {
		v.logger.Warn("dashboard fetch failed", "kind", KindOf(err).String(), "error", err, "duration", elapsed)
	} else {
		v.logger.Debug("dashboard fetch loaded", "bytes", len(payload), "duration", elapsed)
	}

	// Outside the lock: hooks publish events and may take their time.
	if v.onSettle != nil {
		v.onSettle(Settlement{ViewID: v.id, Snapshot: next, Duration: elapsed})
	}
}
