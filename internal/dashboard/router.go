package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/session"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

// ErrPanelHidden is returned when activation is requested for a panel the
// current role cannot see. Hidden entries carry no handler at all, so this
// is the programmatic equivalent of an unclickable item.
var ErrPanelHidden = errors.New("dashboard: panel not visible for this role")

// Loader fetches one panel's data. Loaders run asynchronously after
// activation; the panel is visible before its data resolves and the view
// must tolerate the loading interval.
type Loader func(ctx context.Context) error

// Router owns the navigation state machine: the role-gated visible entry
// set and the single active panel. Switching panels cancels the previous
// panel's in-flight loader so a late response can never write into a
// non-active view.
type Router struct {
	sess     *session.Session
	loaders  map[Panel]Loader
	notifier Notifier
	logger   *slog.Logger

	root context.Context

	mu        sync.Mutex
	visible   []NavEntry
	active    Panel
	hasActive bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewRouter builds the visible entry set for the session's role and
// auto-activates the first visible entry exactly once. Entries failing the
// role check are excluded from the router entirely.
func NewRouter(ctx context.Context, sess *session.Session, loaders map[Panel]Loader, notifier Notifier, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		sess:     sess,
		loaders:  loaders,
		notifier: notifier,
		logger:   logger,
		root:     ctx,
	}
	for _, entry := range navCatalog {
		if entry.RequiredRole == RoleAll || entry.RequiredRole == sess.Role {
			r.visible = append(r.visible, entry)
		}
	}

	if len(r.visible) > 0 {
		// Initial transition; errors here cannot happen since the entry
		// was just computed visible.
		_ = r.Activate(r.visible[0].Panel)
	}
	return r
}

// Visible returns the navigation entries for this session, with the
// current activation state.
func (r *Router) Visible() []NavEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]NavEntry, len(r.visible))
	copy(out, r.visible)
	for i := range out {
		out[i].Active = r.hasActive && out[i].Panel == r.active
	}
	return out
}

// Active returns the currently active panel, if any has been activated.
func (r *Router) Active() (Panel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.hasActive
}

// Activate deactivates every entry, activates p and dispatches its loader.
// Activation is immediate; the loader runs asynchronously. A panel without
// a loader is pure static content and activation is the whole effect.
func (r *Router) Activate(p Panel) error {
	r.mu.Lock()

	found := false
	for _, entry := range r.visible {
		if entry.Panel == p {
			found = true
			break
		}
	}
	if !found {
		r.mu.Unlock()
		return ErrPanelHidden
	}

	if r.cancel != nil {
		r.cancel()
	}
	r.active = p
	r.hasActive = true

	loader, ok := r.loaders[p]
	if !ok {
		r.cancel = nil
		r.mu.Unlock()
		r.logger.Debug("dashboard: activated static panel", slog.String("panel", p.String()))
		return nil
	}

	ctx, cancel := context.WithCancel(r.root)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	r.logger.Debug("dashboard: activating panel", slog.String("panel", p.String()))
	go func() {
		defer r.wg.Done()
		if err := loader(ctx); err != nil {
			if ctx.Err() != nil {
				// Superseded by a later activation; drop silently.
				return
			}
			r.logger.Warn("dashboard: panel load failed",
				slog.String("panel", p.String()), slog.Any("err", err))
			r.notifier.Error(placement.UserMessage(err))
		}
	}()
	return nil
}

// Reload re-runs the active panel's loader, if it has one. Mutating
// operations call this after success so the owning listing refreshes.
func (r *Router) Reload() {
	if p, ok := r.Active(); ok {
		_ = r.Activate(p)
	}
}

// Wait blocks until all dispatched loaders have returned. Used by shutdown
// and tests.
func (r *Router) Wait() {
	r.wg.Wait()
}
