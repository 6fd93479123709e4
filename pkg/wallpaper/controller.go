package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dixieflatline76/wallcrop/config"
	"github.com/dixieflatline76/wallcrop/util"
	"github.com/dixieflatline76/wallcrop/util/log"
)

// Event results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Event describes the outcome of one wallpaper set.
type Event struct {
	AssetID       string    `json:"asset_id"`
	Destination   string    `json:"destination"`
	Result        string    `json:"result"`
	FailureReason string    `json:"failure_reason,omitempty"`
	Paths         []string  `json:"paths,omitempty"`
	Time          time.Time `json:"time"`
}

// Notifier receives set events, e.g. to broadcast them to connected clients.
type Notifier interface {
	NotifyWallpaperSet(ev Event) error
}

// Controller commits previews. It owns the pending-set bookkeeping and event reporting.
type Controller struct {
	persister Persister
	cfg       *config.AppConfig
	busy      util.SafeFlag

	mu        sync.Mutex
	notifiers []Notifier
	events    []Event
}

// NewController creates a controller that persists through p and records status in cfg.
func NewController(p Persister, cfg *config.AppConfig) *Controller {
	if cfg.GetPendingSetStatus() == config.SetPending {
		log.Println("Controller: previous wallpaper set did not finish")
		cfg.SetPendingSetStatus(config.SetNotPending)
	}
	return &Controller{persister: p, cfg: cfg}
}

// AddNotifier registers n to receive future events.
func (c *Controller) AddNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifiers = append(c.notifiers, n)
}

// Events returns the events recorded so far.
func (c *Controller) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// SetWallpaper crops the preview at its current zoom and scroll and applies it to dest.
// Failures are returned as *SetError carrying dest for a retry. Only one set runs at a
// time; a concurrent call fails with ErrSetInProgress.
func (c *Controller) SetWallpaper(ctx context.Context, p *Preview, dest Destination) ([]string, error) {
	rect, zoom, err := p.CropRect()
	if err != nil {
		return nil, &SetError{Destination: dest, Err: err}
	}
	if !c.busy.TrySet() {
		return nil, &SetError{Destination: dest, Err: ErrSetInProgress}
	}
	defer c.busy.Set(false)

	c.cfg.SetPendingSetStatus(config.SetPending)
	paths, err := c.persister.SetIndividualWallpaper(ctx, p.Asset(), rect, zoom, dest)
	c.cfg.SetPendingSetStatus(config.SetNotPending)

	ev := Event{AssetID: p.Asset().ID(), Destination: dest.String(), Time: time.Now()}
	if err != nil {
		setErr := &SetError{Destination: dest, Err: err}
		ev.Result = ResultFailure
		ev.FailureReason = setErr.FailureReason()
		c.record(ev)
		log.Printf("Controller: %v", setErr)
		return nil, setErr
	}

	c.cfg.SetLastDestination(dest.String())
	ev.Result = ResultSuccess
	ev.Paths = paths
	c.record(ev)
	return paths, nil
}

// Retry repeats a failed set for the destination carried by err.
func (c *Controller) Retry(ctx context.Context, p *Preview, err error) ([]string, error) {
	var setErr *SetError
	if !errors.As(err, &setErr) {
		return nil, fmt.Errorf("cannot retry: %w", err)
	}
	log.Printf("Controller: retrying %s wallpaper for %s", setErr.Destination, p.Asset().ID())
	return c.SetWallpaper(ctx, p, setErr.Destination)
}

func (c *Controller) record(ev Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	notifiers := append([]Notifier(nil), c.notifiers...)
	c.mu.Unlock()

	for _, n := range notifiers {
		if err := n.NotifyWallpaperSet(ev); err != nil {
			log.Printf("Controller: notify failed: %v", err)
		}
	}
}
