package worker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"

	"eko_market/internal/domain/entity"
)

// Refresh triggers, used as metric labels and for logging.
const (
	TriggerStartup = "startup"
	TriggerManual  = "manual"
	TriggerChange  = "change"
)

type Status string

const (
	StatusLoading Status = "LOADING"
	StatusSuccess Status = "SUCCESS"
)

const alertDedupeTTL = time.Hour

type DealRepository interface {
	ListDeals(ctx context.Context) ([]entity.Deal, error)
}

// Snapshot is an immutable view of the authoritative collection handed to
// readers. Readers never mutate shared state.
type Snapshot struct {
	Deals       []entity.Deal
	Status      Status
	Warning     string
	RefreshedAt time.Time
}

// Refresher owns the single authoritative deal collection and its refresh
// lifecycle. Every refresh replaces the collection wholesale; there is no
// incremental merge. Completions are tagged with a monotonic sequence so a
// reordered earlier fetch can never clobber a later one.
type Refresher struct {
	repo DealRepository

	alerts         chan<- entity.Deal
	alertMinProfit float64
	alerted        *cache.Cache

	mu          sync.Mutex
	deals       []entity.Deal
	status      Status
	warning     string
	refreshedAt time.Time
	seqStarted  uint64

	wg sync.WaitGroup
}

func NewRefresher(repo DealRepository) *Refresher {
	return &Refresher{
		repo:    repo,
		status:  StatusLoading,
		alerted: cache.New(alertDedupeTTL, alertDedupeTTL),
	}
}

// WithAlerts routes deals whose profit reaches minProfit into the channel
// after each refresh. Sends never block; a full channel drops the alert.
func (r *Refresher) WithAlerts(alerts chan<- entity.Deal, minProfit float64) *Refresher {
	r.alerts = alerts
	r.alertMinProfit = minProfit
	return r
}

// Start performs the initial refresh in the background.
func (r *Refresher) Start(ctx context.Context) {
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()

		if err := r.Refresh(ctx, TriggerStartup); err != nil && ctx.Err() == nil {
			logger(ctx).Error("initial refresh failed", "error", err)
		}
	}()
}

// Stop waits for any in-flight startup refresh.
func (r *Refresher) Stop() {
	r.wg.Wait()
}

// Refresh refetches the collection wholesale. A fetch failure resolves to an
// empty collection in SUCCESS state so readers never hang in LOADING; the
// underlying message is kept as a warning unless it is a generic low-level
// network error, which is deliberately suppressed.
func (r *Refresher) Refresh(ctx context.Context, trigger string) error {
	r.mu.Lock()
	r.status = StatusLoading
	r.seqStarted++
	seq := r.seqStarted
	r.mu.Unlock()

	refreshesTotal.WithLabelValues(trigger).Inc()

	fetched, err := r.repo.ListDeals(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.seqStarted {
		// A newer refresh started while this one was in flight.
		logger(ctx).Debug("stale refresh discarded", "trigger", trigger)
		return nil
	}

	r.status = StatusSuccess
	r.refreshedAt = time.Now()

	if err != nil {
		r.deals = nil
		r.warning = ""

		if !isBenignNetworkError(err) {
			r.warning = err.Error()
		}

		logger(ctx).Error("refresh failed, collection cleared", "trigger", trigger, "error", err)
		dealsFetched.Set(0)

		return fmt.Errorf("repo.ListDeals: %w", err)
	}

	r.deals = fetched
	r.warning = ""
	dealsFetched.Set(float64(len(fetched)))

	logger(ctx).Info("collection refreshed", "trigger", trigger, "deals", len(fetched))

	r.sendAlerts(fetched)

	return nil
}

// Snapshot returns a copy of the current collection state.
func (r *Refresher) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	deals := make([]entity.Deal, len(r.deals))
	copy(deals, r.deals)

	return Snapshot{
		Deals:       deals,
		Status:      r.status,
		Warning:     r.warning,
		RefreshedAt: r.refreshedAt,
	}
}

func (r *Refresher) sendAlerts(fetched []entity.Deal) {
	if r.alerts == nil {
		return
	}

	for _, deal := range fetched {
		if deal.Profit < r.alertMinProfit {
			continue
		}

		key := fmt.Sprintf("%s|%.0f|%.0f", deal.ItemName, deal.BuyPrice, deal.SellPrice)
		if _, seen := r.alerted.Get(key); seen {
			continue
		}

		select {
		case r.alerts <- deal:
			r.alerted.SetDefault(key, struct{}{})
		default:
		}
	}
}

// isBenignNetworkError reports whether err is the kind of generic transport
// failure whose message carries no value for the user.
func isBenignNetworkError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
