package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/service/deals"
	"eko_market/internal/domain/service/logistics"
	"eko_market/internal/domain/value"
	"eko_market/internal/worker"
	"eko_market/pkg/errcodes"
	"eko_market/pkg/httpx/reply"
	"eko_market/pkg/rest"
)

type snapshotter interface {
	Snapshot() worker.Snapshot
}

type refreshEnqueuer interface {
	EnqueueRefresh(ctx context.Context, trigger string) error
}

type locator interface {
	Locate(ctx context.Context, ip string) value.Coordinate
}

type DealsServer struct {
	collection snapshotter
	queue      refreshEnqueuer
	estimator  logistics.Estimator
	locator    locator
}

func NewDealsServer(
	collection snapshotter,
	queue refreshEnqueuer,
	estimator logistics.Estimator,
	locator locator,
) DealsServer {
	return DealsServer{
		collection: collection,
		queue:      queue,
		estimator:  estimator,
		locator:    locator,
	}
}

func (s DealsServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	query := r.URL.Query().Get("q")

	order, err := parseSortOrder(r.URL.Query().Get("sort"))
	if err != nil {
		return err
	}

	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		return err
	}

	mode, err := parseLogisticsMode(r.URL.Query().Get("mode"))
	if err != nil {
		return err
	}

	requester, err := s.resolveRequester(r)
	if err != nil {
		return err
	}

	snapshot := s.collection.Snapshot()

	filtered := deals.Filter(snapshot.Deals, query)
	sorted := deals.Sort(filtered, order)
	paged := deals.Paginate(sorted, page)

	response := rest.DealsPage{
		Deals:      make([]rest.Deal, 0, len(paged)),
		Page:       page,
		TotalPages: deals.TotalPages(len(sorted)),
		TotalDeals: len(sorted),
		Warning:    snapshot.Warning,
	}

	for _, deal := range paged {
		quote := s.estimator.Quote(requester, deal, mode)
		response.Deals = append(response.Deals, newRESTDeal(deal, quote))
	}

	reply.JSON(ctx, w, http.StatusOK, response)

	return nil
}

func (s DealsServer) postV1DealsRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.queue.EnqueueRefresh(ctx, worker.TriggerManual); err != nil {
		return fmt.Errorf("queue.EnqueueRefresh: %w", err)
	}

	reply.JSON(ctx, w, http.StatusAccepted, struct {
		Status string `json:"status"`
	}{Status: "queued"})

	return nil
}

func (s DealsServer) getV1DealsExport(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query().Get("q")

	order, err := parseSortOrder(r.URL.Query().Get("sort"))
	if err != nil {
		return err
	}

	snapshot := s.collection.Snapshot()
	sorted := deals.Sort(deals.Filter(snapshot.Deals, query), order)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="eko-market-deals.csv"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(deals.ExportCSV(sorted))); err != nil {
		logger(r.Context()).Error("export write failed", "error", err)
	}

	return nil
}

func (s DealsServer) getV1Stats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	snapshot := s.collection.Snapshot()

	reply.JSON(ctx, w, http.StatusOK, newRESTStats(snapshot))

	return nil
}

// resolveRequester yields the coordinate logistics quotes are computed from:
// explicit lat/lng when the client sends them, IP geolocation otherwise.
func (s DealsServer) resolveRequester(r *http.Request) (*value.Coordinate, error) {
	rawLat := r.URL.Query().Get("lat")
	rawLng := r.URL.Query().Get("lng")

	if rawLat == "" && rawLng == "" {
		coordinate := s.locator.Locate(r.Context(), clientIP(r))
		return &coordinate, nil
	}

	lat, latErr := strconv.ParseFloat(rawLat, 64)
	lng, lngErr := strconv.ParseFloat(rawLng, 64)

	if latErr != nil || lngErr != nil {
		return nil, failure.NewInvalidArgumentError(
			"lat and lng must both be valid decimal degrees",
			failure.WithCode(errcodes.InvalidCoordinates),
			failure.WithDescription("Invalid coordinates"),
		)
	}

	coordinate := value.Coordinate{Lat: lat, Lng: lng}
	if !coordinate.InCountryBounds() {
		coordinate = logistics.FallbackCoordinate()
	}

	return &coordinate, nil
}

func parseSortOrder(raw string) (deals.SortOrder, error) {
	if raw == "" {
		return deals.SortByRecency, nil
	}

	order := deals.SortOrder(raw)
	if !order.Valid() {
		return "", failure.NewInvalidArgumentError(
			fmt.Sprintf("unknown sort order %q", raw),
			failure.WithCode(errcodes.InvalidSortOrder),
			failure.WithDescription("Sort order must be recent or profit"),
		)
	}

	return order, nil
}

func parsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, failure.NewInvalidArgumentError(
			fmt.Sprintf("page must be a positive integer, got %q", raw),
			failure.WithCode(errcodes.InvalidPaging),
			failure.WithDescription("Page must be a positive integer"),
		)
	}

	return page, nil
}

func parseLogisticsMode(raw string) (entity.LogisticsMode, error) {
	if raw == "" {
		return entity.ModeDelivery, nil
	}

	mode := entity.LogisticsMode(raw)
	if !mode.Valid() {
		return "", failure.NewInvalidArgumentError(
			fmt.Sprintf("unknown logistics mode %q", raw),
			failure.WithCode(errcodes.InvalidLogisticsMode),
			failure.WithDescription("Mode must be delivery or pickup"),
		)
	}

	return mode, nil
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
