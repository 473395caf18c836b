package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/service/chat"
	"eko_market/internal/domain/service/logistics"
	"eko_market/internal/domain/value"
	"eko_market/internal/server"
	"eko_market/internal/worker"
	"eko_market/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type fakeCollection struct {
	snapshot worker.Snapshot
}

func (c *fakeCollection) Snapshot() worker.Snapshot {
	return c.snapshot
}

type fakeQueue struct {
	triggers []string
	err      error
}

func (q *fakeQueue) EnqueueRefresh(_ context.Context, trigger string) error {
	q.triggers = append(q.triggers, trigger)
	return q.err
}

type fakeLocator struct {
	coord value.Coordinate
}

func (l *fakeLocator) Locate(context.Context, string) value.Coordinate {
	return l.coord
}

type fakeGenerator struct {
	answer string
	err    error
}

func (g *fakeGenerator) GenerateContent(context.Context, string) (string, error) {
	return g.answer, g.err
}

func day(n int) time.Time {
	return time.Date(2026, 8, n, 12, 0, 0, 0, time.UTC)
}

func testSnapshot() worker.Snapshot {
	roi := 37.5

	return worker.Snapshot{
		Deals: []entity.Deal{
			{ID: "a", ItemName: "Rice 50kg", BuyMarket: "Mile 12 Market", SellMarket: "Jumia", Category: "Grains", BuyPrice: 40000, SellPrice: 55000, Profit: 15000, ProfitPercentage: &roi, CreatedAt: day(1)},
			{ID: "b", ItemName: "Tomatoes basket", BuyMarket: "Oyingbo", SellMarket: "Konga", Category: "Vegetables", BuyPrice: 12000, SellPrice: 15500, Profit: 3500, CreatedAt: day(3)},
			{ID: "c", ItemName: "Yam tubers", BuyMarket: "Mushin", SellMarket: "Jiji", Category: "Tubers", BuyPrice: 9000, SellPrice: 8000, Profit: -1000, CreatedAt: day(2)},
		},
		Status:      worker.StatusSuccess,
		RefreshedAt: day(4),
	}
}

func newTestServer(collection *fakeCollection, queue *fakeQueue, generator *fakeGenerator) http.Handler {
	estimator := logistics.NewEstimator(logistics.DefaultBaseFee, logistics.DefaultPerKmRate)
	locator := &fakeLocator{coord: value.Coordinate{Lat: 6.60, Lng: 3.40}}

	srv := server.NewServer(
		server.NewDealsServer(collection, queue, estimator, locator),
		server.NewChatServer(chat.NewService(generator), collection),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	return router
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func TestGetDeals(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{})

	w := doRequest(t, h, http.MethodGet, "/v1/deals?sort=profit", "")
	rq.Equal(http.StatusOK, w.Code)

	var page rest.DealsPage
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &page))

	rq.Equal(1, page.Page)
	rq.Equal(1, page.TotalPages)
	rq.Equal(3, page.TotalDeals)
	rq.Empty(page.Warning)
	rq.Len(page.Deals, 3)

	rq.Equal("a", page.Deals[0].ID)
	rq.Equal("b", page.Deals[1].ID)
	rq.Equal("c", page.Deals[2].ID)

	first := page.Deals[0]
	rq.Equal("Rice 50kg", first.ItemName)
	rq.NotNil(first.ProfitPercentage)
	rq.InDelta(37.5, *first.ProfitPercentage, 0.001)
	rq.Contains(first.ShareURL, "https://wa.me/?text=")
	rq.Equal("2026-08-01T12:00:00Z", first.CreatedAt)

	rq.NotNil(first.Logistics)
	rq.Equal("Mile 12", first.Logistics.Market)
	rq.Equal("delivery", first.Logistics.Mode)
	rq.InDelta(1.4, first.Logistics.DistanceKm, 0.11)

	// Unknown market label resolves to the fallback.
	rq.NotNil(page.Deals[2].Logistics)
	rq.Equal("Ikeja", page.Deals[2].Logistics.Market)
}

func TestGetDealsRecencyDefault(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{})

	w := doRequest(t, h, http.MethodGet, "/v1/deals", "")
	rq.Equal(http.StatusOK, w.Code)

	var page rest.DealsPage
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &page))

	rq.Equal("b", page.Deals[0].ID)
	rq.Equal("c", page.Deals[1].ID)
	rq.Equal("a", page.Deals[2].ID)
}

func TestGetDealsFilterAndPaging(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{})

	w := doRequest(t, h, http.MethodGet, "/v1/deals?q=rice", "")
	rq.Equal(http.StatusOK, w.Code)

	var page rest.DealsPage
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &page))
	rq.Equal(1, page.TotalDeals)
	rq.Equal("a", page.Deals[0].ID)

	// Out-of-range page degrades to empty, not an error.
	w = doRequest(t, h, http.MethodGet, "/v1/deals?page=5", "")
	rq.Equal(http.StatusOK, w.Code)
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &page))
	rq.Empty(page.Deals)
	rq.Equal(3, page.TotalDeals)
}

func TestGetDealsPickupMode(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{})

	w := doRequest(t, h, http.MethodGet, "/v1/deals?mode=pickup&lat=6.6111&lng=3.3951", "")
	rq.Equal(http.StatusOK, w.Code)

	var page rest.DealsPage
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &page))

	var rice rest.Deal
	for _, d := range page.Deals {
		if d.ID == "a" {
			rice = d
		}
	}

	rq.NotNil(rice.Logistics)
	rq.Equal("pickup", rice.Logistics.Mode)
	rq.Zero(rice.Logistics.DistanceKm)
	rq.InDelta(1000, rice.Logistics.EstimatedCost, 1e-9) // base fee doubled
}

func TestGetDealsValidation(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{})

	for _, target := range []string{
		"/v1/deals?sort=alphabetical",
		"/v1/deals?page=0",
		"/v1/deals?page=two",
		"/v1/deals?mode=teleport",
		"/v1/deals?lat=abc&lng=3.4",
	} {
		w := doRequest(t, h, http.MethodGet, target, "")
		rq.Equal(http.StatusBadRequest, w.Code, target)
	}
}

func TestGetDealsWarningPropagated(t *testing.T) {
	rq := require.New(t)

	snapshot := worker.Snapshot{
		Status:      worker.StatusSuccess,
		Warning:     "relation market_deals does not exist",
		RefreshedAt: day(4),
	}

	h := newTestServer(&fakeCollection{snapshot: snapshot}, &fakeQueue{}, &fakeGenerator{})

	w := doRequest(t, h, http.MethodGet, "/v1/deals", "")
	rq.Equal(http.StatusOK, w.Code)

	var page rest.DealsPage
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &page))
	rq.Empty(page.Deals)
	rq.Contains(page.Warning, "market_deals")
}

func TestPostRefresh(t *testing.T) {
	rq := require.New(t)

	queue := &fakeQueue{}
	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, queue, &fakeGenerator{})

	w := doRequest(t, h, http.MethodPost, "/v1/deals/refresh", "")
	rq.Equal(http.StatusAccepted, w.Code)
	rq.Equal([]string{worker.TriggerManual}, queue.triggers)
}

func TestGetExport(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{})

	w := doRequest(t, h, http.MethodGet, "/v1/deals/export?sort=profit", "")
	rq.Equal(http.StatusOK, w.Code)
	rq.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	rq.Contains(w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(w.Body.String(), "\n")
	rq.Equal("item_name,mile12_price,online_price,market_name,specialized_category,profit", lines[0])
	rq.Equal(`"Rice 50kg",40000,55000,"Mile 12 Market","Grains",15000`, lines[1])
	rq.Len(lines, 4)
}

func TestGetStats(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{})

	w := doRequest(t, h, http.MethodGet, "/v1/stats", "")
	rq.Equal(http.StatusOK, w.Code)

	var stats rest.Stats
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &stats))
	rq.Equal(3, stats.TotalDeals)
	rq.InDelta(37.5, stats.AverageROI, 0.001)
	rq.Equal("2026-08-04T12:00:00Z", stats.LastRefreshAt)
}

func TestPostChat(t *testing.T) {
	rq := require.New(t)

	generator := &fakeGenerator{answer: "Buy rice at Mile 12."}
	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, generator)

	w := doRequest(t, h, http.MethodPost, "/v1/chat", `{"question":"where do I buy rice?"}`)
	rq.Equal(http.StatusOK, w.Code)

	var response rest.ChatResponse
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	rq.Equal("Buy rice at Mile 12.", response.Answer)
	rq.Contains(response.ShareURL, "https://wa.me/?text=")
}

func TestPostChatValidation(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{answer: "ok"})

	w := doRequest(t, h, http.MethodPost, "/v1/chat", `{"question":""}`)
	rq.Equal(http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodPost, "/v1/chat", `{"question":"hi","language":"yoruba"}`)
	rq.Equal(http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodPost, "/v1/chat", `{"question":"hi","language":"pidgin"}`)
	rq.Equal(http.StatusOK, w.Code)
}

func TestGetChatGreeting(t *testing.T) {
	rq := require.New(t)

	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, &fakeGenerator{})

	w := doRequest(t, h, http.MethodGet, "/v1/chat/greeting", "")
	rq.Equal(http.StatusOK, w.Code)

	var response rest.ChatResponse
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	rq.Contains(response.Answer, "1,200+ market prices")

	w = doRequest(t, h, http.MethodGet, "/v1/chat/greeting?language=pidgin", "")
	rq.Equal(http.StatusOK, w.Code)
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	rq.Contains(response.Answer, "Oga/Madam")

	w = doRequest(t, h, http.MethodGet, "/v1/chat/greeting?language=yoruba", "")
	rq.Equal(http.StatusBadRequest, w.Code)
}

func TestPostChatGenerationFailureKeepsTranscript(t *testing.T) {
	rq := require.New(t)

	generator := &fakeGenerator{err: context.DeadlineExceeded}
	h := newTestServer(&fakeCollection{snapshot: testSnapshot()}, &fakeQueue{}, generator)

	w := doRequest(t, h, http.MethodPost, "/v1/chat", `{"question":"hi"}`)
	rq.Equal(http.StatusOK, w.Code)

	var response rest.ChatResponse
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	rq.True(strings.HasPrefix(response.Answer, "Error: "))
}
