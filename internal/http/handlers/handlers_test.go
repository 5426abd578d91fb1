package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tcrfreight/backend/internal/airtable"
	"github.com/tcrfreight/backend/internal/geocode"
	"github.com/tcrfreight/backend/internal/models"
	"github.com/tcrfreight/backend/internal/service"
)

type fakeSelector struct {
	rows  []airtable.Record
	err   error
	calls int
}

func (f *fakeSelector) SelectFirstPage(ctx context.Context, table string, filter airtable.Expr) ([]airtable.Record, error) {
	f.calls++
	return f.rows, f.err
}

func (f *fakeSelector) SelectAll(ctx context.Context, table string, filter airtable.Expr) ([]airtable.Record, error) {
	return f.SelectFirstPage(ctx, table, filter)
}

type fakeGeocoder struct {
	coords map[string]models.Coordinate
}

func (f *fakeGeocoder) Geocode(ctx context.Context, place string) (models.Coordinate, error) {
	coord, ok := f.coords[place]
	if !ok {
		return models.Coordinate{}, geocode.ErrNotFound
	}
	return coord, nil
}

func newTestRouter(sel service.Selector, geo geocode.Geocoder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Tickets:   &service.TicketService{Airtable: sel, Table: "tcr", Logger: zerolog.Nop()},
		Tracer:    &service.TracingService{Airtable: sel, Geocoder: geo, Table: "tracing", Logger: zerolog.Nop()},
		Validator: validator.New(),
		Logger:    zerolog.Nop(),
	}
	r := gin.New()
	r.GET("/api/tickets", h.TicketsSearch)
	r.GET("/api/autocomplete", h.Autocomplete)
	r.GET("/api/tracing", h.Tracing)
	r.GET("/api/tracing_all", h.TracingAll)
	r.GET("/api/test", h.TestPassthrough)
	return r
}

func doGet(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTicketsMissingParamIs400WithoutUpstreamCall(t *testing.T) {
	fake := &fakeSelector{}
	r := newTestRouter(fake, &fakeGeocoder{})

	w := doGet(t, r, "/api/tickets?pol=seoul&type=20")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if fake.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", fake.calls)
	}
}

func TestTicketsNoMatchIs404(t *testing.T) {
	r := newTestRouter(&fakeSelector{}, &fakeGeocoder{})

	w := doGet(t, r, "/api/tickets?pol=seoul&pod=mars&type=20")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTicketsHappyPath(t *testing.T) {
	fake := &fakeSelector{rows: []airtable.Record{
		{ID: "rec1", Fields: map[string]any{
			"POL": "Busan", "POD": "Hamburg", "Type": "20dv",
			"Cost": 3100.0, "t/Time": "25 days", "Route": "TCR",
		}},
	}}
	r := newTestRouter(fake, &fakeGeocoder{})

	w := doGet(t, r, "/api/tickets?pol=busan&pod=hamburg&type=20")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got []models.TicketRecord
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Cost != 3100 || got[0].TransitTime != "25 days" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestTicketsUpstreamFailureIs502(t *testing.T) {
	r := newTestRouter(&fakeSelector{err: airtable.ErrUpstream}, &fakeGeocoder{})

	w := doGet(t, r, "/api/tickets?pol=busan&pod=hamburg&type=20")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestAutocompleteUnknownFieldIs400(t *testing.T) {
	fake := &fakeSelector{}
	r := newTestRouter(fake, &fakeGeocoder{})

	w := doGet(t, r, "/api/autocomplete?query=bu&field=Cost")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if fake.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", fake.calls)
	}
}

func TestAutocompleteReturnsSuggestions(t *testing.T) {
	fake := &fakeSelector{rows: []airtable.Record{
		{Fields: map[string]any{"POL": "Busan"}},
		{Fields: map[string]any{"POL": "Busan New Port"}},
	}}
	r := newTestRouter(fake, &fakeGeocoder{})

	w := doGet(t, r, "/api/autocomplete?query=bu&field=POL")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 || got[0] != "Busan" {
		t.Fatalf("unexpected suggestions: %v", got)
	}
}

func TestTracingMissingBLIs400(t *testing.T) {
	r := newTestRouter(&fakeSelector{}, &fakeGeocoder{})

	w := doGet(t, r, "/api/tracing")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTracingUnknownBLIs404(t *testing.T) {
	r := newTestRouter(&fakeSelector{}, &fakeGeocoder{})

	w := doGet(t, r, "/api/tracing?BL=MISSING")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTracingGeocodeFailureIs500NotPartialBody(t *testing.T) {
	fake := &fakeSelector{rows: []airtable.Record{
		{Fields: map[string]any{"BL": "TCR1", "POD": "Hamburg", "Location": "Unknown Siding"}},
	}}
	r := newTestRouter(fake, &fakeGeocoder{coords: map[string]models.Coordinate{}})

	w := doGet(t, r, "/api/tracing?BL=TCR1")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body["schedule"]; ok {
		t.Fatalf("expected no partial payload, got %s", w.Body.String())
	}
}

func TestTracingHappyPath(t *testing.T) {
	fake := &fakeSelector{rows: []airtable.Record{
		{Fields: map[string]any{
			"BL": "TCR1", "Client": "ACME", "POL": "Busan", "POD": "Hamburg",
			"ETD": "2024-05-01", "ETA": "2024-05-29", "Location": "Warsaw", "Status": "On rail",
		}},
	}}
	geo := &fakeGeocoder{coords: map[string]models.Coordinate{
		"Warsaw":  {Lat: 52.2297, Lon: 21.0122},
		"Hamburg": {Lat: 53.5511, Lon: 9.9937},
	}}
	r := newTestRouter(fake, geo)

	w := doGet(t, r, "/api/tracing?BL=TCR1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got models.TracingResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Schedule.BL != "TCR1" || got.CurrentInfo.DistanceToPOD == 0 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestTracingAllEmptyIs404(t *testing.T) {
	r := newTestRouter(&fakeSelector{}, &fakeGeocoder{})

	w := doGet(t, r, "/api/tracing_all")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTestPassthroughReturnsRawRows(t *testing.T) {
	fake := &fakeSelector{rows: []airtable.Record{{ID: "rec1", Fields: map[string]any{"POL": "Busan"}}}}
	r := newTestRouter(fake, &fakeGeocoder{})

	w := doGet(t, r, "/api/test")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []airtable.Record
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != "rec1" {
		t.Fatalf("unexpected body: %+v", got)
	}
}
