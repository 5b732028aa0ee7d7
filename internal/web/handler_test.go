package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harriothq/experience-console/internal/console"
	"github.com/harriothq/experience-console/internal/gateway"
	"github.com/harriothq/experience-console/internal/journal"
)

// stubGateway answers every capability with canned values.
type stubGateway struct {
	mu           sync.Mutex
	predictCalls int
	offerCalls   int
	priceCalls   int
	eventsCalls  int
}

func (s *stubGateway) Predict(context.Context, gateway.TravelerProfile) (gateway.PredictionResult, error) {
	s.mu.Lock()
	s.predictCalls++
	s.mu.Unlock()
	return gateway.PredictionResult{SegmentLabel: "Luxury Seeker", BookingProbability: 0.82, EstimatedLTV: 6400}, nil
}

func (s *stubGateway) GenerateOffer(context.Context, gateway.OfferRequest) (gateway.Offer, error) {
	s.mu.Lock()
	s.offerCalls++
	s.mu.Unlock()
	return gateway.Offer{OfferName: "Suite Upgrade", Copy: "Enjoy 20% off"}, nil
}

func (s *stubGateway) PriceEvent(context.Context, gateway.EventPricingRequest) (gateway.EventPricingResult, error) {
	s.mu.Lock()
	s.priceCalls++
	s.mu.Unlock()
	return gateway.EventPricingResult{OriginalRate: 299, AdjustedRate: 358.80, Multiplier: 1.2}, nil
}

func (s *stubGateway) ListEvents(context.Context, string, string) (gateway.EventsResult, error) {
	s.mu.Lock()
	s.eventsCalls++
	s.mu.Unlock()
	return gateway.EventsResult{}, nil
}

func (s *stubGateway) Audience(context.Context) (gateway.AudienceResult, error) {
	return gateway.AudienceResult{Audience: []json.RawMessage{json.RawMessage(`{"email":"a@harriot.example"}`)}}, nil
}

func (s *stubGateway) SendCampaign(context.Context, gateway.CampaignSendRequest) (json.RawMessage, error) {
	return json.RawMessage(`{"status":"queued"}`), nil
}

func newTestHandler(t *testing.T, journalStore journal.Store) (http.Handler, *console.Console, *stubGateway) {
	t.Helper()
	stub := &stubGateway{}
	con := console.New(stub, nil, console.Config{
		Now: func() time.Time {
			return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	return NewHandler(con, journalStore), con, stub
}

func TestHandleStateReturnsDefaults(t *testing.T) {
	t.Parallel()

	handler, _, _ := newTestHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	var snap console.Snapshot
	if err := json.Unmarshal(recorder.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Profile.Age != 35 || snap.Profile.LoyaltyTier != console.TierSilver {
		t.Fatalf("profile = %+v, want the defaults", snap.Profile)
	}
	if snap.PricingForm.City != "New York" || snap.PricingForm.BaseRoomRate != 299 {
		t.Fatalf("pricing form = %+v, want the defaults", snap.PricingForm)
	}
	if snap.Prediction.Phase != console.PhaseIdle {
		t.Fatalf("prediction phase = %q, want %q", snap.Prediction.Phase, console.PhaseIdle)
	}
}

func TestHandleEditProfileUpdatesAndPredicts(t *testing.T) {
	t.Parallel()

	handler, con, stub := newTestHandler(t, nil)

	body := `{"age":52,"loyalty_tier":"Platinum","avg_spend":900,"last_stay_days_ago":10,"travel_purpose":"Business"}`
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", recorder.Code, http.StatusOK, recorder.Body)
	}
	var snap console.Snapshot
	if err := json.Unmarshal(recorder.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Profile.LoyaltyTier != console.TierPlatinum || snap.Profile.Age != 52 {
		t.Fatalf("profile = %+v, want the edited values", snap.Profile)
	}

	con.Wait()
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.predictCalls != 1 {
		t.Fatalf("predict calls = %d, want 1", stub.predictCalls)
	}
}

func TestHandleEditProfileRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	handler, _, _ := newTestHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader("{not json")))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
}

func TestHandleToggleAmenityRejectsUnknown(t *testing.T) {
	t.Parallel()

	handler, con, stub := newTestHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/profile/amenities",
		strings.NewReader(`{"amenity":"Casino","selected":true}`)))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	con.Wait()
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.predictCalls != 0 {
		t.Fatalf("predict calls = %d, want 0 after a rejected toggle", stub.predictCalls)
	}
}

func TestHandleToggleAmenityFiresPrediction(t *testing.T) {
	t.Parallel()

	handler, con, stub := newTestHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/profile/amenities",
		strings.NewReader(`{"amenity":"Golf","selected":true}`)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	var snap console.Snapshot
	if err := json.Unmarshal(recorder.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if !snap.Profile.IsAmenitySelected(console.AmenityGolf) {
		t.Fatal("Golf should be selected")
	}

	con.Wait()
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.predictCalls != 1 {
		t.Fatalf("predict calls = %d, want 1", stub.predictCalls)
	}
}

func TestHandleRequestOfferNoopWithoutPrediction(t *testing.T) {
	t.Parallel()

	handler, con, stub := newTestHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/prediction/offer", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	con.Wait()
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.offerCalls != 0 {
		t.Fatalf("offer calls = %d, want 0 without a prediction", stub.offerCalls)
	}
}

func TestHandleEditPricingFiresCalculation(t *testing.T) {
	t.Parallel()

	handler, con, stub := newTestHandler(t, nil)

	body := `{"city":"Chicago","check_in_date":"2026-10-01","check_out_date":"2026-10-04","base_room_rate":199}`
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/api/pricing", strings.NewReader(body)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	con.Wait()
	stub.mu.Lock()
	priceCalls, eventsCalls := stub.priceCalls, stub.eventsCalls
	stub.mu.Unlock()
	if priceCalls != 1 {
		t.Fatalf("pricing calls = %d, want 1", priceCalls)
	}
	if eventsCalls != 0 {
		t.Fatalf("events calls = %d, want 0 on form edits", eventsCalls)
	}
}

func TestHandleShellRendersPage(t *testing.T) {
	t.Parallel()

	handler, _, _ := newTestHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q, want text/html", ct)
	}
	if !bytes.Contains(recorder.Body.Bytes(), []byte("Experience Console")) {
		t.Fatal("shell page should contain the console title")
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	handler, _, _ := newTestHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	if !strings.Contains(recorder.Body.String(), `"ok"`) {
		t.Fatalf("body = %s, want a status ok payload", recorder.Body)
	}
}

type memoryJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
	limits  []int
}

func (m *memoryJournal) AppendEntry(_ context.Context, entry journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryJournal) RecentEntries(_ context.Context, limit int) ([]journal.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limits = append(m.limits, limit)
	out := make([]journal.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func TestHandleJournalListsEntries(t *testing.T) {
	t.Parallel()

	store := &memoryJournal{entries: []journal.Entry{{
		ID:         "entry-1",
		Capability: "predict",
		Outcome:    journal.OutcomeApplied,
	}}}
	handler, _, _ := newTestHandler(t, store)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/journal?limit=5", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	var entries []journal.Entry
	if err := json.Unmarshal(recorder.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "entry-1" {
		t.Fatalf("entries = %+v, want the stored entry", entries)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.limits) != 1 || store.limits[0] != 5 {
		t.Fatalf("limits = %v, want [5]", store.limits)
	}
}

func TestHandleJournalRejectsBadLimit(t *testing.T) {
	t.Parallel()

	handler, _, _ := newTestHandler(t, &memoryJournal{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/journal?limit=zero", nil))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
}

func TestHandleJournalDisabled(t *testing.T) {
	t.Parallel()

	handler, _, _ := newTestHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/journal", nil))

	if recorder.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusConflict)
	}
}
