package web

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"

	"github.com/a-h/templ"

	"github.com/harriothq/experience-console/internal/console"
	"github.com/harriothq/experience-console/internal/journal"
	apperrors "github.com/harriothq/experience-console/internal/platform/errors"
	"github.com/harriothq/experience-console/internal/web/httpx"
	"github.com/harriothq/experience-console/internal/web/templates"
)

// defaultJournalLimit bounds the journal listing when no limit is given.
const defaultJournalLimit = 50

// handler serves the console shell and its JSON API.
type handler struct {
	con     *console.Console
	journal journal.Store
}

// NewHandler builds the HTTP handler for the console web server.
// journalStore may be nil when the call journal is disabled.
func NewHandler(con *console.Console, journalStore journal.Store) http.Handler {
	h := &handler{con: con, journal: journalStore}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleShell)
	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("GET /api/state", h.handleState)
	mux.HandleFunc("PUT /api/profile", h.handleEditProfile)
	mux.HandleFunc("POST /api/profile/amenities", h.handleToggleAmenity)
	mux.HandleFunc("POST /api/prediction/offer", h.handleRequestOffer)
	mux.HandleFunc("PUT /api/pricing", h.handleEditPricing)
	mux.HandleFunc("POST /api/pricing/events", h.handleLoadEvents)
	mux.HandleFunc("POST /api/campaign/audience", h.handleLoadAudience)
	mux.HandleFunc("POST /api/campaign/offer", h.handleCampaignOffer)
	mux.HandleFunc("POST /api/campaign/send", h.handleSendCampaign)
	mux.HandleFunc("GET /api/journal", h.handleJournal)

	return httpx.Chain(mux, httpx.RequestID(), httpx.RecoverPanic())
}

func (h *handler) handleShell(w http.ResponseWriter, r *http.Request) {
	view := templates.NewPageView(h.con.Snapshot())
	templ.Handler(templates.ConsolePage(view)).ServeHTTP(w, r)
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleState(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, h.con.Snapshot())
}

// writeSnapshot answers every mutation with the post-trigger state so
// the page can re-render without a second round trip.
func (h *handler) writeSnapshot(w http.ResponseWriter) {
	_ = httpx.WriteJSON(w, http.StatusOK, h.con.Snapshot())
}

func (h *handler) handleEditProfile(w http.ResponseWriter, r *http.Request) {
	var edit console.ProfileEdit
	if err := decodeBody(r, &edit); err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.con.EditProfile(httpx.RequestContext(r), edit)
	h.writeSnapshot(w)
}

// amenityToggle is the toggle request body.
type amenityToggle struct {
	Amenity  console.Amenity `json:"amenity"`
	Selected bool            `json:"selected"`
}

func (h *handler) handleToggleAmenity(w http.ResponseWriter, r *http.Request) {
	var toggle amenityToggle
	if err := decodeBody(r, &toggle); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if !slices.Contains(console.Amenities, toggle.Amenity) {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "unknown amenity"))
		return
	}
	h.con.ToggleAmenity(httpx.RequestContext(r), toggle.Amenity, toggle.Selected)
	h.writeSnapshot(w)
}

func (h *handler) handleRequestOffer(w http.ResponseWriter, r *http.Request) {
	h.con.RequestOffer(httpx.RequestContext(r))
	h.writeSnapshot(w)
}

func (h *handler) handleEditPricing(w http.ResponseWriter, r *http.Request) {
	var form console.EventPricingForm
	if err := decodeBody(r, &form); err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.con.EditPricingForm(httpx.RequestContext(r), form)
	h.writeSnapshot(w)
}

func (h *handler) handleLoadEvents(w http.ResponseWriter, r *http.Request) {
	h.con.LoadEvents(httpx.RequestContext(r))
	h.writeSnapshot(w)
}

func (h *handler) handleLoadAudience(w http.ResponseWriter, r *http.Request) {
	h.con.LoadAudience(httpx.RequestContext(r))
	h.writeSnapshot(w)
}

func (h *handler) handleCampaignOffer(w http.ResponseWriter, r *http.Request) {
	h.con.GenerateCampaignOffer(httpx.RequestContext(r))
	h.writeSnapshot(w)
}

func (h *handler) handleSendCampaign(w http.ResponseWriter, r *http.Request) {
	h.con.SendCampaign(httpx.RequestContext(r))
	h.writeSnapshot(w)
}

func (h *handler) handleJournal(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		httpx.WriteError(w, apperrors.E(apperrors.KindPrecondition, "call journal is disabled"))
		return
	}
	limit := defaultJournalLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	entries, err := h.journal.RecentEntries(httpx.RequestContext(r), limit)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	_ = httpx.WriteJSON(w, http.StatusOK, entries)
}

func decodeBody(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return apperrors.E(apperrors.KindInvalidInput, "request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return apperrors.E(apperrors.KindInvalidInput, "malformed request body")
	}
	return nil
}
