package console

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/harriothq/experience-console/internal/gateway"
	"github.com/harriothq/experience-console/internal/journal"
)

// Default form values shown before the operator edits anything.
const (
	defaultAge             = 35
	defaultAvgSpend        = 450
	defaultLastStayDaysAgo = 45
	defaultBaseRoomRate    = 299

	// DefaultCity seeds the event-pricing form when none is configured.
	DefaultCity = "New York"
	// DefaultStayWindowDays separates the default check-out from check-in.
	DefaultStayWindowDays = 3
)

// dayFormat renders dates the way the gateway expects them.
const dayFormat = "2006-01-02"

// Gateway is the slice of the experience engine the console consumes.
type Gateway interface {
	Predict(ctx context.Context, profile gateway.TravelerProfile) (gateway.PredictionResult, error)
	GenerateOffer(ctx context.Context, req gateway.OfferRequest) (gateway.Offer, error)
	PriceEvent(ctx context.Context, req gateway.EventPricingRequest) (gateway.EventPricingResult, error)
	ListEvents(ctx context.Context, city, date string) (gateway.EventsResult, error)
	Audience(ctx context.Context) (gateway.AudienceResult, error)
	SendCampaign(ctx context.Context, req gateway.CampaignSendRequest) (json.RawMessage, error)
}

// Config carries the injected console defaults.
type Config struct {
	// DefaultCity seeds the event-pricing form.
	DefaultCity string
	// DefaultStayWindowDays is the default check-in to check-out span.
	DefaultStayWindowDays int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Console owns the form state and the per-capability call states for the
// prediction, event-pricing, and campaign workflows.
type Console struct {
	gw      Gateway
	emitter *journal.Emitter
	now     func() time.Time

	mu          sync.Mutex
	profile     TravelerProfile
	pricingForm EventPricingForm

	prediction    call[gateway.PredictionResult]
	offer         call[gateway.Offer]
	pricing       call[gateway.EventPricingResult]
	events        call[gateway.EventsResult]
	audience      call[gateway.AudienceResult]
	campaignOffer call[gateway.Offer]
	send          call[json.RawMessage]

	inflight sync.WaitGroup
}

// New creates a console with default form state. emitter may be nil.
func New(gw Gateway, emitter *journal.Emitter, cfg Config) *Console {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	city := cfg.DefaultCity
	if city == "" {
		city = DefaultCity
	}
	window := cfg.DefaultStayWindowDays
	if window <= 0 {
		window = DefaultStayWindowDays
	}

	today := now()
	return &Console{
		gw:      gw,
		emitter: emitter,
		now:     now,
		profile: TravelerProfile{
			Age:                defaultAge,
			LoyaltyTier:        TierSilver,
			AvgSpend:           defaultAvgSpend,
			LastStayDaysAgo:    defaultLastStayDaysAgo,
			TravelPurpose:      PurposeLeisure,
			PreferredAmenities: []Amenity{AmenitySpa},
		},
		pricingForm: EventPricingForm{
			City:         city,
			CheckInDate:  today.Format(dayFormat),
			CheckOutDate: today.AddDate(0, 0, window).Format(dayFormat),
			BaseRoomRate: defaultBaseRoomRate,
		},
	}
}

// Wait blocks until every in-flight gateway call has completed. Used to
// drain outstanding work on shutdown.
func (c *Console) Wait() {
	c.inflight.Wait()
}

// spawn runs one gateway call off the caller's event path and records
// its completion in the journal. The context is detached so the
// triggering request returning does not cancel the call it started.
func (c *Console) spawn(ctx context.Context, capability Capability, seq uint64, run func(ctx context.Context) (applied bool, err error)) {
	ctx = context.WithoutCancel(ctx)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		started := c.now()
		applied, err := run(ctx)
		c.record(ctx, capability, seq, applied, err, c.now().Sub(started))
	}()
}

// record logs and journals one completed gateway call.
func (c *Console) record(ctx context.Context, capability Capability, seq uint64, applied bool, err error, elapsed time.Duration) {
	outcome := journal.OutcomeApplied
	switch {
	case err != nil:
		outcome = journal.OutcomeFailed
		log.Printf("%s call failed seq=%d elapsed=%s error=%v", capability, seq, elapsed, err)
	case !applied:
		outcome = journal.OutcomeStale
		log.Printf("%s response discarded as stale seq=%d elapsed=%s", capability, seq, elapsed)
	}

	entry := journal.Entry{
		Capability: string(capability),
		Sequence:   seq,
		Outcome:    outcome,
		Latency:    elapsed,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if journalErr := c.emitter.Emit(ctx, entry); journalErr != nil {
		log.Printf("journal append failed capability=%s seq=%d error=%v", capability, seq, journalErr)
	}
}
