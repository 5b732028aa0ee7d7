package console

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/harriothq/experience-console/internal/gateway"
)

// fakeGateway records calls and answers from configurable functions.
// Unset functions return zero values.
type fakeGateway struct {
	mu sync.Mutex

	predictFn  func(gateway.TravelerProfile) (gateway.PredictionResult, error)
	offerFn    func(gateway.OfferRequest) (gateway.Offer, error)
	priceFn    func(gateway.EventPricingRequest) (gateway.EventPricingResult, error)
	eventsFn   func(city, date string) (gateway.EventsResult, error)
	audienceFn func() (gateway.AudienceResult, error)
	sendFn     func(gateway.CampaignSendRequest) (json.RawMessage, error)

	predictCalls  []gateway.TravelerProfile
	offerCalls    []gateway.OfferRequest
	priceCalls    []gateway.EventPricingRequest
	eventsCities  []string
	eventsDates   []string
	audienceCalls int
	sendCalls     []gateway.CampaignSendRequest
}

func (f *fakeGateway) Predict(_ context.Context, profile gateway.TravelerProfile) (gateway.PredictionResult, error) {
	f.mu.Lock()
	f.predictCalls = append(f.predictCalls, profile)
	fn := f.predictFn
	f.mu.Unlock()
	if fn == nil {
		return gateway.PredictionResult{}, nil
	}
	return fn(profile)
}

func (f *fakeGateway) GenerateOffer(_ context.Context, req gateway.OfferRequest) (gateway.Offer, error) {
	f.mu.Lock()
	f.offerCalls = append(f.offerCalls, req)
	fn := f.offerFn
	f.mu.Unlock()
	if fn == nil {
		return gateway.Offer{}, nil
	}
	return fn(req)
}

func (f *fakeGateway) PriceEvent(_ context.Context, req gateway.EventPricingRequest) (gateway.EventPricingResult, error) {
	f.mu.Lock()
	f.priceCalls = append(f.priceCalls, req)
	fn := f.priceFn
	f.mu.Unlock()
	if fn == nil {
		return gateway.EventPricingResult{}, nil
	}
	return fn(req)
}

func (f *fakeGateway) ListEvents(_ context.Context, city, date string) (gateway.EventsResult, error) {
	f.mu.Lock()
	f.eventsCities = append(f.eventsCities, city)
	f.eventsDates = append(f.eventsDates, date)
	fn := f.eventsFn
	f.mu.Unlock()
	if fn == nil {
		return gateway.EventsResult{}, nil
	}
	return fn(city, date)
}

func (f *fakeGateway) Audience(_ context.Context) (gateway.AudienceResult, error) {
	f.mu.Lock()
	f.audienceCalls++
	fn := f.audienceFn
	f.mu.Unlock()
	if fn == nil {
		return gateway.AudienceResult{}, nil
	}
	return fn()
}

func (f *fakeGateway) SendCampaign(_ context.Context, req gateway.CampaignSendRequest) (json.RawMessage, error) {
	f.mu.Lock()
	f.sendCalls = append(f.sendCalls, req)
	fn := f.sendFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(req)
}

func (f *fakeGateway) offerCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.offerCalls)
}

func (f *fakeGateway) sendCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sendCalls)
}

func newTestConsole(gw Gateway) *Console {
	return New(gw, nil, Config{
		Now: func() time.Time {
			return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		},
	})
}
