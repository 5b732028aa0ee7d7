package console

import (
	"encoding/json"

	"github.com/harriothq/experience-console/internal/gateway"
)

// CallView is the read-only projection of one capability's call state.
// Value is present only after at least one successful completion; a
// failed call keeps the prior value alongside its error.
type CallView[T any] struct {
	Phase Phase  `json:"phase"`
	Value *T     `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

func viewOf[T any](c call[T]) CallView[T] {
	view := CallView[T]{Phase: c.phase}
	if view.Phase == "" {
		view.Phase = PhaseIdle
	}
	if c.hasValue {
		value := c.value
		view.Value = &value
	}
	if c.err != nil {
		view.Error = c.err.Error()
	}
	return view
}

// Snapshot is a consistent read-only copy of the whole console state
// tree, including the derived values, taken under one lock acquisition.
type Snapshot struct {
	Profile     TravelerProfile  `json:"profile"`
	PricingForm EventPricingForm `json:"pricing_form"`

	Prediction    CallView[gateway.PredictionResult]   `json:"prediction"`
	Offer         CallView[gateway.Offer]              `json:"offer"`
	Pricing       CallView[gateway.EventPricingResult] `json:"pricing"`
	Events        CallView[gateway.EventsResult]       `json:"events"`
	Audience      CallView[gateway.AudienceResult]     `json:"audience"`
	CampaignOffer CallView[gateway.Offer]              `json:"campaign_offer"`
	Send          CallView[json.RawMessage]            `json:"send"`

	LTVMultiplier      float64 `json:"ltv_multiplier"`
	PriceChangePercent float64 `json:"price_change_percent"`
}

// Snapshot copies the current state tree for the presentation layer.
func (c *Console) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	profile := c.profile
	profile.PreferredAmenities = append([]Amenity(nil), c.profile.PreferredAmenities...)

	return Snapshot{
		Profile:            profile,
		PricingForm:        c.pricingForm,
		Prediction:         viewOf(c.prediction),
		Offer:              viewOf(c.offer),
		Pricing:            viewOf(c.pricing),
		Events:             viewOf(c.events),
		Audience:           viewOf(c.audience),
		CampaignOffer:      viewOf(c.campaignOffer),
		Send:               viewOf(c.send),
		LTVMultiplier:      ltvMultiplier(c.prediction),
		PriceChangePercent: priceChangePercent(c.pricing),
	}
}
