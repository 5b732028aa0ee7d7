package console

import (
	"context"

	"github.com/harriothq/experience-console/internal/gateway"
)

// Impact level display tones. Unrecognized levels fall through to the
// neutral tone; this must never be an error.
const (
	ImpactColorCritical = "#ff4757"
	ImpactColorHigh     = "#ff6b35"
	ImpactColorMedium   = "#ffa502"
	ImpactColorLow      = "#2ed573"
	ImpactColorNeutral  = "#747d8c"
)

// CalculatePricing snapshots the pricing form and requests an adjusted
// room rate. Fire-and-forget, one call per edit.
func (c *Console) CalculatePricing(ctx context.Context) {
	seq, req := c.issuePricing()
	c.spawn(ctx, CapabilityPricing, seq, func(ctx context.Context) (bool, error) {
		result, err := c.gw.PriceEvent(ctx, req)
		return c.finishPricing(seq, result, err), err
	})
}

func (c *Console) issuePricing() (uint64, gateway.EventPricingRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	req := gateway.EventPricingRequest{
		City:         c.pricingForm.City,
		CheckInDate:  c.pricingForm.CheckInDate,
		CheckOutDate: c.pricingForm.CheckOutDate,
		BaseRoomRate: c.pricingForm.BaseRoomRate,
	}
	return c.pricing.begin(), req
}

func (c *Console) finishPricing(seq uint64, result gateway.EventPricingResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pricing.finish(seq, result, err)
}

// LoadEvents requests the city events listing for the form's city and
// check-in date. Unlike pricing, this does not fire on form edits; it
// runs at startup and on explicit operator request.
func (c *Console) LoadEvents(ctx context.Context) {
	seq, city, date := c.issueEvents()
	c.spawn(ctx, CapabilityEvents, seq, func(ctx context.Context) (bool, error) {
		result, err := c.gw.ListEvents(ctx, city, date)
		return c.finishEvents(seq, result, err), err
	})
}

func (c *Console) issueEvents() (seq uint64, city, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events.begin(), c.pricingForm.City, c.pricingForm.CheckInDate
}

func (c *Console) finishEvents(seq uint64, result gateway.EventsResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events.finish(seq, result, err)
}

// PriceChangePercent derives the rate change from the held pricing
// result: (adjusted - original) / original * 100. Returns 0 when no
// result is held or the gateway reported a zero original rate.
func (c *Console) PriceChangePercent() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return priceChangePercent(c.pricing)
}

func priceChangePercent(pricing call[gateway.EventPricingResult]) float64 {
	if !pricing.hasValue {
		return 0
	}
	original := pricing.value.OriginalRate
	if original == 0 {
		return 0
	}
	return (pricing.value.AdjustedRate - original) / original * 100
}

// ImpactLevelColor maps an event impact level to its display tone. Any
// level outside the four recognized values maps to the neutral tone.
func ImpactLevelColor(level string) string {
	switch level {
	case "critical":
		return ImpactColorCritical
	case "high":
		return ImpactColorHigh
	case "medium":
		return ImpactColorMedium
	case "low":
		return ImpactColorLow
	default:
		return ImpactColorNeutral
	}
}
