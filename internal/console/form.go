package console

import "context"

// EventPricingForm is the editable event-pricing request. Dates are
// ISO-8601 day strings. No semantic validation happens here; the
// gateway owns date-range and rate checks.
type EventPricingForm struct {
	City         string  `json:"city"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	BaseRoomRate float64 `json:"base_room_rate"`
}

// Profile returns a copy of the current traveler profile.
func (c *Console) Profile() TravelerProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	profile := c.profile
	profile.PreferredAmenities = append([]Amenity(nil), c.profile.PreferredAmenities...)
	return profile
}

// PricingForm returns a copy of the current event-pricing form.
func (c *Console) PricingForm() EventPricingForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pricingForm
}

// EditProfile replaces the scalar profile fields and fires a new
// prediction. The held offer is discarded immediately: copy generated
// under the previous segment must not outlive the edit.
func (c *Console) EditProfile(ctx context.Context, edit ProfileEdit) {
	c.mu.Lock()
	c.profile.Age = edit.Age
	c.profile.LoyaltyTier = edit.LoyaltyTier
	c.profile.AvgSpend = edit.AvgSpend
	c.profile.LastStayDaysAgo = edit.LastStayDaysAgo
	c.profile.TravelPurpose = edit.TravelPurpose
	c.offer.invalidate()
	c.mu.Unlock()

	c.RequestPrediction(ctx)
}

// ToggleAmenity adds or removes one preferred amenity and fires a new
// prediction. Selecting an already-selected amenity (or deselecting an
// absent one) leaves the set unchanged but still re-predicts, matching
// the one-call-per-edit trigger policy.
func (c *Console) ToggleAmenity(ctx context.Context, amenity Amenity, selected bool) {
	c.mu.Lock()
	c.profile.PreferredAmenities = withAmenity(c.profile.PreferredAmenities, amenity, selected)
	c.offer.invalidate()
	c.mu.Unlock()

	c.RequestPrediction(ctx)
}

// EditPricingForm replaces the event-pricing form and fires a new
// pricing calculation. The city events listing is not refreshed
// automatically; LoadEvents is an explicit operation.
func (c *Console) EditPricingForm(ctx context.Context, form EventPricingForm) {
	c.mu.Lock()
	c.pricingForm = form
	c.mu.Unlock()

	c.CalculatePricing(ctx)
}
