// File console.go defines view data for the console shell page.
package templates

import (
	"fmt"
	"strings"

	"github.com/harriothq/experience-console/internal/console"
)

// CallBadge holds the display state for one asynchronous capability.
type CallBadge struct {
	// Label is the human-readable capability name.
	Label string
	// Phase is the display label for the call phase.
	Phase string
	// Error is the display error text, empty when the call is healthy.
	Error string
}

// EventRow holds formatted event data for the pricing section.
type EventRow struct {
	// Name is the display name of the event.
	Name string
	// Date is the event day string.
	Date string
	// Venue is the display venue name.
	Venue string
	// Attendance is the formatted expected attendance.
	Attendance string
	// ImpactLevel is the raw impact level label.
	ImpactLevel string
	// ImpactColor is the display tone for the impact level.
	ImpactColor string
}

// PageView holds formatted console state for the shell page.
type PageView struct {
	// Profile is the current traveler profile.
	Profile console.TravelerProfile
	// PricingForm is the current event-pricing form.
	PricingForm console.EventPricingForm
	// SegmentLabel is the predicted segment, empty before the first
	// prediction completes.
	SegmentLabel string
	// BookingProbability is the formatted booking probability.
	BookingProbability string
	// EstimatedLTV is the formatted lifetime value after the multiplier.
	EstimatedLTV string
	// OfferName is the generated offer headline.
	OfferName string
	// OfferCopy is the generated offer body text.
	OfferCopy string
	// AdjustedRate is the formatted event-adjusted room rate.
	AdjustedRate string
	// PriceChange is the formatted rate change percentage.
	PriceChange string
	// PricingReason is the gateway's pricing explanation.
	PricingReason string
	// Events lists the city events near the stay window.
	Events []EventRow
	// CampaignOfferName is the campaign offer headline.
	CampaignOfferName string
	// CampaignOfferCopy is the campaign offer body text.
	CampaignOfferCopy string
	// AudienceSize is the formatted campaign audience member count.
	AudienceSize string
	// Badges lists the per-capability call states in display order.
	Badges []CallBadge
}

// NewPageView formats a console snapshot for display.
func NewPageView(snap console.Snapshot) PageView {
	view := PageView{
		Profile:     snap.Profile,
		PricingForm: snap.PricingForm,
	}

	if prediction := snap.Prediction.Value; prediction != nil {
		view.SegmentLabel = prediction.SegmentLabel
		view.BookingProbability = fmt.Sprintf("%.1f%%", prediction.BookingProbability*100)
		view.EstimatedLTV = fmt.Sprintf("$%.2f", prediction.EstimatedLTV*snap.LTVMultiplier)
	}
	if offer := snap.Offer.Value; offer != nil {
		view.OfferName = offer.OfferName
		view.OfferCopy = offer.Copy
	}
	if pricing := snap.Pricing.Value; pricing != nil {
		view.AdjustedRate = fmt.Sprintf("$%.2f", pricing.AdjustedRate)
		view.PriceChange = fmt.Sprintf("%+.1f%%", snap.PriceChangePercent)
		view.PricingReason = pricing.Reason
	}
	if events := snap.Events.Value; events != nil {
		view.Events = make([]EventRow, 0, len(events.Events))
		for _, event := range events.Events {
			view.Events = append(view.Events, EventRow{
				Name:        event.Name,
				Date:        event.Date,
				Venue:       event.Venue,
				Attendance:  fmt.Sprintf("%d", event.ExpectedAttendance),
				ImpactLevel: event.ImpactLevel,
				ImpactColor: console.ImpactLevelColor(event.ImpactLevel),
			})
		}
	}
	if campaignOffer := snap.CampaignOffer.Value; campaignOffer != nil {
		view.CampaignOfferName = campaignOffer.OfferName
		view.CampaignOfferCopy = campaignOffer.Copy
	}
	if audience := snap.Audience.Value; audience != nil {
		view.AudienceSize = fmt.Sprintf("%d", len(audience.Audience))
	}

	view.Badges = []CallBadge{
		badge("Prediction", snap.Prediction.Phase, snap.Prediction.Error),
		badge("Offer", snap.Offer.Phase, snap.Offer.Error),
		badge("Pricing", snap.Pricing.Phase, snap.Pricing.Error),
		badge("Events", snap.Events.Phase, snap.Events.Error),
		badge("Audience", snap.Audience.Phase, snap.Audience.Error),
		badge("Campaign Offer", snap.CampaignOffer.Phase, snap.CampaignOffer.Error),
		badge("Send", snap.Send.Phase, snap.Send.Error),
	}
	return view
}

func badge(label string, phase console.Phase, errText string) CallBadge {
	display := string(phase)
	if display == "" {
		display = string(console.PhaseIdle)
	}
	return CallBadge{
		Label: label,
		Phase: strings.ToUpper(display[:1]) + display[1:],
		Error: errText,
	}
}
