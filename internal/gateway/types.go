package gateway

import "encoding/json"

// TravelerProfile is the predict request body. PreferredAmenities is the
// comma-joined wire encoding; the console keeps amenities as a typed set
// and encodes them only when building this value.
type TravelerProfile struct {
	Age                int     `json:"age"`
	LoyaltyTier        string  `json:"loyalty_tier"`
	AvgSpend           float64 `json:"avg_spend"`
	LastStayDaysAgo    int     `json:"last_stay_days_ago"`
	TravelPurpose      string  `json:"travel_purpose"`
	PreferredAmenities string  `json:"preferred_amenities"`
}

// PredictionResult is the predict response body.
type PredictionResult struct {
	SegmentLabel       string  `json:"segment_label"`
	SegmentID          int     `json:"segment_id"`
	BookingProbability float64 `json:"booking_probability"`
	EstimatedLTV       float64 `json:"estimated_ltv"`
}

// OfferRequest is the generate-offer request body.
type OfferRequest struct {
	SegmentLabel  string `json:"segment_label"`
	TravelPurpose string `json:"travel_purpose"`
}

// Offer is the generate-offer response body.
type Offer struct {
	OfferName string `json:"offer_name"`
	Copy      string `json:"copy"`
}

// EventPricingRequest is the event-pricing request body. Dates are
// ISO-8601 day strings (YYYY-MM-DD).
type EventPricingRequest struct {
	City         string  `json:"city"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	BaseRoomRate float64 `json:"base_room_rate"`
}

// EventPricingResult is the event-pricing response body. PeakEventDate is
// empty when the gateway reports no peak event.
type EventPricingResult struct {
	OriginalRate    float64 `json:"original_rate"`
	AdjustedRate    float64 `json:"adjusted_rate"`
	Multiplier      float64 `json:"multiplier"`
	Reason          string  `json:"reason"`
	EventsCount     int     `json:"events_count"`
	ConfidenceScore float64 `json:"confidence_score"`
	PeakEventDate   string  `json:"peak_event_date,omitempty"`
}

// Event is one local event returned by list-events.
type Event struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Date               string  `json:"date"`
	Venue              string  `json:"venue"`
	Category           string  `json:"category"`
	ExpectedAttendance int     `json:"expected_attendance"`
	ImpactLevel        string  `json:"impact_level"`
	DistanceKM         float64 `json:"distance_km"`
}

// DateRange bounds a list-events query window.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// EventsResult is the list-events response body.
type EventsResult struct {
	City        string    `json:"city"`
	DateRange   DateRange `json:"date_range"`
	Events      []Event   `json:"events"`
	TotalEvents int       `json:"total_events"`
}

// AudienceResult is the get-audience response body. Stats and members are
// opaque to the console: members are reused verbatim as campaign
// recipients, so both are carried as raw JSON.
type AudienceResult struct {
	Stats    json.RawMessage   `json:"stats"`
	Audience []json.RawMessage `json:"audience"`
}

// CampaignSendRequest is the send-campaign request body. Recipients are
// audience members passed through untouched.
type CampaignSendRequest struct {
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
	Recipients []json.RawMessage `json:"recipients"`
}
