package console

import (
	"slices"
	"strings"

	"github.com/harriothq/experience-console/internal/gateway"
)

// LoyaltyTier is a loyalty program tier. Values outside the known set
// are accepted and forwarded as-is; the gateway owns semantic validation.
type LoyaltyTier string

const (
	TierMember     LoyaltyTier = "Member"
	TierSilver     LoyaltyTier = "Silver"
	TierGold       LoyaltyTier = "Gold"
	TierPlatinum   LoyaltyTier = "Platinum"
	TierTitanium   LoyaltyTier = "Titanium"
	TierAmbassador LoyaltyTier = "Ambassador"
)

// TravelPurpose is the trip intent used by segmentation and offer copy.
type TravelPurpose string

const (
	PurposeLeisure  TravelPurpose = "Leisure"
	PurposeBusiness TravelPurpose = "Business"
)

// Amenity is one hotel amenity a traveler can prefer.
type Amenity string

const (
	AmenitySpa    Amenity = "Spa"
	AmenityGolf   Amenity = "Golf"
	AmenityDining Amenity = "Dining"
	AmenityLounge Amenity = "Lounge"
	AmenityGym    Amenity = "Gym"
)

// Amenities lists the selectable amenities in display order.
var Amenities = []Amenity{AmenitySpa, AmenityGolf, AmenityDining, AmenityLounge, AmenityGym}

// TravelerProfile is the editable synthetic traveler profile. Amenities
// are an ordered set; the comma-joined wire form exists only in
// gateway.TravelerProfile.
type TravelerProfile struct {
	Age                int           `json:"age"`
	LoyaltyTier        LoyaltyTier   `json:"loyalty_tier"`
	AvgSpend           float64       `json:"avg_spend"`
	LastStayDaysAgo    int           `json:"last_stay_days_ago"`
	TravelPurpose      TravelPurpose `json:"travel_purpose"`
	PreferredAmenities []Amenity     `json:"preferred_amenities"`
}

// ProfileEdit carries the scalar profile fields the operator can edit.
// Amenity membership changes go through ToggleAmenity instead.
type ProfileEdit struct {
	Age             int           `json:"age"`
	LoyaltyTier     LoyaltyTier   `json:"loyalty_tier"`
	AvgSpend        float64       `json:"avg_spend"`
	LastStayDaysAgo int           `json:"last_stay_days_ago"`
	TravelPurpose   TravelPurpose `json:"travel_purpose"`
}

// IsAmenitySelected reports whether the amenity is in the preferred set.
func (p TravelerProfile) IsAmenitySelected(amenity Amenity) bool {
	return slices.Contains(p.PreferredAmenities, amenity)
}

// withAmenity returns the amenity sequence after a toggle: selecting
// appends when absent, deselecting removes the first occurrence. Both
// directions are idempotent.
func withAmenity(amenities []Amenity, amenity Amenity, selected bool) []Amenity {
	idx := slices.Index(amenities, amenity)
	if selected {
		if idx >= 0 {
			return amenities
		}
		return append(slices.Clone(amenities), amenity)
	}
	if idx < 0 {
		return amenities
	}
	return slices.Delete(slices.Clone(amenities), idx, idx+1)
}

// encodeAmenities joins the amenity set into the gateway's comma-joined
// wire encoding with no empty entries.
func encodeAmenities(amenities []Amenity) string {
	parts := make([]string, 0, len(amenities))
	for _, amenity := range amenities {
		if trimmed := strings.TrimSpace(string(amenity)); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ",")
}

// wire converts the profile to its gateway request form.
func (p TravelerProfile) wire() gateway.TravelerProfile {
	return gateway.TravelerProfile{
		Age:                p.Age,
		LoyaltyTier:        string(p.LoyaltyTier),
		AvgSpend:           p.AvgSpend,
		LastStayDaysAgo:    p.LastStayDaysAgo,
		TravelPurpose:      string(p.TravelPurpose),
		PreferredAmenities: encodeAmenities(p.PreferredAmenities),
	}
}
