package console

import (
	"slices"
	"testing"
)

func TestWithAmenityToggleOnIsIdempotent(t *testing.T) {
	t.Parallel()

	amenities := []Amenity{AmenitySpa}
	amenities = withAmenity(amenities, AmenityGolf, true)
	amenities = withAmenity(amenities, AmenityGolf, true)

	want := []Amenity{AmenitySpa, AmenityGolf}
	if !slices.Equal(amenities, want) {
		t.Fatalf("amenities = %v, want %v", amenities, want)
	}
}

func TestWithAmenityToggleOffAbsentIsNoop(t *testing.T) {
	t.Parallel()

	amenities := []Amenity{AmenitySpa}
	got := withAmenity(amenities, AmenityGym, false)
	if !slices.Equal(got, amenities) {
		t.Fatalf("amenities = %v, want %v", got, amenities)
	}
}

func TestWithAmenityRemovesFirstOccurrence(t *testing.T) {
	t.Parallel()

	amenities := []Amenity{AmenitySpa, AmenityGolf, AmenityDining}
	got := withAmenity(amenities, AmenityGolf, false)
	want := []Amenity{AmenitySpa, AmenityDining}
	if !slices.Equal(got, want) {
		t.Fatalf("amenities = %v, want %v", got, want)
	}
}

func TestEncodeAmenities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amenities []Amenity
		want      string
	}{
		{nil, ""},
		{[]Amenity{AmenitySpa}, "Spa"},
		{[]Amenity{AmenitySpa, AmenityGolf, AmenityGym}, "Spa,Golf,Gym"},
		{[]Amenity{AmenitySpa, "", AmenityGym}, "Spa,Gym"},
	}
	for _, tc := range tests {
		if got := encodeAmenities(tc.amenities); got != tc.want {
			t.Fatalf("encodeAmenities(%v) = %q, want %q", tc.amenities, got, tc.want)
		}
	}
}

func TestIsAmenitySelected(t *testing.T) {
	t.Parallel()

	profile := TravelerProfile{PreferredAmenities: []Amenity{AmenitySpa, AmenityLounge}}
	if !profile.IsAmenitySelected(AmenityLounge) {
		t.Fatal("Lounge should be selected")
	}
	if profile.IsAmenitySelected(AmenityGym) {
		t.Fatal("Gym should not be selected")
	}
}

func TestProfileWireEncoding(t *testing.T) {
	t.Parallel()

	profile := TravelerProfile{
		Age:                42,
		LoyaltyTier:        TierPlatinum,
		AvgSpend:           1200,
		LastStayDaysAgo:    7,
		TravelPurpose:      PurposeBusiness,
		PreferredAmenities: []Amenity{AmenityLounge, AmenityGym},
	}
	wire := profile.wire()
	if wire.LoyaltyTier != "Platinum" {
		t.Fatalf("LoyaltyTier = %q, want %q", wire.LoyaltyTier, "Platinum")
	}
	if wire.TravelPurpose != "Business" {
		t.Fatalf("TravelPurpose = %q, want %q", wire.TravelPurpose, "Business")
	}
	if wire.PreferredAmenities != "Lounge,Gym" {
		t.Fatalf("PreferredAmenities = %q, want %q", wire.PreferredAmenities, "Lounge,Gym")
	}
}
