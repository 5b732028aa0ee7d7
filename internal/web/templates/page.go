// Package templates renders the console shell page.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/harriothq/experience-console/internal/console"
)

// ConsolePage renders the full console shell for the given view.
func ConsolePage(view PageView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if err := writeProfileSection(w, view); err != nil {
			return err
		}
		if err := writePredictionSection(w, view); err != nil {
			return err
		}
		if err := writePricingSection(w, view); err != nil {
			return err
		}
		if err := writeCampaignSection(w, view); err != nil {
			return err
		}
		if err := writeBadges(w, view.Badges); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Experience Console</title>
</head>
<body>
<header><h1>Experience Console</h1></header>
<main>
`

const pageFoot = `</main>
</body>
</html>
`

func writeProfileSection(w io.Writer, view PageView) error {
	_, err := fmt.Fprintf(w, `<section id="profile">
<h2>Traveler Profile</h2>
<dl>
<dt>Age</dt><dd>%d</dd>
<dt>Loyalty Tier</dt><dd>%s</dd>
<dt>Avg Spend</dt><dd>$%.2f</dd>
<dt>Last Stay</dt><dd>%d days ago</dd>
<dt>Travel Purpose</dt><dd>%s</dd>
</dl>
`,
		view.Profile.Age,
		templ.EscapeString(string(view.Profile.LoyaltyTier)),
		view.Profile.AvgSpend,
		view.Profile.LastStayDaysAgo,
		templ.EscapeString(string(view.Profile.TravelPurpose)),
	)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, `<ul class="amenities">`); err != nil {
		return err
	}
	for _, amenity := range console.Amenities {
		class := "amenity"
		if view.Profile.IsAmenitySelected(amenity) {
			class = "amenity selected"
		}
		if _, err := fmt.Fprintf(w, `<li class=%q>%s</li>`, class, templ.EscapeString(string(amenity))); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "</ul>\n</section>\n")
	return err
}

func writePredictionSection(w io.Writer, view PageView) error {
	if _, err := io.WriteString(w, "<section id=\"prediction\">\n<h2>Prediction</h2>\n"); err != nil {
		return err
	}
	if view.SegmentLabel != "" {
		_, err := fmt.Fprintf(w, `<p class="segment">%s</p>
<p class="probability">Booking probability %s</p>
<p class="ltv">Estimated LTV %s</p>
`,
			templ.EscapeString(view.SegmentLabel),
			templ.EscapeString(view.BookingProbability),
			templ.EscapeString(view.EstimatedLTV),
		)
		if err != nil {
			return err
		}
	}
	if view.OfferName != "" {
		_, err := fmt.Fprintf(w, `<div class="offer"><h3>%s</h3><p>%s</p></div>
`,
			templ.EscapeString(view.OfferName),
			templ.EscapeString(view.OfferCopy),
		)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</section>\n")
	return err
}

func writePricingSection(w io.Writer, view PageView) error {
	_, err := fmt.Fprintf(w, `<section id="pricing">
<h2>Event Pricing</h2>
<p class="stay">%s, %s to %s, base rate $%.2f</p>
`,
		templ.EscapeString(view.PricingForm.City),
		templ.EscapeString(view.PricingForm.CheckInDate),
		templ.EscapeString(view.PricingForm.CheckOutDate),
		view.PricingForm.BaseRoomRate,
	)
	if err != nil {
		return err
	}
	if view.AdjustedRate != "" {
		_, err := fmt.Fprintf(w, `<p class="adjusted">Adjusted rate %s (%s)</p>
<p class="reason">%s</p>
`,
			templ.EscapeString(view.AdjustedRate),
			templ.EscapeString(view.PriceChange),
			templ.EscapeString(view.PricingReason),
		)
		if err != nil {
			return err
		}
	}
	if len(view.Events) > 0 {
		if _, err := io.WriteString(w, "<ul class=\"events\">\n"); err != nil {
			return err
		}
		for _, event := range view.Events {
			_, err := fmt.Fprintf(w, `<li><span class="impact" style="color: %s">%s</span> %s at %s on %s, %s expected</li>
`,
				templ.EscapeString(event.ImpactColor),
				templ.EscapeString(event.ImpactLevel),
				templ.EscapeString(event.Name),
				templ.EscapeString(event.Venue),
				templ.EscapeString(event.Date),
				templ.EscapeString(event.Attendance),
			)
			if err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n"); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "</section>\n")
	return err
}

func writeCampaignSection(w io.Writer, view PageView) error {
	if _, err := io.WriteString(w, "<section id=\"campaign\">\n<h2>Campaign</h2>\n"); err != nil {
		return err
	}
	if view.AudienceSize != "" {
		if _, err := fmt.Fprintf(w, `<p class="audience">%s recipients loaded</p>
`, templ.EscapeString(view.AudienceSize)); err != nil {
			return err
		}
	}
	if view.CampaignOfferName != "" {
		_, err := fmt.Fprintf(w, `<div class="offer"><h3>%s</h3><p>%s</p></div>
`,
			templ.EscapeString(view.CampaignOfferName),
			templ.EscapeString(view.CampaignOfferCopy),
		)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</section>\n")
	return err
}

func writeBadges(w io.Writer, badges []CallBadge) error {
	if _, err := io.WriteString(w, "<footer><ul class=\"calls\">\n"); err != nil {
		return err
	}
	for _, b := range badges {
		if b.Error != "" {
			if _, err := fmt.Fprintf(w, `<li>%s: %s (%s)</li>
`, templ.EscapeString(b.Label), templ.EscapeString(b.Phase), templ.EscapeString(b.Error)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, `<li>%s: %s</li>
`, templ.EscapeString(b.Label), templ.EscapeString(b.Phase)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</ul></footer>\n")
	return err
}
