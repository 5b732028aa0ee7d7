package console

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/harriothq/experience-console/internal/gateway"
)

// The campaign workflow targets one fixed audience segment; it is
// independent of the profile and prediction state.
const (
	campaignSegmentLabel  = "Business Elite"
	campaignTravelPurpose = "Business"
)

// campaignSubjectFormat interpolates the offer name into the send
// subject line.
const campaignSubjectFormat = "Exclusive Offer: %s"

// LoadAudience fetches the campaign audience and its aggregate stats.
func (c *Console) LoadAudience(ctx context.Context) {
	c.mu.Lock()
	seq := c.audience.begin()
	c.mu.Unlock()

	c.spawn(ctx, CapabilityAudience, seq, func(ctx context.Context) (bool, error) {
		result, err := c.gw.Audience(ctx)
		return c.finishAudience(seq, result, err), err
	})
}

func (c *Console) finishAudience(seq uint64, result gateway.AudienceResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.audience.finish(seq, result, err)
}

// GenerateCampaignOffer generates marketing copy for the fixed campaign
// segment. The result is held separately from the prediction workflow's
// offer and is unaffected by profile edits.
func (c *Console) GenerateCampaignOffer(ctx context.Context) {
	c.mu.Lock()
	seq := c.campaignOffer.begin()
	c.mu.Unlock()

	req := gateway.OfferRequest{
		SegmentLabel:  campaignSegmentLabel,
		TravelPurpose: campaignTravelPurpose,
	}
	c.spawn(ctx, CapabilityCampaignOffer, seq, func(ctx context.Context) (bool, error) {
		offer, err := c.gw.GenerateOffer(ctx, req)
		return c.finishCampaignOffer(seq, offer, err), err
	})
}

func (c *Console) finishCampaignOffer(seq uint64, offer gateway.Offer, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.campaignOffer.finish(seq, offer, err)
}

// SendCampaign composes and delivers the campaign: subject interpolates
// the offer name, the body is the offer copy verbatim, recipients are
// the loaded audience members untouched. No-op unless a campaign offer
// is held and the audience is non-empty. No retry on failure.
func (c *Console) SendCampaign(ctx context.Context) {
	seq, req, ok := c.issueSend()
	if !ok {
		return
	}
	c.spawn(ctx, CapabilitySend, seq, func(ctx context.Context) (bool, error) {
		receipt, err := c.gw.SendCampaign(ctx, req)
		return c.finishSend(seq, receipt, err), err
	})
}

func (c *Console) issueSend() (uint64, gateway.CampaignSendRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.campaignOffer.hasValue || !c.audience.hasValue || len(c.audience.value.Audience) == 0 {
		return 0, gateway.CampaignSendRequest{}, false
	}
	req := gateway.CampaignSendRequest{
		Subject:    fmt.Sprintf(campaignSubjectFormat, c.campaignOffer.value.OfferName),
		Body:       c.campaignOffer.value.Copy,
		Recipients: slices.Clone(c.audience.value.Audience),
	}
	return c.send.begin(), req, true
}

func (c *Console) finishSend(seq uint64, receipt json.RawMessage, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send.finish(seq, receipt, err)
}
