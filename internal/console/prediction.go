package console

import (
	"context"

	"github.com/harriothq/experience-console/internal/gateway"
)

// ltvMultiplierThreshold is the estimated-LTV cutoff above which the
// high-value multiplier applies.
const ltvMultiplierThreshold = 5000

// RequestPrediction snapshots the current profile and requests a segment
// prediction. Fire-and-forget; the completion is applied in arrival
// order with stale responses discarded.
func (c *Console) RequestPrediction(ctx context.Context) {
	seq, profile := c.issuePrediction()
	c.spawn(ctx, CapabilityPredict, seq, func(ctx context.Context) (bool, error) {
		result, err := c.gw.Predict(ctx, profile)
		return c.finishPrediction(seq, result, err), err
	})
}

func (c *Console) issuePrediction() (uint64, gateway.TravelerProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prediction.begin(), c.profile.wire()
}

func (c *Console) finishPrediction(seq uint64, result gateway.PredictionResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	applied := c.prediction.finish(seq, result, err)
	if applied && err == nil {
		// An offer generated under the previous segment is stale.
		c.offer.invalidate()
	}
	return applied
}

// RequestOffer generates marketing copy for the predicted segment and
// the current travel purpose. No-op when no prediction is held.
func (c *Console) RequestOffer(ctx context.Context) {
	seq, req, ok := c.issueOffer()
	if !ok {
		return
	}
	c.spawn(ctx, CapabilityOffer, seq, func(ctx context.Context) (bool, error) {
		offer, err := c.gw.GenerateOffer(ctx, req)
		return c.finishOffer(seq, offer, err), err
	})
}

func (c *Console) issueOffer() (uint64, gateway.OfferRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.prediction.hasValue {
		return 0, gateway.OfferRequest{}, false
	}
	req := gateway.OfferRequest{
		SegmentLabel:  c.prediction.value.SegmentLabel,
		TravelPurpose: string(c.profile.TravelPurpose),
	}
	return c.offer.begin(), req, true
}

func (c *Console) finishOffer(seq uint64, offer gateway.Offer, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offer.finish(seq, offer, err)
}

// LTVMultiplier derives the display multiplier from the held prediction:
// 1.5 above the high-value threshold, otherwise 1. Recomputed on every
// read, never stored.
func (c *Console) LTVMultiplier() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ltvMultiplier(c.prediction)
}

func ltvMultiplier(prediction call[gateway.PredictionResult]) float64 {
	if prediction.hasValue && prediction.value.EstimatedLTV > ltvMultiplierThreshold {
		return 1.5
	}
	return 1
}
