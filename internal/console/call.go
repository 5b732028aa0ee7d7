package console

// Phase is the tagged state of one gateway capability. It replaces a
// bare loading boolean so "never called", "in flight", and "failed" stay
// distinguishable to the presentation layer.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// Capability names one asynchronous gateway operation a workflow owns.
type Capability string

const (
	CapabilityPredict       Capability = "predict"
	CapabilityOffer         Capability = "generate-offer"
	CapabilityPricing       Capability = "price-event"
	CapabilityEvents        Capability = "list-events"
	CapabilityAudience      Capability = "get-audience"
	CapabilityCampaignOffer Capability = "campaign-offer"
	CapabilitySend          Capability = "send-campaign"
)

// call tracks one capability: its phase, the most recent successfully
// applied value, and the sequence counters that order completions.
// Access is guarded by the owning Console's mutex.
type call[T any] struct {
	phase    Phase
	value    T
	hasValue bool
	err      error

	issued  uint64 // highest sequence handed out
	applied uint64 // highest sequence whose completion was accepted
}

// begin issues a new sequence number and marks the capability pending.
func (c *call[T]) begin() uint64 {
	c.issued++
	c.phase = PhasePending
	return c.issued
}

// finish applies a completion for seq. Completions at or below the
// already-applied watermark are discarded, so a stale response can never
// overwrite state produced by a newer call. A failure keeps the prior
// value untouched. The phase settles only when no newer call is still
// outstanding. Reports whether the completion was accepted.
func (c *call[T]) finish(seq uint64, value T, err error) bool {
	if seq <= c.applied {
		return false
	}
	c.applied = seq

	if err == nil {
		c.value = value
		c.hasValue = true
	}

	if seq < c.issued {
		// A newer request is still in flight; stay pending.
		c.phase = PhasePending
		return true
	}
	if err != nil {
		c.phase = PhaseFailed
		c.err = err
	} else {
		c.phase = PhaseSucceeded
		c.err = nil
	}
	return true
}

// invalidate drops the held value and returns the capability to idle.
// The applied watermark is raised to the issued watermark so any
// completion still in flight is discarded on arrival.
func (c *call[T]) invalidate() {
	var zero T
	c.value = zero
	c.hasValue = false
	c.err = nil
	c.phase = PhaseIdle
	c.applied = c.issued
}
