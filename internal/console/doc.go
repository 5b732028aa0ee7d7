// Package console holds the operator console state tree and the three
// workflows that drive it against the experience engine gateway:
// prediction (profile -> segment -> offer), event pricing (rate
// adjustment and city events), and campaign (audience -> offer -> send).
//
// All state lives in a single Console guarded by one mutex. Workflow
// operations are fire-and-forget: they mark the capability pending,
// issue the gateway call on a goroutine, and return; completions are
// applied under the same mutex. Each capability carries issue and apply
// sequence counters so an out-of-order completion can never clobber
// state written by a newer call.
package console
