// Package session provides the RouteSession aggregate: one courier driving
// one ordered list of stops. The session owns the stop order and a cursor
// over it; advancing the cursor uses compare-and-set semantics so two devices
// sharing a session cannot both claim the same stop. Sessions close either by
// the courier (Finished) or administratively when stale (Expired).
package session
