// Package history builds the per-user activity feed.
//
// The feed is a read model: it is recomputed from listings, transport requests,
// ratings and notifications on every query and never stored.
package history
