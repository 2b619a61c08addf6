// Package listing models a carrier's published transport capacity: route, schedule,
// parcel limits, commercial terms and the active/complete/cancelled lifecycle.
package listing
