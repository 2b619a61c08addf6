// Package services provides domain services that span more than one aggregate
// of the booking engine.
//
// The package includes:
//   - CapacityValidator: checks a parcel's weight and dimensions against a listing's maxima
//   - RequestPlacer: runs the listing-side checks and builds a pending transport request
package services
