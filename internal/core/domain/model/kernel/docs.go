// Package kernel provides the shared value objects of the freight booking domain.
//
// The package includes:
//   - UUID: identifiers for listings, requests, trips and actors
//   - Actor and Role: the authenticated caller (carrier, shipper or admin)
//   - Coordinates and Place: named locations with optional WGS84 coordinates
//   - Dimensions: parcel and listing size limits
//
// All value objects are immutable, reject their zero value through
// guard.ConstructorGuard and report every invalid field at once via errors.Join.
package kernel
