// Package request models a shipper's transport request against a listing and its
// pending → accepted → in_progress → delivered state machine.
package request
