// Package trip tracks the execution of a listing: its status, the position log
// fed by vehicle reports and the incident log.
package trip
