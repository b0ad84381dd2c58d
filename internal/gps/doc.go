// Package gps aggregates decoded NMEA sentences from a NEO-6M class
// receiver into a single Fix record.
//
// The Aggregator is the synchronous core: feed it raw lines, read back the
// merged fix. Service wraps it with serial acquisition on a background
// goroutine for long-running use. Serial, geocoding and publication are
// collaborators; the aggregation itself never performs I/O.
package gps
