// Package api provides the IEX REST API client used to locate HIST capture
// downloads and fetch quote snapshots.
//
// Endpoints:
//   - GET /hist?date=YYYYMMDD - download descriptors for one day's captures
//   - GET /hist - download descriptors for every published day
//   - GET /tops?symbols=... - TOPS quote snapshot
//   - GET /tops/last?symbols=... - last trade snapshot
//
// The public API is keyless; requests carry no credentials.
package api
