// Package model defines the typed market-data messages decoded from IEX
// HIST capture files.
//
// Conventions:
//   - Prices: integer ten-thousandths of a dollar (PriceInt 523450 = $52.3450).
//     Every price-bearing message exposes the dollar value as a method that
//     divides by 10,000.
//   - Timestamps: int64 nanoseconds since Unix epoch, UTC. Time() converts.
//   - Symbols: fixed-width 8-byte fields on the wire, stored trimmed.
//
// The set of message kinds is closed by the wire format: TOPS 1.5/1.6 and
// DEEP 1.0 together define exactly thirteen kinds.
package model
