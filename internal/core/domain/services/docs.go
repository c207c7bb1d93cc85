// Package services provides domain services that work across aggregates of the
// ordering domain.
//
// The package includes:
//   - OrderPricer: turns requested food items and quantities into priced order lines
//     using the restaurant catalog
package services
