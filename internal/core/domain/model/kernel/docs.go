// Package kernel provides the shared value objects of the order domain.
//
// The package includes:
//   - UUID: identifier for orders and other aggregates, wrapping github.com/google/uuid
//   - Money: a non-negative decimal amount with an ISO 4217 currency code
//
// Both are immutable and must be created through their constructors; their zero
// values fail validation.
package kernel
