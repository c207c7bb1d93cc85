// Package realtime distributes order updates to connected observers.
//
// The package includes:
//   - Hub: a single-topic, non-blocking broadcaster with a bounded queue per subscriber
//   - Registry: the set of currently connected observer channels, for diagnostics
//   - Publisher: adapts the Hub to the order publishing port
//
// Delivery is best effort. A subscriber whose queue is full misses the message, and a
// subscriber that joins late never sees earlier messages. Each subscriber receives
// messages in publish order.
package realtime
