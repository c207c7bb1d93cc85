// Package order provides the Order aggregate and its payment lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding line items, the computed total, the current
//     payment reference and the lifecycle status
//   - LineItem: one ordered food item with its quantity and unit price
//   - Status: the state machine driving payment
//
// Key business rules:
//   - An order has at least one line item and every quantity is positive
//   - The total equals the sum of line subtotals at creation and never changes
//   - Status follows CREATED -> PAYMENT_PENDING -> PAID, with PAYMENT_PENDING ->
//     PAYMENT_FAILED and PAYMENT_FAILED -> PAYMENT_PENDING on a fresh payment attempt
//   - A payment reference, once set, is only ever replaced by a new one and never cleared
package order
