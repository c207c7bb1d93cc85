// Package payment models payment intents, the receipts clients present for them
// and the settlement reported back after verification.
package payment
