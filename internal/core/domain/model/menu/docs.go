// Package menu holds the restaurant food item catalog used to price orders.
package menu
