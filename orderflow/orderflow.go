// Package orderflow describes the order status vocabulary. The API does not
// enforce a transition table — any authorized actor may set any status — so
// this package only answers "is this a known status" and documents the
// intended happy path for the info endpoint.
package orderflow

import "github.com/gurmukh6912/saskfood-connect/models"

// happyPath is the intended progression of a fulfilled order
var happyPath = []models.OrderStatus{
	models.StatusPending,
	models.StatusAccepted,
	models.StatusPreparing,
	models.StatusPrepared,
	models.StatusReadyForPickup,
	models.StatusDriverAssigned,
	models.StatusDriverPickup,
	models.StatusDelivering,
	models.StatusDelivered,
}

// terminal statuses reachable from most states
var terminal = []models.OrderStatus{
	models.StatusCancelled,
	models.StatusRefunded,
}

var known = func() map[models.OrderStatus]bool {
	m := make(map[models.OrderStatus]bool)
	for _, s := range happyPath {
		m[s] = true
	}
	for _, s := range terminal {
		m[s] = true
	}
	return m
}()

// IsValidStatus reports whether s is part of the order status vocabulary
func IsValidStatus(s models.OrderStatus) bool {
	return known[s]
}

// HappyPath returns the intended fulfillment sequence
func HappyPath() []models.OrderStatus {
	out := make([]models.OrderStatus, len(happyPath))
	copy(out, happyPath)
	return out
}

// Terminal returns the cancellation statuses
func Terminal() []models.OrderStatus {
	out := make([]models.OrderStatus, len(terminal))
	copy(out, terminal)
	return out
}
