// Package authz holds the per-request ownership checks. Every predicate takes
// the acting user explicitly — there is no process-wide session state.
package authz

import (
	"github.com/gurmukh6912/saskfood-connect/models"
)

// Actor is the authenticated caller, as extracted from the request token.
type Actor struct {
	UserID string
	Role   models.UserRole
}

// CanManageMenuItem allows menu mutations only to the owning restaurant's user.
func CanManageMenuItem(actor Actor, restaurant *models.Restaurant) bool {
	if restaurant == nil {
		return false
	}
	return actor.Role == models.RoleRestaurantOwner && actor.UserID == restaurant.UserID
}

// CanAccessOrder allows the order's customer, the restaurant owner, or the
// assigned driver (only once a delivery exists) to read or update the order.
// The order must be loaded with Customer, Restaurant and Delivery.Driver.
func CanAccessOrder(actor Actor, order *models.Order) bool {
	if order == nil {
		return false
	}
	if order.Customer != nil && order.Customer.UserID == actor.UserID {
		return true
	}
	if order.Restaurant != nil && order.Restaurant.UserID == actor.UserID {
		return true
	}
	if order.Delivery != nil && order.Delivery.Driver != nil &&
		order.Delivery.Driver.UserID == actor.UserID {
		return true
	}
	return false
}

// CanDecideBid allows the bid's target restaurant owner (via the order) or the
// bidding driver to accept or reject. The bid must be loaded with
// Order.Restaurant and Driver.
func CanDecideBid(actor Actor, bid *models.DeliveryBid) bool {
	if bid == nil {
		return false
	}
	if actor.Role == models.RoleRestaurantOwner &&
		bid.Order != nil && bid.Order.Restaurant != nil &&
		bid.Order.Restaurant.UserID == actor.UserID {
		return true
	}
	if actor.Role == models.RoleDriver &&
		bid.Driver != nil && bid.Driver.UserID == actor.UserID {
		return true
	}
	return false
}

// CanEditRestaurant allows a restaurant profile update only by its owning user.
func CanEditRestaurant(actor Actor, restaurant *models.Restaurant) bool {
	if restaurant == nil {
		return false
	}
	return actor.UserID == restaurant.UserID
}

// CanEditDriver allows a driver profile update only by its owning user.
func CanEditDriver(actor Actor, d *models.Driver) bool {
	if d == nil {
		return false
	}
	return actor.UserID == d.UserID
}
