package discount

import "fmt"

// Stable shopper-facing reason strings. The storefront displays these
// directly, so the wording is part of the contract; tests assert on it.
const (
	MsgCouponNotValid       = "Coupon not valid."
	MsgDiscountOutOfDate    = "Discount is out of date."
	MsgDiscountLimitReached = "Discount use has reached its limit."
	MsgRegisteredUsersOnly  = "Discount is limited to registered users and you are not logged in."
	MsgCouponLimitReached   = "Coupon has reached its use limit."
)

// MsgPerUserLimit is the reason for a registered customer who exhausted a
// per-user limit.
func MsgPerUserLimit(limit int64) string {
	return fmt.Sprintf("This coupon is for registered users and limited to %d uses.", limit)
}

// MsgPerEmailLimit is the reason for an email address that exhausted a
// per-email limit.
func MsgPerEmailLimit(limit int64) string {
	return fmt.Sprintf("This coupon is limited to %d uses.", limit)
}
