package controllers

import (
	"context"
	"net/http"

	"github.com/avaldez-dev/storefront-pricing/api/responses"
	"github.com/avaldez-dev/storefront-pricing/api/validators"
	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/internal/pricing"
	"github.com/avaldez-dev/storefront-pricing/internal/shipping"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"go.uber.org/multierr"
)

// QuoteService reprices an order snapshot in place.
type QuoteService interface {
	Recalculate(ctx context.Context, o *order.Order) error
}

// ShippingService lists shipping methods matching an order.
type ShippingService interface {
	MatchingMethods(ctx context.Context, o *order.Order) ([]shipping.Match, error)
}

// CouponService validates coupon codes against an order context.
type CouponService interface {
	CouponAvailable(ctx context.Context, o *order.Order) (bool, string, error)
}

// OrderQuote prices a submitted order snapshot and returns its adjustments
// and totals. Configuration problems (a broken rule) degrade to warnings; the
// shopper still gets a priced order.
func OrderQuote(svc QuoteService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload orderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		o := payload.toOrder()

		var warnings []string
		if err := svc.Recalculate(r.Context(), o); err != nil {
			if !pricing.IsConfigError(err) {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			for _, e := range multierr.Errors(err) {
				warnings = append(warnings, e.Error())
			}
		}

		responses.WriteSuccess(w, newQuoteResponse(o, warnings))
	}
}

// OrderShippingOptions lists the shipping methods available to a submitted
// order snapshot with their computed prices.
func OrderShippingOptions(svc ShippingService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		var payload orderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		matches, err := svc.MatchingMethods(r.Context(), payload.toOrder())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newShippingOptions(matches))
	}
}

// OrderCouponCheck reports whether a coupon code could apply, and if not,
// the shopper-facing reason.
func OrderCouponCheck(svc CouponService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var payload couponCheckRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		o := &order.Order{
			CouponCode: payload.CouponCode,
			Email:      payload.Email,
		}
		if payload.Customer != nil {
			o.Customer = &order.Customer{
				ID:       payload.Customer.ID,
				Email:    payload.Customer.Email,
				GroupIDs: payload.Customer.GroupIDs,
			}
			if o.Email == "" {
				o.Email = payload.Customer.Email
			}
		}

		available, reason, err := svc.CouponAvailable(r.Context(), o)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, couponCheckResponse{Available: available, Reason: reason})
	}
}
