package controllers

import (
	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/internal/shipping"
	"github.com/avaldez-dev/storefront-pricing/pkg/money"
	"github.com/avaldez-dev/storefront-pricing/pkg/types"
	"github.com/google/uuid"
)

// orderRequest is the order snapshot the storefront submits for pricing.
// Prices arrive in integer cents; nothing here is persisted.
type orderRequest struct {
	StoreID              uuid.UUID          `json:"store_id"`
	Email                string             `json:"email" validate:"omitempty,email"`
	Customer             *customerRequest   `json:"customer"`
	CouponCode           string             `json:"coupon_code"`
	ShippingMethodHandle string             `json:"shipping_method_handle"`
	ShippingAddress      *addressRequest    `json:"shipping_address"`
	Items                []lineItemRequest  `json:"items" validate:"required,min=1,dive"`
}

type customerRequest struct {
	ID       uuid.UUID   `json:"id" validate:"required"`
	Email    string      `json:"email" validate:"omitempty,email"`
	GroupIDs []uuid.UUID `json:"group_ids"`
}

type addressRequest struct {
	Line1              string `json:"line1"`
	City               string `json:"city"`
	CountryCode        string `json:"country_code" validate:"required"`
	AdministrativeArea string `json:"administrative_area"`
	PostalCode         string `json:"postal_code"`
}

type lineItemRequest struct {
	PurchasableID      uuid.UUID   `json:"purchasable_id" validate:"required"`
	Description        string      `json:"description"`
	Qty                int         `json:"qty" validate:"required,min=1"`
	UnitPriceCents     int64       `json:"unit_price_cents" validate:"min=0"`
	BaseUnitPriceCents int64       `json:"base_unit_price_cents" validate:"min=0"`
	Weight             float64     `json:"weight" validate:"min=0"`
	ShippingCategoryID uuid.UUID   `json:"shipping_category_id"`
	TaxCategoryID      uuid.UUID   `json:"tax_category_id"`
	CategoryIDs        []uuid.UUID `json:"category_ids"`
	Shippable          *bool       `json:"shippable"`
	FreeShipping       bool        `json:"free_shipping"`
	Promotable         *bool       `json:"promotable"`
}

func (req orderRequest) toOrder() *order.Order {
	o := &order.Order{
		ID:                   uuid.New(),
		StoreID:              req.StoreID,
		Email:                req.Email,
		CouponCode:           req.CouponCode,
		ShippingMethodHandle: req.ShippingMethodHandle,
	}
	if req.Customer != nil {
		o.Customer = &order.Customer{
			ID:       req.Customer.ID,
			Email:    req.Customer.Email,
			GroupIDs: req.Customer.GroupIDs,
		}
		if o.Email == "" {
			o.Email = req.Customer.Email
		}
	}
	if req.ShippingAddress != nil {
		o.ShippingAddress = &types.Address{
			Line1:              req.ShippingAddress.Line1,
			City:               req.ShippingAddress.City,
			CountryCode:        req.ShippingAddress.CountryCode,
			AdministrativeArea: req.ShippingAddress.AdministrativeArea,
			PostalCode:         req.ShippingAddress.PostalCode,
		}
	}
	for _, item := range req.Items {
		base := item.BaseUnitPriceCents
		if base == 0 {
			base = item.UnitPriceCents
		}
		o.Items = append(o.Items, order.LineItem{
			ID:                 uuid.New(),
			PurchasableID:      item.PurchasableID,
			Description:        item.Description,
			Qty:                item.Qty,
			UnitPriceCents:     item.UnitPriceCents,
			BaseUnitPriceCents: base,
			Weight:             item.Weight,
			ShippingCategoryID: item.ShippingCategoryID,
			TaxCategoryID:      item.TaxCategoryID,
			CategoryIDs:        item.CategoryIDs,
			Shippable:          boolOrDefault(item.Shippable, true),
			FreeShipping:       item.FreeShipping,
			Promotable:         boolOrDefault(item.Promotable, true),
		})
	}
	return o
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

type adjustmentResponse struct {
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	Included    bool       `json:"included"`
	LineItemID  *uuid.UUID `json:"line_item_id,omitempty"`
}

type quoteResponse struct {
	ItemSubtotalCents    int64                `json:"item_subtotal_cents"`
	AdjustmentTotalCents int64                `json:"adjustment_total_cents"`
	TotalCents           int64                `json:"total_cents"`
	Adjustments          []adjustmentResponse `json:"adjustments"`
	Warnings             []string             `json:"warnings,omitempty"`
}

func newQuoteResponse(o *order.Order, warnings []string) quoteResponse {
	resp := quoteResponse{
		ItemSubtotalCents:    o.ItemSubtotalCents(),
		AdjustmentTotalCents: o.AdjustmentTotalCents(),
		TotalCents:           o.TotalCents(),
		Adjustments:          make([]adjustmentResponse, 0, len(o.Adjustments)),
		Warnings:             warnings,
	}
	for _, adj := range o.Adjustments {
		resp.Adjustments = append(resp.Adjustments, adjustmentResponse{
			Type:        string(adj.Type),
			Name:        adj.Name,
			Description: adj.Description,
			AmountCents: adj.AmountCents,
			Included:    adj.Included,
			LineItemID:  adj.LineItemID,
		})
	}
	return resp
}

type shippingOptionResponse struct {
	MethodID   uuid.UUID `json:"method_id"`
	Handle     string    `json:"handle"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
}

func newShippingOptions(matches []shipping.Match) []shippingOptionResponse {
	options := make([]shippingOptionResponse, 0, len(matches))
	for _, m := range matches {
		options = append(options, shippingOptionResponse{
			MethodID:   m.Method.ID,
			Handle:     m.Method.Handle,
			Name:       m.Method.Name,
			PriceCents: money.Cents(m.Price),
		})
	}
	return options
}

type couponCheckRequest struct {
	CouponCode string           `json:"coupon_code" validate:"required"`
	Email      string           `json:"email" validate:"omitempty,email"`
	Customer   *customerRequest `json:"customer"`
}

type couponCheckResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type catalogGenerateRequest struct {
	StoreID *uuid.UUID `json:"store_id"`
}

type catalogGenerateResponse struct {
	EntriesWritten int `json:"entries_written"`
}
