package controllers

import (
	"context"
	"net/http"

	"github.com/avaldez-dev/storefront-pricing/api/responses"
	"github.com/avaldez-dev/storefront-pricing/api/validators"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CatalogService rebuilds price snapshots.
type CatalogService interface {
	Generate(ctx context.Context, storeID *uuid.UUID) (int, error)
}

// PriceReader serves snapshot rows cache-first.
type PriceReader interface {
	PriceFor(ctx context.Context, storeID, purchasableID uuid.UUID) (*models.CatalogPrice, error)
}

// CatalogGenerate triggers a snapshot rebuild, for every store or one store
// when the body names it.
func CatalogGenerate(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload catalogGenerateRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		written, err := svc.Generate(r.Context(), payload.StoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalogGenerateResponse{EntriesWritten: written})
	}
}

// CatalogPrice returns the current snapshot row for one purchasable in one
// store.
func CatalogPrice(reader PriceReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog reader unavailable"))
			return
		}

		storeID, err := uuid.Parse(chi.URLParam(r, "storeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}
		purchasableID, err := uuid.Parse(chi.URLParam(r, "purchasableId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purchasable id"))
			return
		}

		row, err := reader.PriceFor(r.Context(), storeID, purchasableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, row)
	}
}
