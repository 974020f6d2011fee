package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/api/middleware"
	"github.com/karimbenali/boucherie-backend/api/responses"
	"github.com/karimbenali/boucherie-backend/api/validators"
	"github.com/karimbenali/boucherie-backend/internal/cart"
	pkgerrors "github.com/karimbenali/boucherie-backend/pkg/errors"
	"github.com/karimbenali/boucherie-backend/pkg/logger"
)

type cartItemRequest struct {
	ID         string          `json:"id" validate:"required,uuid4"`
	Name       string          `json:"name" validate:"required"`
	PricePerKG decimal.Decimal `json:"price_per_kg"`
	ImageURL   string          `json:"image_url"`
}

type cartQuantityRequest struct {
	QuantityKG decimal.Decimal `json:"quantity_kg"`
}

type cartResponse struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count decimal.Decimal `json:"count"`
}

func toCartResponse(c cart.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartResponse{Items: items, Total: c.Total(), Count: c.Count()}
}

// CartFetch returns the session cart with its derived totals.
func CartFetch(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.CartSessionFromContext(r.Context())
		responses.WriteSuccess(w, toCartResponse(store.Load(r.Context(), sessionID)))
	}
}

// CartAddItem merges a product into the session cart.
func CartAddItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !payload.PricePerKG.IsPositive() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero"))
			return
		}
		productID, err := uuid.Parse(payload.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		updated, err := store.AddItem(r.Context(), sessionID, cart.Product{
			ID:         productID,
			Name:       payload.Name,
			PricePerKG: payload.PricePerKG,
			ImageURL:   payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to save cart"))
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

// CartUpdateQuantity sets the kilograms for one cart item.
func CartUpdateQuantity(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		updated, err := store.UpdateQuantity(r.Context(), sessionID, productID, payload.QuantityKG)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to save cart"))
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

// CartRemoveItem deletes one cart item.
func CartRemoveItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		updated, err := store.RemoveItem(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to save cart"))
			return
		}
		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

// CartClear empties the session cart.
func CartClear(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.CartSessionFromContext(r.Context())
		if err := store.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to clear cart"))
			return
		}
		responses.WriteSuccess(w, toCartResponse(cart.Cart{}))
	}
}
