package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/thalilabs/storefront/api/responses"
	"github.com/thalilabs/storefront/api/validators"
	"github.com/thalilabs/storefront/internal/cart"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
	"github.com/thalilabs/storefront/pkg/logger"
	"github.com/thalilabs/storefront/pkg/types"
)

// CartView returns the visitor's current cart.
func CartView(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, newCartResponse(stores.Cart))
	}
}

// CartAdd merges a menu item into the cart. The product snapshot is
// taken from the backend so the stored price is never client supplied.
func CartAdd(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := stores.Backend.GetProduct(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !product.IsAvailable {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item is not available"))
			return
		}

		quantity := payload.Quantity
		if quantity == 0 {
			quantity = 1
		}

		stores.Cart.Add(r.Context(), cart.ProductSnapshot{
			ID:          product.ID,
			Name:        product.Name,
			Price:       types.MoneyFromFloat(product.Price),
			Image:       product.Image,
			Description: product.Description,
		}, quantity)

		responses.WriteSuccess(w, newCartResponse(stores.Cart))
	}
}

// CartSetQuantity replaces the quantity of one line. Zero or below
// removes the line.
func CartSetQuantity(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stores.Cart.SetQuantity(r.Context(), productID, payload.Quantity)
		responses.WriteSuccess(w, newCartResponse(stores.Cart))
	}
}

// CartRemove drops one line from the cart.
func CartRemove(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		stores.Cart.Remove(r.Context(), productID)
		responses.WriteSuccess(w, newCartResponse(stores.Cart))
	}
}

// CartClear empties the cart.
func CartClear(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		stores.Cart.Clear(r.Context())
		responses.WriteSuccess(w, newCartResponse(stores.Cart))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

type cartLineResponse struct {
	Product   cartProductResponse `json:"product"`
	Quantity  int                 `json:"quantity"`
	LineTotal string              `json:"line_total"`
}

type cartResponse struct {
	Items     []cartLineResponse `json:"items"`
	Total     string             `json:"total"`
	ItemCount int                `json:"item_count"`
}

func newCartResponse(store *cart.Store) cartResponse {
	items := store.Items()
	lines := make([]cartLineResponse, len(items))
	for i, item := range items {
		lines[i] = cartLineResponse{
			Product: cartProductResponse{
				ID:          item.Product.ID,
				Name:        item.Product.Name,
				Price:       types.DisplayAmount(item.Product.Price),
				Image:       item.Product.Image,
				Description: item.Product.Description,
			},
			Quantity:  item.Quantity,
			LineTotal: types.DisplayAmount(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		}
	}
	return cartResponse{
		Items:     lines,
		Total:     types.DisplayAmount(store.Total()),
		ItemCount: store.ItemCount(),
	}
}
