package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/thalilabs/storefront/api/responses"
	"github.com/thalilabs/storefront/api/validators"
	"github.com/thalilabs/storefront/internal/backend"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
	"github.com/thalilabs/storefront/pkg/logger"
	"github.com/thalilabs/storefront/pkg/pagination"
)

// Menu lists the catalog. Category and search filtering happen here so
// the backend contract stays a plain list endpoint.
func Menu(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		products, err := stores.Backend.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

		filtered := make([]backend.Product, 0, len(products))
		for _, product := range products {
			if category != "" && !strings.EqualFold(product.Category, category) {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
				continue
			}
			filtered = append(filtered, product)
		}

		params := pagination.FromRequest(r)
		start, end, hasMore := pagination.Window(len(filtered), params)

		responses.WriteSuccess(w, map[string]any{
			"products": filtered[start:end],
			"total":    len(filtered),
			"has_more": hasMore,
		})
	}
}

// ProductDetail returns a single menu item.
func ProductDetail(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
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

		product, err := stores.Backend.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// SubmitReview posts a rating for a menu item on behalf of the
// signed-in visitor.
func SubmitReview(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
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

		var payload reviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := stores.Backend.SubmitReview(r.Context(), productID, backend.ReviewInput{
			Rating:  payload.Rating,
			Comment: validators.SanitizeString(payload.Comment, 0),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "submitted"})
	}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}
