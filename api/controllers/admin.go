package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thalilabs/storefront/api/responses"
	"github.com/thalilabs/storefront/api/validators"
	"github.com/thalilabs/storefront/internal/backend"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
	"github.com/thalilabs/storefront/pkg/logger"
)

// Admin console handlers. Route-level guards have already confirmed the
// visitor is an admin before any of these run.

func AdminListOrders(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		orders, err := stores.Backend.ListOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"orders": orders})
	}
}

func AdminUpdateOrderStatus(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		orderID := chi.URLParam(r, "orderID")
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := stores.Backend.UpdateOrderStatus(r.Context(), orderID, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func AdminCreateProduct(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := stores.Backend.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminUpdateProduct(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
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

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := stores.Backend.UpdateProduct(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
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

		if err := stores.Backend.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminListUsers(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		users, err := stores.Backend.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"users": users})
	}
}

func AdminUpdateUser(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user id is required"))
			return
		}

		var payload userPatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := stores.Backend.UpdateUser(r.Context(), userID, backend.UserPatch{
			Name:    validators.SanitizeString(payload.Name, 0),
			IsAdmin: payload.IsAdmin,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

func AdminDeleteUser(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user id is required"))
			return
		}

		if err := stores.Backend.DeleteUser(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"max=5000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	IsAvailable bool    `json:"is_available"`
}

func (p productRequest) toInput() backend.ProductInput {
	return backend.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		IsAvailable: p.IsAvailable,
	}
}

type userPatchRequest struct {
	Name    string `json:"name"`
	IsAdmin *bool  `json:"is_admin"`
}
