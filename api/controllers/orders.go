package controllers

import (
	"net/http"

	"github.com/thalilabs/storefront/api/responses"
	"github.com/thalilabs/storefront/pkg/logger"
)

// MyOrders lists the signed-in visitor's order history.
func MyOrders(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		orders, err := stores.Backend.MyOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"orders": orders})
	}
}
