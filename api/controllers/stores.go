package controllers

import (
	"context"
	"net/http"

	"github.com/thalilabs/storefront/api/middleware"
	"github.com/thalilabs/storefront/api/responses"
	"github.com/thalilabs/storefront/internal/visitor"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
	"github.com/thalilabs/storefront/pkg/logger"
)

// StoreLocator yields the per-visitor stores backing each handler.
type StoreLocator interface {
	Get(ctx context.Context, visitorID string) (*visitor.Stores, error)
}

// visitorStores resolves the request's visitor stores, writing the error
// response itself when resolution fails.
func visitorStores(w http.ResponseWriter, r *http.Request, locator StoreLocator, logg *logger.Logger) (*visitor.Stores, bool) {
	visitorID := middleware.VisitorIDFromContext(r.Context())
	if visitorID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "visitor context missing"))
		return nil, false
	}

	stores, err := locator.Get(r.Context(), visitorID)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve visitor stores"))
		return nil, false
	}
	return stores, true
}
