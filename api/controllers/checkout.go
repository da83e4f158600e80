package controllers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/thalilabs/storefront/api/responses"
	"github.com/thalilabs/storefront/api/validators"
	"github.com/thalilabs/storefront/internal/backend"
	pkgerrors "github.com/thalilabs/storefront/pkg/errors"
	"github.com/thalilabs/storefront/pkg/logger"
)

// Checkout submits the cart as a cash-on-delivery order and empties the
// cart once the backend accepts it. Address fields left out of the
// payload are prefilled from the signed-in profile.
func Checkout(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := stores.Cart.Items()
		if len(lines) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		address := resolveDeliveryAddress(stores.Session.User(), payload.DeliveryAddress)
		if missing := missingAddressFields(address); len(missing) > 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is incomplete").
				WithDetails(map[string]any{"missing": missing}))
			return
		}

		items := make([]backend.OrderItem, len(lines))
		for i, line := range lines {
			items[i] = backend.OrderItem{
				Product:  line.Product.ID,
				Quantity: line.Quantity,
				Price:    line.Product.Price.InexactFloat64(),
			}
		}

		order, err := stores.Backend.PlaceOrder(r.Context(), backend.OrderInput{
			Items:           items,
			TotalAmount:     stores.Cart.Total().InexactFloat64(),
			DeliveryAddress: address,
			Notes:           validators.SanitizeString(payload.Notes, 0),
			PaymentMethod:   backend.PaymentMethodCashOnDelivery,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stores.Cart.Clear(r.Context())

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

type checkoutRequest struct {
	DeliveryAddress *addressPayload `json:"delivery_address"`
	Notes           string          `json:"notes" validate:"max=2000"`
}

// resolveDeliveryAddress starts from the profile address and overlays
// any fields present in the payload.
func resolveDeliveryAddress(user *backend.User, payload *addressPayload) backend.Address {
	address := backend.Address{}
	if user != nil {
		address = user.Address
		if address.Phone == "" {
			address.Phone = user.Phone
		}
	}
	if payload != nil {
		overlay := payload.toAddress()
		if overlay.Street != "" {
			address.Street = overlay.Street
		}
		if overlay.City != "" {
			address.City = overlay.City
		}
		if overlay.State != "" {
			address.State = overlay.State
		}
		if overlay.ZipCode != "" {
			address.ZipCode = overlay.ZipCode
		}
		if overlay.Phone != "" {
			address.Phone = overlay.Phone
		}
	}
	return address
}

func missingAddressFields(address backend.Address) []string {
	missing := []string{}
	for field, value := range map[string]string{
		"street":   address.Street,
		"city":     address.City,
		"state":    address.State,
		"zip_code": address.ZipCode,
		"phone":    address.Phone,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}
