package controllers

import (
	"net/http"
	"strings"

	"github.com/thalilabs/storefront/api/responses"
	"github.com/thalilabs/storefront/api/validators"
	"github.com/thalilabs/storefront/internal/backend"
	"github.com/thalilabs/storefront/pkg/logger"
)

// Session reports the visitor's current auth state. Anonymous visitors
// get a null user rather than an error.
func Session(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		responses.WriteSuccess(w, sessionResponse{
			User:    stores.Session.User(),
			Loading: stores.Session.Loading(),
		})
	}
}

// Login signs the visitor in and reports where to send them next. A
// "from" path captured by the guard is honored when it is a local path.
func Login(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := stores.Session.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, authResponse{
			User:       user,
			RedirectTo: safeReturnPath(payload.From),
		})
	}
}

// Register creates the account and signs the visitor in.
func Register(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := stores.Session.Register(r.Context(), backend.RegisterInput{
			Name:     validators.SanitizeString(payload.Name, 0),
			Email:    payload.Email,
			Password: payload.Password,
			Phone:    payload.Phone,
			Address:  payload.Address.toAddress(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, authResponse{
			User:       user,
			RedirectTo: "/",
		})
	}
}

// Logout forgets the visitor's credential. Always succeeds.
func Logout(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		stores.Session.Logout(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}

// ProfileUpdate edits the signed-in visitor's identity.
func ProfileUpdate(locator StoreLocator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, ok := visitorStores(w, r, locator, logg)
		if !ok {
			return
		}

		var payload profileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := backend.ProfilePatch{
			Name:  validators.SanitizeString(payload.Name, 0),
			Phone: payload.Phone,
		}
		if payload.Address != nil {
			addr := payload.Address.toAddress()
			patch.Address = &addr
		}

		user, err := stores.Session.UpdateProfile(r.Context(), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	From     string `json:"from"`
}

type registerRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	Phone    string         `json:"phone"`
	Address  addressPayload `json:"address"`
}

type profileRequest struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address *addressPayload `json:"address"`
}

type addressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Phone   string `json:"phone"`
}

func (a addressPayload) toAddress() backend.Address {
	return backend.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Phone:   a.Phone,
	}
}

type sessionResponse struct {
	User    *backend.User `json:"user"`
	Loading bool          `json:"loading"`
}

type authResponse struct {
	User       *backend.User `json:"user"`
	RedirectTo string        `json:"redirect_to"`
}

// safeReturnPath only trusts same-origin absolute paths for the
// post-login redirect.
func safeReturnPath(from string) string {
	from = strings.TrimSpace(from)
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return "/"
	}
	return from
}
