package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/realmadmin/internal/admin/service"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/realmadmin/pkg/httpx"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

// TokenHandler serves POST /v1/token.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Token Endpoint
//	@Description	Issues an access token using the client_credentials grant.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(client_credentials)
//	@Param			client_id		formData	string					true	"Client identifier"
//	@Param			client_secret	formData	string					true	"Client secret"
//	@Param			scope			formData	string					false	"Space-delimited list of scopes"
//	@Success		200				{object}	adminsdk.TokenResponse	"access_token, token_type, expires_in, scope"
//	@Failure		400				{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		429				{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	httpx.ErrorResponse		"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Router			/v1/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest,
			"content-type must be application/x-www-form-urlencoded")
		return
	}

	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest, "invalid form body")
		return
	}

	if gt := r.PostForm.Get("grant_type"); gt != "client_credentials" {
		httpx.WriteError(w, http.StatusBadRequest, "unsupported_grant_type", "grant type not supported")
		return
	}

	clientID := strings.TrimSpace(r.PostForm.Get("client_id"))
	clientSecret := r.PostForm.Get("client_secret")
	if clientID == "" || clientSecret == "" {
		httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest,
			"client_id and client_secret are required")
		return
	}
	requested := httpx.ParseSpaceDelimitedFields(r.PostForm.Get("scope"))

	tok, err := h.TokenService.ClientCredentials(ctx, clientID, clientSecret, requested)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClient):
			httpx.WriteError(w, http.StatusUnauthorized, adminsdk.ErrorCodeInvalidClient, "invalid client")
		case errors.Is(err, service.ErrInvalidScope):
			httpx.WriteError(w, http.StatusBadRequest, adminsdk.ErrorCodeInvalidScope, "requested scope is invalid")
		default:
			log.Error("client_credentials grant failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, adminsdk.ErrorCodeServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.TokenResponse{
		AccessToken: tok.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(tok.ExpiresIn.Seconds()),
		Scope:       strings.Join(tok.Scopes, " "),
	})
}
