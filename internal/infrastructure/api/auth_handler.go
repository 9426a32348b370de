package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"storefront-gateway/internal/application"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AuthHandler owns the OAuth install surface. Everything here terminates in
// a single effect: storing or revoking a tenant credential.
type AuthHandler struct {
	credentials *application.CredentialsService
	resolver    *application.DomainResolver
	states      ports.StateStore
	app         goshopify.App
	appURL      string
	scopes      string
	logger      zerolog.Logger
}

// NewAuthHandler creates the OAuth handler.
func NewAuthHandler(
	credentials *application.CredentialsService,
	resolver *application.DomainResolver,
	states ports.StateStore,
	apiKey, apiSecret, appURL, scopes string,
	logger zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		resolver:    resolver,
		states:      states,
		app:         goshopify.App{ApiKey: apiKey, ApiSecret: apiSecret},
		appURL:      appURL,
		scopes:      scopes,
		logger:      logger,
	}
}

// Install handles GET /auth: redirects the merchant to the upstream
// authorization page with a random state nonce.
func (h *AuthHandler) Install(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("shop query parameter is required"))
		return
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		h.logger.Error().Err(err).Msg("Failed to generate state")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
		return
	}
	state := hex.EncodeToString(stateBytes)

	if err := h.states.Put(r.Context(), state, shop); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store oauth state")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
		return
	}

	redirectURI := h.appURL + "/agent-api/auth/callback"
	authURL := fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shop,
		h.app.ApiKey,
		url.QueryEscape(h.scopes),
		url.QueryEscape(redirectURI),
		state,
	)

	h.logger.Info().Str("shop", shop).Msg("Redirecting to upstream OAuth")
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles GET /auth/callback: verifies the state nonce and the
// request HMAC, exchanges the code, and stores the credential.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shop := r.URL.Query().Get("shop")
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if shop == "" || code == "" || state == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("missing shop, code or state parameter"))
		return
	}

	boundShop, err := h.states.Take(ctx, state)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read oauth state")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
		return
	}
	if boundShop == "" || boundShop != shop {
		writeJSON(w, http.StatusUnauthorized, errorBody("invalid or expired oauth state"))
		return
	}

	if ok, err := h.app.VerifyAuthorizationURL(r.URL); err != nil || !ok {
		h.logger.Warn().Err(err).Str("shop", shop).Msg("OAuth callback failed HMAC verification")
		writeJSON(w, http.StatusUnauthorized, errorBody("callback signature verification failed"))
		return
	}

	token, err := h.app.GetAccessToken(ctx, shop, code)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to exchange token")
		writeJSON(w, http.StatusBadGateway, errorBody("failed to complete authorization"))
		return
	}

	if _, err := h.credentials.Save(ctx, shop, token, h.scopes); err != nil {
		h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to store credential")
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to store credential"))
		return
	}

	fmt.Fprintf(w, "Authorization successful for %s. You can close this window.", shop)
}

type initRequest struct {
	Shop        string `json:"shop"`
	AccessToken string `json:"accessToken"`
	Scopes      string `json:"scopes"`
}

// Init handles POST /auth/shopify/init: accepts a token obtained out of band
// and stores it directly.
func (h *AuthHandler) Init(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.Shop == "" || req.AccessToken == "" || req.Scopes == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("shop, accessToken and scopes are required"))
		return
	}

	if _, err := h.credentials.Save(r.Context(), req.Shop, req.AccessToken, req.Scopes); err != nil {
		h.logger.Error().Err(err).Str("shop", req.Shop).Msg("Failed to store credential from init")
		writeJSON(w, http.StatusInternalServerError, errorBody("could not process initialization"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("credential stored for shop %s", req.Shop),
	})
}

// Deactivate handles DELETE /auth/{shop}: revokes the credential for a shop,
// resolving aliases first. The row is tombstoned, never deleted.
func (h *AuthHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop := chi.URLParam(r, "shop")

	canonical, err := h.resolver.Resolve(ctx, shop)
	if err != nil {
		if !errors.Is(err, domain.ErrDomainNotResolved) {
			h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to resolve shop for deactivation")
			writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
			return
		}
		canonical = shop
	}

	cred, err := h.credentials.Deactivate(ctx, canonical)
	if err != nil {
		h.logger.Error().Err(err).Str("shop", canonical).Msg("Failed to deactivate credential")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
		return
	}
	if cred == nil {
		writeJSON(w, http.StatusNotFound, errorBody("no credential found for shop"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("credential deactivated for shop %s", canonical),
	})
}
