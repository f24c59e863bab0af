package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campus-portal/internal/oauth"
	"campus-portal/internal/service"
)

// IdentityProvider abstrae el intercambio OIDC para poder testear el callback.
type IdentityProvider interface {
	MakeState(raw string) string
	VerifyState(state string) bool
	AuthURL(state string) string
	ExchangeAndVerify(ctx context.Context, code string) (*oauth.Claims, error)
}

// AuthHandler mantiene dependencias para el flujo de login con Azure AD.
type AuthHandler struct {
	logger         *zap.Logger
	provider       IdentityProvider
	users          *service.UserService
	sessions       service.SessionStore
	allowedDomains []string
	sessionTTL     time.Duration
}

func NewAuthHandler(
	logger *zap.Logger,
	provider IdentityProvider,
	users *service.UserService,
	sessions service.SessionStore,
	allowedDomains []string,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		logger:         logger,
		provider:       provider,
		users:          users,
		sessions:       sessions,
		allowedDomains: allowedDomains,
		sessionTTL:     sessionTTL,
	}
}

// Login maneja GET /auth/azuread: redirige al proveedor con state firmado.
func (h *AuthHandler) Login(c *gin.Context) {
	state := h.provider.MakeState(uuid.NewString())
	c.Redirect(http.StatusFound, h.provider.AuthURL(state))
}

// Callback maneja POST /auth/azuread/callback. Toda falla termina en /login
// con log del lado del servidor; nunca se muestra el error crudo al navegador.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.PostForm("code")
	state := c.PostForm("state")
	if code == "" || !h.provider.VerifyState(state) {
		h.logger.Warn("oidc callback rejected", zap.Bool("has_code", code != ""))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	claims, err := h.provider.ExchangeAndVerify(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("oidc code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ident, err := service.VerifyIdentity(service.IdentityAssertion{
		Subject:    claims.Subject,
		UPN:        claims.UPN,
		UniqueName: claims.UniqueName,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
	}, h.allowedDomains)
	if err != nil {
		h.logger.Warn("identity rejected", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.users.FindOrCreate(c.Request.Context(), ident)
	if err != nil {
		h.logger.Error("find or create user failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	sid := uuid.NewString()
	if err := h.sessions.Store(sid, user.ID, h.sessionTTL); err != nil {
		h.logger.Error("session store failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.SetCookie(sessionCookie, sid, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout maneja GET /logout: revoca la sesión y limpia la cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(sessionCookie); err == nil && sid != "" {
		if err := h.sessions.Revoke(sid); err != nil {
			h.logger.Warn("session revoke failed", zap.Error(err))
		}
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
