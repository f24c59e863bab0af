package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-portal/internal/domain"
	"campus-portal/internal/service"
)

const (
	sessionCookie  = "portal_session"
	currentUserKey = "current_user"
)

// SessionMiddleware resuelve la cookie de sesión a un usuario del directorio.
// Cualquier fallo (cookie ausente, sesión vencida, usuario borrado) deja el
// request como anónimo, nunca corta con error.
func SessionMiddleware(sessions service.SessionStore, users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			c.Next()
			return
		}
		userID, err := sessions.Get(sid)
		if err != nil || userID == "" {
			c.Next()
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAuth redirige a /login cuando no hay usuario autenticado.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser obtiene el usuario autenticado desde el contexto del request.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

// currentUserValue alimenta las vistas: el usuario o nil para anónimos.
func currentUserValue(c *gin.Context) any {
	if user, ok := CurrentUser(c); ok {
		return user
	}
	return nil
}
