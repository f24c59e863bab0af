package http

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-portal/internal/service"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// NewRouter configura el router de Gin con middlewares, vistas y rutas.
func NewRouter(
	logger *zap.Logger,
	sessions service.SessionStore,
	users *service.UserService,
	authH *AuthHandler,
	profileH *ProfileHandler,
	fileH *FileHandler,
	searchH *SearchHandler,
	uploadDir string,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y resolución de sesión.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), SessionMiddleware(sessions, users))

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")))
	r.Static("/uploads", uploadDir)
	r.Static("/public", "./public")

	// Páginas públicas.
	r.GET("/", pageView("home.tmpl"))
	r.GET("/login", pageView("login.tmpl"))
	r.GET("/register", pageView("register.tmpl"))
	r.GET("/search", searchH.Search)

	auth := r.Group("/auth")
	auth.GET("/azuread", authH.Login)
	auth.POST("/azuread/callback", authH.Callback)
	r.GET("/logout", authH.Logout)

	profile := r.Group("/profile", RequireAuth())
	profile.GET("", profileH.Show)
	profile.GET("/edit", profileH.EditForm)
	profile.POST("/edit", profileH.Update)
	profile.POST("/edit/upload", profileH.UploadPicture)

	files := r.Group("/files", RequireAuth())
	files.GET("", fileH.List)
	files.GET("/upload", fileH.UploadForm)
	files.POST("/upload", fileH.Upload)
	files.POST("/delete/:fileId", fileH.Delete)
	files.GET("/download/:fileId", fileH.Download)

	return r
}

// pageView renderiza una vista estática con el usuario actual (o nil).
func pageView(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, gin.H{"user": currentUserValue(c)})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
