package main

import (
	"blogkit/internal/api"
	"blogkit/internal/config"
	"blogkit/internal/mail"
	"blogkit/internal/model"
	"blogkit/internal/storage"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Local development keeps its settings in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedDefaults(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed default roles and accounts")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	mailer, err := mail.NewMailer(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise mailer")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store, mailer)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())
	r.Use(httpHandler.ResolverMiddleware())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/logout", httpHandler.Logout)
	authGroup.POST("/register", httpHandler.Register)
	authGroup.POST("/verify-email", httpHandler.VerifyEmail)
	authGroup.POST("/re-verify-email", httpHandler.ResendVerification)
	authGroup.POST("/forgot-password", httpHandler.ForgotPassword)
	authGroup.POST("/reset-password", httpHandler.ResetPassword)

	accountGroup := apiGroup.Group("/account")
	accountGroup.GET("/me", httpHandler.Me)
	accountGroup.PUT("/update", httpHandler.UpdateAccount)
	accountGroup.PUT("/change-email", httpHandler.ChangeEmail)
	accountGroup.PUT("/change-password", httpHandler.ChangePassword)

	blogGroup := apiGroup.Group("/blogs")
	blogGroup.GET("", httpHandler.ListBlogs)
	blogGroup.POST("", httpHandler.CreateBlog)
	blogGroup.GET("/:slug", httpHandler.GetBlog)
	blogGroup.PUT("/:slug", httpHandler.UpdateBlog)
	blogGroup.DELETE("/:slug", httpHandler.DeleteBlog)

	categoryGroup := apiGroup.Group("/blog_categories")
	categoryGroup.GET("", httpHandler.ListBlogCategories)
	categoryGroup.POST("", httpHandler.CreateBlogCategory)
	categoryGroup.GET("/:slug", httpHandler.GetBlogCategory)
	categoryGroup.PUT("/:slug", httpHandler.UpdateBlogCategory)
	categoryGroup.DELETE("/:slug", httpHandler.DeleteBlogCategory)

	imageGroup := apiGroup.Group("/images")
	imageGroup.GET("", httpHandler.ListImages)
	imageGroup.POST("", httpHandler.CreateImage)
	imageGroup.PUT("/:id", httpHandler.UpdateImage)
	imageGroup.DELETE("/:id", httpHandler.DeleteImage)

	userAdmin := apiGroup.Group("/admin/users")
	userAdmin.GET("", httpHandler.ListUsers)
	userAdmin.POST("", httpHandler.CreateUser)
	userAdmin.GET("/:id", httpHandler.GetUser)
	userAdmin.PATCH("/:id", httpHandler.UpdateUser)
	userAdmin.DELETE("/:id", httpHandler.DeleteUser)

	roleAdmin := apiGroup.Group("/admin/roles")
	roleAdmin.GET("", httpHandler.ListRoles)
	roleAdmin.POST("", httpHandler.CreateRole)
	roleAdmin.GET("/:id", httpHandler.GetRole)
	roleAdmin.PATCH("/:id", httpHandler.UpdateRole)
	roleAdmin.DELETE("/:id", httpHandler.DeleteRole)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

// CORSMiddleware handles cross origin requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware logs one structured line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
