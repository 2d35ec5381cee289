package main

import (
	"context"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lablend/internal/config"
	"lablend/internal/database"
	"lablend/internal/middleware"
	"lablend/internal/modules/auth"
	"lablend/internal/modules/history"
	"lablend/internal/modules/registry"
	jwtsvc "lablend/internal/pkg/jwt"
	"lablend/internal/repository"
	"lablend/web"
)

// Tokens stay valid for exactly one hour; there is no revocation, so
// logout is purely client-side.
const tokenTTL = time.Hour

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)
	logRepo := repository.NewLogRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, tokenTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	registryHandler := registry.NewHandler(registry.NewService(toolRepo, logRepo))
	historyHandler := history.NewHandler(history.NewService(logRepo))

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS())
	_ = r.SetTrustedProxies(nil)

	// public
	authHandler.RegisterRoutes(r)
	registryHandler.RegisterPublicRoutes(r)

	// protected
	protected := r.Group("/")
	protected.Use(middleware.JWTAuth(j))
	{
		registryHandler.RegisterProtectedRoutes(protected)
		historyHandler.RegisterRoutes(protected)
	}

	mountClient(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on http://0.0.0.0:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

// mountClient serves the embedded single-page client for every path
// the API does not claim, falling back to index.html.
func mountClient(r *gin.Engine) {
	fileFS := http.FS(web.StaticFS())

	r.NoRoute(func(c *gin.Context) {
		reqPath := strings.TrimPrefix(c.Request.URL.Path, "/")
		if reqPath == "" {
			reqPath = "index.html"
		}

		if f, err := fileFS.Open(reqPath); err == nil {
			defer f.Close()
			if ct := mime.TypeByExtension(path.Ext(reqPath)); ct != "" {
				c.Header("Content-Type", ct)
			}
			if fi, err := f.Stat(); err == nil {
				http.ServeContent(c.Writer, c.Request, reqPath, fi.ModTime(), f)
			} else {
				c.Status(http.StatusInternalServerError)
			}
			return
		}

		if idx, err := fileFS.Open("index.html"); err == nil {
			defer idx.Close()
			c.Header("Content-Type", "text/html; charset=utf-8")
			if fi, err := idx.Stat(); err == nil {
				http.ServeContent(c.Writer, c.Request, "index.html", fi.ModTime(), idx)
			} else {
				c.Status(http.StatusInternalServerError)
			}
			return
		}

		c.Status(http.StatusNotFound)
	})
}
