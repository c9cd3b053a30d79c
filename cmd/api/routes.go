package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/Job-Application-Tracker/internal/handlers"
	"github.com/justsurfingit/Job-Application-Tracker/internal/web"
)

func (app *application) routes() (http.Handler, error) {
	if !app.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestID())
	r.Use(handlers.RequestLogger(app.Logger))
	r.Use(app.Metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	if app.Config.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = app.Config.GetCORSOrigins()
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", handlers.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{handlers.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", handlers.HealthCheck(app.DB))
	r.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	app.Handler.Register(r)

	return r, nil
}
