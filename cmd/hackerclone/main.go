package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/hackerclone/hackerclone/internal/auth/http"
	"github.com/hackerclone/hackerclone/internal/common/bootstrap"
	commonhttp "github.com/hackerclone/hackerclone/internal/common/http"
	srv "github.com/hackerclone/hackerclone/internal/common/server"
	contenthttp "github.com/hackerclone/hackerclone/internal/content/http"
)

func main() {
	app, err := bootstrap.NewApp()
	if err != nil {
		panic(err)
	}
	defer app.Pool.Close()

	authHandler := authhttp.NewHandler(app.AuthService, app.Config.RequestTimeout, app.Log)
	contentHandler := contenthttp.NewHandler(app.ContentService, app.AuthService, app.Config.RequestTimeout, app.Log)

	mux := http.NewServeMux()
	authHandler.Register(mux)
	contentHandler.Register(mux)
	mux.HandleFunc("/health", commonhttp.HealthHandler())
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(app.Log, mux)
	finalHandler := rateLimiter.Middleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(app.Config.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, app.Log, nil)
}
