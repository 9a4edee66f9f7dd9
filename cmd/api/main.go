package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "tourops/internal/adapters/http_server"
	"tourops/internal/adapters/observability"
	redisad "tourops/internal/adapters/redis"
	"tourops/internal/app"
	"tourops/internal/shared"
	mysqlrepo "tourops/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	h := &server.Handlers{
		Routes:         app.NewRouteService(repo, cache),
		Query:          app.NewQueryService(repo, cache, cfg.CacheTTL),
		Segments:       app.NewSegmentService(repo, repo, cache),
		Accommodations: app.NewAccommodationService(repo, repo, repo, cache),
		Logistics:      app.NewLogisticsService(repo, repo, cache),
		Participants:   app.NewParticipantService(repo, repo, repo, cache),
		Transfers:      app.NewTransferService(repo, repo, repo, cache),
		Transactions:   app.NewTransactionService(repo, repo, cache),
	}

	// http
	srv := server.New(cfg.RateRPS, cfg.RateBurst)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
