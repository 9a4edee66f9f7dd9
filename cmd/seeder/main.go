package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"tourops/internal/adapters/observability"
	"tourops/internal/app"
	"tourops/internal/domain"
	"tourops/internal/shared"
	mysqlrepo "tourops/internal/storage/mysql"
)

// Seeds reference fixtures plus a handful of demo routes so a fresh
// environment has something to plan against.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "seeder")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	locations, err := seedReference(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("reference seed failed")
	}

	repo := mysqlrepo.New(db)
	routes := app.NewRouteService(repo, nil)
	segments := app.NewSegmentService(repo, repo, nil)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for i := 1; i <= 8; i++ {
		i := i

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := seedRoute(ctx, routes, segments, locations, i); err != nil {
				log.Warn().Int("route", i).Err(err).Msg("route seed failed")
				return
			}
			log.Info().Int("route", i).Msg("route seeded")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

func seedReference(ctx context.Context, db *sql.DB) ([]string, error) {
	names := map[string][]string{
		"clients":       {"Ana Duarte", "Tom Becker", "Sofia Ionescu"},
		"guides":        {"Marco Silva", "Lena Fischer"},
		"hotels":        {"Jungle Lodge", "Rio Grande Hotel"},
		"third_parties": {"Amazonas Boats", "Trail Catering"},
		"locations":     {"Manaus", "Novo Airao", "Presidente Figueiredo", "Itacoatiara"},
	}
	var locationIDs []string
	for table, rows := range names {
		for _, n := range rows {
			id := uuid.NewString()
			stmt := fmt.Sprintf("INSERT IGNORE INTO %s (id, name) VALUES (?, ?)", table)
			if _, err := db.ExecContext(ctx, stmt, id, n); err != nil {
				return nil, err
			}
			if table == "locations" {
				locationIDs = append(locationIDs, id)
			}
		}
	}
	return locationIDs, nil
}

func seedRoute(ctx context.Context, routes *app.RouteService, segments *app.SegmentService, locations []string, n int) error {
	start, _ := domain.ParseDate("2026-10-01")
	rt, err := routes.Create(ctx, domain.Route{
		Name:      fmt.Sprintf("Demo Expedition %d", n),
		StartDate: &start,
	})
	if err != nil {
		return err
	}
	for day := 0; day < 3; day++ {
		from := locations[day%len(locations)]
		to := locations[(day+1)%len(locations)]
		if _, err := segments.Create(ctx, rt.ID, app.SegmentInput{
			FromLocationID: &from,
			ToLocationID:   &to,
		}); err != nil {
			return err
		}
	}
	return nil
}
