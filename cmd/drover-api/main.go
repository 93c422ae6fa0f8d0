// README: Entry point; loads config, wires services, starts HTTP server and
// the writeback worker.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"drover/internal/config"
	httptransport "drover/internal/http"
	"drover/internal/infra"
	"drover/internal/modules/assign"
	"drover/internal/modules/cluster"
	"drover/internal/modules/dispatch"
	"drover/internal/modules/job"
	"drover/internal/modules/journal"
	"drover/internal/modules/location"
	"drover/internal/modules/sequence"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	mapsClient, err := infra.NewMaps(cfg.Maps.APIKey)
	if err != nil {
		log.Fatal(err)
	}

	sheetsSvc, err := infra.NewSheets(ctx, cfg.Sheets.CredentialsFile)
	if err != nil {
		log.Fatal(err)
	}

	postcodeStore := location.NewStore(redisClient)
	resolver := location.NewService(postcodeStore)
	geocoder := location.NewGeocoder(mapsClient, postcodeStore)

	jobStore := job.NewStore(sheetsSvc, cfg.Sheets.SpreadsheetID, cfg.Sheets.DriversSheet)
	snapshots := job.NewSnapshotCache(jobStore, cfg.Sheets.JobsSheet,
		cfg.Snapshot.TTL, cfg.Snapshot.RefreshEvery, cfg.Snapshot.RefreshBurst)
	writeback := job.NewWriteback(jobStore, cfg.Sheets.JobsSheet, cfg.Snapshot.WritebackSize)

	journalStore := journal.NewStore(dbPool)

	clusterSvc := cluster.NewService(resolver, cfg.Dispatch)
	assignSvc := assign.NewService(resolver, cfg.Dispatch)
	sequenceSvc := sequence.NewService()

	dispatchSvc := dispatch.NewService(
		snapshots, writeback, journalStore, geocoder,
		resolver, clusterSvc, assignSvc, sequenceSvc,
	)

	router := httptransport.NewRouter(dispatchSvc, cfg.HTTP.APIKey)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go writeback.Run(ctx)

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening addr=%s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	// Let the writeback queue drain before exiting.
	writeback.Wait()
}
