package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/banshee-data/ouster.report/internal/lidar/ousterstats"
	"github.com/banshee-data/ouster.report/internal/lidar/ousterviz"
)

// runHTTPServer serves the debug console: a health check, a live
// completeness histogram, and a tailsql SQL console over the stats
// database. histogram must be safe to call concurrently with the ingest
// loop (main wraps it in the loop's mutex).
func runHTTPServer(ctx context.Context, sensorID string, histogram func() []uint64, statsDB *ousterstats.DB) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"ouster-ingest","timestamp":%q}`, time.Now().UTC().Format(time.RFC3339))
	})

	mux.HandleFunc("/histogram", ousterviz.HistogramHandler(sensorID, histogram))

	debug := tsweb.Debugger(mux)
	tsql, err := tailsql.NewServer(tailsql.Options{RoutePrefix: "/debug/tailsql/"})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://"+*dbFile, statsDB.DB, &tailsql.DBOptions{Label: "Ouster Stats DB"})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	server := &http.Server{Addr: *listen, Handler: mux}

	go func() {
		log.Printf("starting ouster-ingest HTTP server on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		server.Close()
	}
}
