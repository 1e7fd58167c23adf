// Package server provides the preview HTTP server for page files.
//
// Each request loads the page file from disk, builds a fresh document and
// renders it, so no document is shared between requests.
//
// # Routes
//
//	GET /                 renders pages/index.{yaml,yml,json}
//	GET /{page}           renders pages/{page}.{yaml,yml,json}
//	GET /healthz          liveness probe
//	GET /metrics          Prometheus metrics for this server
//	GET /_shwimple/reload live reload websocket (Reload only)
//
// # Usage
//
//	srv := server.New(server.Options{PagesDir: "pages", Reload: true})
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.ListenAndServe(ctx, "localhost:3000"); err != nil {
//	    log.Fatal(err)
//	}
package server
