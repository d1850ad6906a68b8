package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/tenntenn/superast-cpp/backend/api"
	"github.com/tenntenn/superast-cpp/backend/model"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var logger *log.Logger
	if os.Getenv("SUPERAST_VERBOSE") != "" {
		logger = log.New(os.Stderr, "superast: ", log.LstdFlags)
	}

	mux := http.NewServeMux()

	// Create Connect RPC handler
	handler := api.NewSuperastServiceHandler(logger)

	// Register Connect RPC endpoint
	path, connectHandler := newSuperastServiceHandler(handler)
	mux.Handle(path, connectHandler)

	// Plain JSON endpoint
	mux.HandleFunc("/api/lower", handler.HandleLower)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>Superast C++</title>
</head>
<body>
    <h1>Superast C++</h1>
    <p>Schema version: <code>%s</code></p>
    <p>RPC Endpoint: <code>POST %s</code></p>
    <p>JSON Endpoint: <code>POST /api/lower</code></p>
</body>
</html>`, model.SchemaVersion, path)
	})

	addr := ":" + port
	log.Printf("Server starting on http://localhost%s", addr)

	// Use h2c to support HTTP/2 without TLS
	if err := http.ListenAndServe(addr, h2c.NewHandler(corsMiddleware(mux), &http2.Server{})); err != nil {
		log.Fatal(err)
	}
}

// newSuperastServiceHandler creates a Connect RPC handler for SuperastService
func newSuperastServiceHandler(handler *api.SuperastServiceHandler) (string, http.Handler) {
	connectHandler := connect.NewUnaryHandler(
		api.LowerProcedure,
		handler.Lower,
		connect.WithCodec(&api.JSONCodec{}),
	)
	return api.LowerProcedure, connectHandler
}

// corsMiddleware adds CORS headers for development
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Type, Connect-Protocol-Version")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
