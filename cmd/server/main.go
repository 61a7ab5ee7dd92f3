package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/honeyphish/honeyphish/internal/api"
	"github.com/honeyphish/honeyphish/internal/db"
	"github.com/honeyphish/honeyphish/internal/middleware"
	"github.com/honeyphish/honeyphish/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	addr := utils.SafeEnv("HONEYPHISH_ADDR", ":8080")
	commit := os.Getenv("HONEYPHISH_COMMIT")
	buildTime := os.Getenv("HONEYPHISH_BUILD_TIME")
	adminEmail := utils.SafeEnv("HONEYPHISH_ADMIN_EMAIL", "admin@honeyphish.com")
	adminPassword := utils.SafeEnv("HONEYPHISH_ADMIN_PASSWORD", "admin123")

	store, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	if utils.SafeEnv("HONEYPHISH_SEED", "1") == "1" {
		if existing, err := store.ListVendors(); err == nil && len(existing) == 0 {
			if err := api.SeedDemoData(store, adminEmail, adminPassword); err != nil {
				log.Fatalf("seed demo data: %v", err)
			}
			log.Printf("seeded demo vendors and accounts")
		}
	}

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "HoneyPhish API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Serve the built frontend when a static dir is configured (fullstack image).
	if staticDir := os.Getenv("HONEYPHISH_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(middleware.WithAuth(mux))))

	log.Printf("HoneyPhish server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore selects the backing store: in-memory by default, SQLite when
// HONEYPHISH_STORE=sqlite.
func openStore() (api.Store, error) {
	if utils.SafeEnv("HONEYPHISH_STORE", "memory") != "sqlite" {
		return api.NewMemoryStore(), nil
	}
	path := utils.SafeEnv("HONEYPHISH_SQLITE_PATH", "honeyphish.db")
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(conn, os.Getenv("HONEYPHISH_MIGRATIONS_DIR")); err != nil {
		return nil, err
	}
	return db.NewStore(conn)
}
