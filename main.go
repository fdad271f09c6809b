package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"expenzaar/pkg/budget"
	"expenzaar/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// app carries the process-wide collaborators: one store handle opened at
// startup, the budget service built on it, the mailer and the JWT secret.
// Everything is injected here once instead of living in package globals.
type app struct {
	store     *store.Store
	budget    *budget.Service
	mailer    Mailer
	jwtSecret []byte
}

func newApp(st *store.Store, mailer Mailer, jwtSecret []byte) *app {
	return &app{
		store:     st,
		budget:    budget.NewService(st),
		mailer:    mailer,
		jwtSecret: jwtSecret,
	}
}

func main() {
	// Auto-load ./.env if present before reading vars
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	st, err := store.Open(dsn)
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	defer st.Close()

	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")); v == "false" || v == "0" || v == "no" {
		shouldMigrate = false
	}
	if shouldMigrate {
		st.AutoMigrate()
	}

	// Support a lightweight migrate command: `./expenzaar migrate`
	// It runs AutoMigrate then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		st.AutoMigrate()
		fmt.Println("migration completed")
		return
	}

	a := newApp(st, newMailerFromEnv(), []byte(secret))

	r := gin.Default()
	setupRoutes(r, a)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	r.Run(":" + port)
}
