package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"courier/internal/api"
	"courier/internal/auth"
	"courier/internal/config"
	"courier/internal/database"
	"courier/internal/service"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

func main() {
	// .env is optional; deployed environments set COURIER_* directly.
	_ = godotenv.Load()

	logger := log.New(os.Stderr, "[courier] ", log.LstdFlags)

	env, err := config.FromEnv()
	if err != nil {
		logger.Fatal("env:", err)
	}

	var allowedOrigins stringSliceFlag
	flag.StringVar(&env.ServerAddr, "addr", env.ServerAddr, "server address")
	flag.StringVar(&env.DatabaseDSN, "dsn", env.DatabaseDSN, "database connection string")
	flag.StringVar(&env.SigningSecret, "signing-key", env.SigningSecret, "base64 encoded signing key")
	flag.IntVar(&env.TokenTTL, "token-ttl", env.TokenTTL, "access token lifetime in seconds")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()
	if len(allowedOrigins) > 0 {
		env.AllowedOrigins = allowedOrigins
	}

	cfg, err := config.NewConfig(env)
	if err != nil {
		logger.Fatal("config:", err)
	}

	db, err := database.NewPgCourierRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Println("db close:", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("migrate:", err)
	}

	tokens := auth.NewTokenService(cfg.SigningKey, cfg.TokenTTL)

	authSvc := service.NewAuthService(logger, db, tokens)
	userSvc := service.NewUserService(logger, db)
	chatSvc := service.NewChatService(logger, db)
	messageSvc := service.NewMessageService(logger, db)

	mux := http.NewServeMux()
	app := api.NewCourierApp(mux, logger, db, authSvc, userSvc, chatSvc, messageSvc, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := app.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
