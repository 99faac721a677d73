package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"feedbox/internal/api"
	"feedbox/internal/config"
	"feedbox/internal/db"
	"feedbox/internal/fetcher"
	"feedbox/internal/ingest"
	"feedbox/internal/logger"
	"feedbox/internal/repository"
	"feedbox/internal/scheduler"
	"feedbox/internal/service"
	"feedbox/internal/snowflake"
)

func main() {
	createUser := flag.Bool("create-user", false, "create a user account and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.NodeID); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	feedRepo := repository.NewFeedRepository(dbConn)
	articleRepo := repository.NewArticleRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)

	authService := service.NewAuthService(userRepo)

	if *createUser {
		if err := runCreateUser(authService); err != nil {
			log.Fatalf("create user: %v", err)
		}
		return
	}

	engine := ingest.NewEngine(dbConn, feedRepo, fetcher.New(config.UserAgent))
	sched := scheduler.New(feedRepo, engine, cfg.RefreshInterval, int(cfg.FetchWorkers))

	feedService := service.NewFeedService(feedRepo, articleRepo, sched)
	articleService := service.NewArticleService(articleRepo)

	sessions := api.NewSessionConfig(cfg.SessionSecret, cfg.DevNonSecureCookie)
	handler := api.NewHandler(feedService, articleService, authService, sessions)
	router := api.NewRouter(handler)

	sched.Start()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down", "module", "main", "action", "shutdown", "resource", "server", "result", "ok")
		sched.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "module", "main", "action", "shutdown", "resource", "server", "result", "failed", "error", err)
		}
	}()

	if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("start server: %v", err)
	}
}

func runCreateUser(auth service.AuthService) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	fmt.Print("Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	user, err := auth.CreateUser(
		context.Background(),
		strings.TrimSpace(username),
		strings.TrimRight(password, "\r\n"),
	)
	if err != nil {
		return err
	}

	fmt.Printf("created user %s (id %d)\n", user.Username, user.ID)
	return nil
}
