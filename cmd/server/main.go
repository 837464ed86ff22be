package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-tracker/internal/api"
	"task-tracker/internal/config"
	"task-tracker/internal/db"
	"task-tracker/pkg/task"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	conn, err := db.Connect(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer conn.Close()

	store := task.NewSQLStore(conn)

	// Ensure tables exist
	if err := store.EnsureTable(ctx); err != nil {
		log.Fatalf("ensure tasks table: %v", err)
	}

	tasks := task.NewService(store)
	server := api.New(tasks, api.Options{StrictStatus: cfg.StrictStatus})
	srv := api.NewHTTPServer(cfg.Addr(), server, cfg.ReadTimeout, cfg.WriteTimeout)

	// Signal handling
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		log.Printf("received %s, shutting down", sig)

		shutdownCtx, done := context.WithTimeout(ctx, 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("task-tracker listening on :%s (db %s)", cfg.Port, cfg.DBPath)
	log.Printf("  GET    /tasks - list all tasks")
	log.Printf("  POST   /tasks - create a task")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("listen: %v", err)
	}
}
