package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	filesadapter "vet-records/internal/adapters/files"
	mem "vet-records/internal/adapters/storage/memory"
	redisstore "vet-records/internal/adapters/storage/redis"
	"vet-records/internal/adapters/storage/sqlstore"
	"vet-records/internal/config"
	"vet-records/internal/platform/httpclient"
	"vet-records/internal/platform/logger"
	"vet-records/internal/ports/store"
	"vet-records/internal/router"
)

// @title Vet Records API
// @version 1.0
// @description Generación de documentos veterinarios en PDF.
// @BasePath /
func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	st, err := openStore(cfg)
	if err != nil {
		log.Error("storage init failed", map[string]any{"driver": cfg.StorageDriver, "error": err})
		os.Exit(1)
	}
	defer st.Close()

	res := &filesadapter.Chain{
		Local:  filesadapter.NewLocal(cfg.UploadDir),
		Remote: filesadapter.NewRemote(httpclient.New(cfg.RemoteTimeout), cfg.RemoteTimeout),
	}

	r := router.NewRouter(router.Options{
		Store:     st,
		Logger:    log,
		Render:    cfg.Render(),
		Files:     res,
		UploadDir: cfg.UploadDir,
		OutputDir: cfg.OutputDir,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // los PDF con imágenes remotas tardan
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{"addr": addr, "storage": cfg.StorageDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", map[string]any{"error": err})
	}
	log.Info("server stopped", nil)
}

func openStore(cfg config.Config) (store.DocumentStore, error) {
	switch cfg.StorageDriver {
	case "memory":
		return mem.NewDocumentStore(), nil
	case "redis":
		return redisstore.Open(cfg.RedisURL)
	default:
		d, err := sqlstore.DialectByName(cfg.StorageDriver)
		if err != nil {
			return nil, err
		}
		dsn := cfg.DBDSN
		if dsn == "" && d.Name == sqlstore.SQLite.Name {
			dsn = "vet-records.db"
		}
		db, err := sqlstore.Open(d, dsn)
		if err != nil {
			return nil, err
		}
		return sqlstore.NewDocumentStore(db, d), nil
	}
}
