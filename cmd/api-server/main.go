// Package main API Server 入口
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"site-admin/internal/apiserver/auth"
	"site-admin/internal/apiserver/server"
	"site-admin/internal/config"
	"site-admin/internal/shared/storage"
	"site-admin/internal/shared/storage/filestore"
	"site-admin/internal/shared/storage/mongostore"
	"site-admin/internal/shared/storage/repository"
	"site-admin/pkg/logging"
)

func main() {
	// 加载配置（自动加载 .env，根据 APP_ENV 切换配置文件）
	cfg := config.Load()

	log.Printf("Starting API Server... [env=%s]", cfg.Env)
	log.Printf("Config: %s", cfg.String())

	logger := logging.Default("api-server")

	// 存储后端：配置了 MONGODB_URI 时首选 MongoDB，探测失败回退本地 JSON 文件
	var connect storage.ConnectFunc
	if cfg.MongoURI != "" {
		connect = func(ctx context.Context) (storage.Backend, error) {
			return mongostore.NewStore(ctx, mongostore.Config{
				URI:              cfg.MongoURI,
				DBName:           cfg.MongoDBName,
				ConnectTimeout:   cfg.ConnectTimeout,
				SelectionTimeout: cfg.SelectionTimeout,
			})
		}
	}
	sel := storage.NewSelector(filestore.NewStore(cfg.DataDir), connect, logger)
	defer sel.Close()

	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, admin endpoints are disabled")
	}

	h := server.NewHandler(
		repository.NewStore(sel),
		auth.NewSessionStore(auth.TokenTTL),
		sel,
		cfg.AdminPassword,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 优雅关闭
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("API Server listening on :%s", cfg.APIPort)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server stopped")
}
