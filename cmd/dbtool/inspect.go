package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"site-admin/internal/config"
	"site-admin/internal/shared/storage"
	"site-admin/internal/shared/storage/filestore"
	"site-admin/internal/shared/storage/mongostore"
	"site-admin/pkg/logging"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "查看当前存储后端和各集合条数",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		// 与 API Server 相同的选择逻辑：优先 MongoDB，失败回退文件
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
		sel := storage.NewSelector(filestore.NewStore(cfg.DataDir), connect, logging.Default("dbtool"))
		defer sel.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		backend := sel.Backend(ctx)
		fmt.Printf("Backend: %s\n", backend.Kind())
		if backend.Kind() == "mongodb" {
			// 诊断输出只给主机名，凭据和库路径一律不出现
			fmt.Printf("Host:    %s\n", logging.RedactURI(cfg.MongoURI))
			fmt.Printf("DB:      %s\n", cfg.MongoDBName)
		} else {
			fmt.Printf("DataDir: %s\n", cfg.DataDir)
		}

		for _, col := range []string{
			storage.ColUsers, storage.ColMessages, storage.ColInteractions, storage.ColAdminMenu,
		} {
			docs, err := backend.ReadAll(ctx, col)
			if err != nil {
				fmt.Printf("%-14s error: %v\n", col, err)
				continue
			}
			fmt.Printf("%-14s %d document(s)\n", col, len(docs))
		}
		return nil
	},
}
