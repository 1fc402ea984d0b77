package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"site-admin/internal/config"
	"site-admin/internal/shared/storage"
	"site-admin/internal/shared/storage/filestore"
	"site-admin/internal/shared/storage/mongostore"
)

var seedFrom string

func init() {
	for _, cmd := range []*cobra.Command{seedUsersCmd, seedMenuCmd} {
		cmd.Flags().StringVar(&seedFrom, "from", "", "本地 JSON 集合文件所在目录（默认 DATA_DIR）")
	}
}

var seedUsersCmd = &cobra.Command{
	Use:   "seed-users",
	Short: "把本地 users.json 灌入 MongoDB（整体覆盖）",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seedCollection(cmd.Context(), storage.ColUsers)
	},
}

var seedMenuCmd = &cobra.Command{
	Use:   "seed-menu",
	Short: "把本地 admin-menu.json 灌入 MongoDB（整体覆盖）",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seedCollection(cmd.Context(), storage.ColAdminMenu)
	},
}

// seedCollection 读本地文件集合，整体替换 MongoDB 中的同名集合
func seedCollection(ctx context.Context, collection string) error {
	cfg := config.Load()
	if cfg.MongoURI == "" {
		return errors.New("MONGODB_URI not configured, nothing to seed into")
	}

	dir := seedFrom
	if dir == "" {
		dir = cfg.DataDir
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := filestore.NewStore(dir).ReadAll(ctx, collection)
	if err != nil {
		return fmt.Errorf("read local %s: %w", collection, err)
	}

	store, err := mongostore.NewStore(ctx, mongostore.Config{
		URI:              cfg.MongoURI,
		DBName:           cfg.MongoDBName,
		ConnectTimeout:   cfg.ConnectTimeout,
		SelectionTimeout: cfg.SelectionTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer store.Close()

	if err := store.WriteAll(ctx, collection, docs); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	fmt.Printf("Seeded %d document(s) into %s.%s\n", len(docs), cfg.MongoDBName, collection)
	return nil
}
