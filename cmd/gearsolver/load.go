package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wildforge/gearsolver/internal/redis"
	"github.com/wildforge/gearsolver/internal/repositories/catalog"
)

var (
	loadCatalogPath string
	loadRedisAddr   string
	loadSnapshotID  string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Store a catalog file as a Redis snapshot",
	Long:  `Load parses a catalog JSON file, validates it and stores it as a snapshot in Redis so later solves can run against it by ID.`,
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadCatalogPath, "catalog", "", "path to the catalog JSON file (required)")
	loadCmd.Flags().StringVar(&loadRedisAddr, "redis", "localhost:6379", "Redis address")
	loadCmd.Flags().StringVar(&loadSnapshotID, "snapshot", "", "snapshot ID to store under (default \"current\")")
	_ = loadCmd.MarkFlagRequired("catalog")
}

// newRedisRepository dials Redis and wraps it in a catalog repository
func newRedisRepository(addr string) (catalog.Repository, error) {
	client, err := redis.NewClient(addr, nil)
	if err != nil {
		return nil, err
	}
	return catalog.NewRedis(&catalog.RedisConfig{Client: client})
}

// newFileRepository parses a catalog file into an in-memory repository under
// the given snapshot ID
func newFileRepository(path, snapshotID string) (catalog.Repository, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := catalog.ParseCatalog(data)
	if err != nil {
		return nil, err
	}

	repo := catalog.NewInMemory()
	if _, err := repo.PutSnapshot(context.Background(), catalog.PutSnapshotInput{
		SnapshotID: snapshotID,
		Catalog:    c,
	}); err != nil {
		return nil, err
	}
	return repo, nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(loadCatalogPath) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := catalog.ParseCatalog(data)
	if err != nil {
		return err
	}

	repo, err := newRedisRepository(loadRedisAddr)
	if err != nil {
		return err
	}

	put, err := repo.PutSnapshot(cmd.Context(), catalog.PutSnapshotInput{
		SnapshotID: loadSnapshotID,
		Catalog:    c,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "stored catalog snapshot %q (%d skills, %d pieces, %d weapons, %d jewels)\n",
		put.SnapshotID, len(c.Skills), len(c.Pieces), len(c.Weapons), len(c.Jewels))
	return nil
}
