package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wildforge/gearsolver/internal/engine"
	"github.com/wildforge/gearsolver/internal/engine/satmodel"
	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/orchestrators/loadout"
	"github.com/wildforge/gearsolver/internal/output"
	"github.com/wildforge/gearsolver/internal/pkg/idgen"
	"github.com/wildforge/gearsolver/internal/repositories/catalog"
)

var (
	solveRequestPath string
	solveCatalogPath string
	solveRedisAddr   string
	solveSnapshotID  string
	solveTimeLimit   time.Duration
	solveXLSXPath    string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute the optimal loadout for a request",
	Long: `Solve reads an optimization request from a YAML file, loads the catalog
from a JSON file or a Redis snapshot, and prints the best loadout found.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveRequestPath, "request", "", "path to the request YAML file (required)")
	solveCmd.Flags().StringVar(&solveCatalogPath, "catalog", "", "path to a catalog JSON file")
	solveCmd.Flags().StringVar(&solveRedisAddr, "redis", "", "Redis address to load the catalog snapshot from")
	solveCmd.Flags().StringVar(&solveSnapshotID, "snapshot", "", "catalog snapshot ID (default \"current\")")
	solveCmd.Flags().DurationVar(&solveTimeLimit, "time-limit", 0, "solve time limit, e.g. 30s (0 = prove optimality)")
	solveCmd.Flags().StringVar(&solveXLSXPath, "xlsx", "", "also export the result to this xlsx file")
	_ = solveCmd.MarkFlagRequired("request")
}

// requestFile is the YAML layout of a request document
type requestFile struct {
	Weapon struct {
		ID    string `yaml:"id"`
		Class string `yaml:"class"`
	} `yaml:"weapon"`
	Skills []struct {
		Skill    string `yaml:"skill"`
		Weight   int    `yaml:"weight"`
		LevelCap int    `yaml:"level_cap"`
	} `yaml:"skills"`
}

func readRequest(path string) (*engine.Request, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var rf requestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}

	req := &engine.Request{
		Weapon: engine.WeaponFilter{
			ID:    gear.WeaponID(rf.Weapon.ID),
			Class: rf.Weapon.Class,
		},
	}
	for _, s := range rf.Skills {
		req.Skills = append(req.Skills, engine.SkillRequest{
			Skill:    gear.SkillID(s.Skill),
			Weight:   s.Weight,
			LevelCap: s.LevelCap,
		})
	}
	return req, nil
}

// openRepository builds the catalog repository from the flags: a Redis-backed
// one for --redis, otherwise an in-memory one seeded from the --catalog file.
func openRepository() (catalog.Repository, error) {
	switch {
	case solveRedisAddr != "" && solveCatalogPath != "":
		return nil, fmt.Errorf("--catalog and --redis are mutually exclusive")
	case solveRedisAddr != "":
		return newRedisRepository(solveRedisAddr)
	case solveCatalogPath != "":
		return newFileRepository(solveCatalogPath, solveSnapshotID)
	default:
		return nil, fmt.Errorf("one of --catalog or --redis is required")
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	req, err := readRequest(solveRequestPath)
	if err != nil {
		return err
	}

	repo, err := openRepository()
	if err != nil {
		return err
	}

	service, err := loadout.NewOrchestrator(&loadout.Config{
		Repository:  repo,
		Engine:      satmodel.New(),
		IDGenerator: idgen.NewUUID("solve"),
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	result, err := service.Optimize(ctx, &loadout.OptimizeInput{
		SnapshotID: solveSnapshotID,
		Request:    req,
		TimeLimit:  solveTimeLimit,
	})
	if err != nil {
		return err
	}

	snapshot, err := repo.GetSnapshot(ctx, catalog.GetSnapshotInput{SnapshotID: result.SnapshotID})
	if err != nil {
		return err
	}

	report := &output.ReportInput{
		Catalog: snapshot.Catalog,
		Result:  result,
		Request: req,
	}
	if err := output.WriteReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if solveXLSXPath != "" {
		if err := output.ExportXLSX(solveXLSXPath, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nexported %s\n", solveXLSXPath)
	}
	return nil
}
