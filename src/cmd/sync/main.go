package main

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/trade-journal/src/config"
	"github.com/jiaming2012/trade-journal/src/eventservices"
	"github.com/jiaming2012/trade-journal/src/ingest"
	"github.com/jiaming2012/trade-journal/src/logger"
	"github.com/jiaming2012/trade-journal/src/positions"
	"github.com/jiaming2012/trade-journal/src/sheets"
	"github.com/jiaming2012/trade-journal/src/utils"
)

type RunArgs struct {
	ConfigPath string
	EnvDir     string
	GoEnv      string
	SourceDir  string
}

type RunResult struct {
	Processed     []string
	Failed        []string
	ClosedTrades  int
	OpenPositions int
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/sync/main.go --config config.yaml",
	Short: "Import new broker exports and republish the trade journal sheets",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		envDir, err := cmd.Flags().GetString("env-dir")
		if err != nil {
			log.Fatalf("error getting env-dir: %v", err)
		}

		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		sourceDir, err := cmd.Flags().GetString("source-dir")
		if err != nil {
			log.Fatalf("error getting source-dir: %v", err)
		}

		result, err := Run(RunArgs{
			ConfigPath: configPath,
			EnvDir:     envDir,
			GoEnv:      goEnv,
			SourceDir:  sourceDir,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		log.Infof("Done: %d files processed, %d failed, %d closed trades, %d open positions",
			len(result.Processed), len(result.Failed), result.ClosedTrades, result.OpenPositions)
	},
}

func Run(args RunArgs) (RunResult, error) {
	ctx := context.Background()

	if err := utils.InitEnvironmentVariables(args.EnvDir, args.GoEnv); err != nil {
		return RunResult{}, fmt.Errorf("failed to initialize environment variables: %w", err)
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return RunResult{}, err
	}

	if args.SourceDir != "" {
		cfg.SourceDir = args.SourceDir
	}

	if err := cfg.RequireSourceDir(); err != nil {
		return RunResult{}, fmt.Errorf("set source_dir in the config or pass --source-dir: %w", err)
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return RunResult{}, err
	}

	files, err := ingest.NewFiles(cfg.SourceDir, cfg.ProcessedFilesLog)
	if err != nil {
		return RunResult{}, err
	}

	log.Infof("found %d new export files in %s", len(files), cfg.SourceDir)

	srv, err := sheets.NewClientFromEnv(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to initialize google sheets: %w", err)
	}

	store := sheets.NewStore(srv, cfg.Sheets.SpreadsheetId)

	result, err := eventservices.SyncJournal(ctx, store, cfg, files)
	if errors.Is(err, positions.ErrNoTrades) {
		log.Info("no trades to process")
		return RunResult{}, nil
	}

	if err != nil {
		return RunResult{}, err
	}

	if err := ingest.MarkProcessed(cfg.ProcessedFilesLog, result.Processed); err != nil {
		return RunResult{}, err
	}

	return RunResult{
		Processed:     result.Processed,
		Failed:        result.Failed,
		ClosedTrades:  len(result.Positions.ClosedTrades),
		OpenPositions: len(result.Positions.OpenPositions),
	}, nil
}

func main() {
	runCmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the YAML config file")
	runCmd.PersistentFlags().String("env-dir", ".", "Directory holding the .env.<go-env> files")
	runCmd.PersistentFlags().StringP("go-env", "e", "development", "Golang environment")
	runCmd.PersistentFlags().StringP("source-dir", "s", "", "Folder of broker exports. Overrides source_dir in the config file.")

	cobra.CheckErr(runCmd.Execute())
}
