package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blogboard",
	Short: "Blogboard serves a small blog with comments and bookmarks",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDatabase(config)
		if err != nil {
			return err
		}
		defer db.Close()
		m, err := NewModel(db, logger)
		if err != nil {
			return err
		}
		b := NewBlogBoard(config, m, logger)
		logger.Info("Starting server",
			zap.String("address", config.Server),
			zap.String("database", config.Database),
			zap.Int("posts", m.posts.Len()))
		return http.ListenAndServe(config.Server, b.Handler())
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every stored key to a zstd compressed backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDatabase(config)
		if err != nil {
			return err
		}
		defer db.Close()
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		n, err := exportDatabase(db, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		logger.Info("Export finished", zap.String("file", exportOut), zap.Int("records", n))
		return nil
	},
}

var importIn string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Restore a backup written by export",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDatabase(config)
		if err != nil {
			return err
		}
		defer db.Close()
		f, err := os.Open(importIn)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := importDatabase(db, f)
		if err != nil {
			return err
		}
		logger.Info("Import finished", zap.String("file", importIn), zap.Int("records", n))
		return nil
	},
}

func loadConfig() (*Config, error) {
	config := NewConfig()
	if err := config.Load(configPath); err != nil {
		return nil, err
	}
	return config, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "blogboard.jsonl.zst", "backup file to write")
	importCmd.Flags().StringVarP(&importIn, "in", "i", "blogboard.jsonl.zst", "backup file to read")

	rootCmd.AddCommand(serveCmd, exportCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
