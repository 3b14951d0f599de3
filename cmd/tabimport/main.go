package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/darianmavgo/tabimport/config"
	"github.com/darianmavgo/tabimport/importer"
	"github.com/darianmavgo/tabimport/sources"
	_ "github.com/darianmavgo/tabimport/sources/all"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options are the flags shared by every command.
type options struct {
	configPath string
	dbPath     string
	sourcePath string
	kind       string
	table      string
	sheet      int
	mode       string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tabimport",
		Short: "Load CSV, Excel, HTML or literal rows into a sqlite table",
		Long: `tabimport opens (or creates) a sqlite file, creates the target table if it
does not exist, reads every row of the source and appends them in one
transaction. Without --config the built-in IMDB CSV import is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			im, err := importer.New(cfg)
			if err != nil {
				return err
			}
			res, err := im.Run(cmd.Context())
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to insert")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d rows into %s (%s), %d rows total\n",
				res.RowsInserted, res.Table, cfg.Destination, res.RowsAfter)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", os.Getenv("TABIMPORT_CONFIG"), "HCL config file (default $TABIMPORT_CONFIG, else built-in)")
	flags.StringVar(&opts.dbPath, "db", "", "destination sqlite file")
	flags.StringVar(&opts.sourcePath, "source", "", "source file path")
	flags.StringVar(&opts.kind, "kind", "", "source kind; inferred from the --source extension when empty")
	flags.StringVar(&opts.table, "table", "", "destination table")
	flags.IntVar(&opts.sheet, "sheet", 0, "one-based worksheet or HTML table index")
	flags.StringVar(&opts.mode, "mode", "", `spreadsheet mode: "range" or "export"`)
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newSQLCmd(opts), newConfigCmd(opts), newDriversCmd())
	return rootCmd
}

func newSQLCmd(opts *options) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Write the SQL statements an import would run instead of running them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			im, err := importer.New(cfg)
			if err != nil {
				return err
			}

			if outputPath == "" {
				return im.WriteSQL(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			if err := im.WriteSQL(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close output file: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export <path>",
		Short: "Write the effective configuration as HCL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := config.Export(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	})
	return cmd
}

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List the registered source kinds",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range sources.Drivers() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// loadConfig reads the config file, or the built-in one, and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case opts.configPath != "":
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case opts.kind == "literal":
		cfg = config.BuiltinLiteral()
	default:
		cfg = config.Builtin()
		// The built-in source and columns describe the IMDB file only.
		if opts.sourcePath != "" || (opts.kind != "" && opts.kind != cfg.Source.Kind) {
			cfg.Columns = nil
			cfg.Source = &config.SourceBlock{}
		}
	}

	if opts.dbPath != "" {
		cfg.Destination = opts.dbPath
	}
	if opts.table != "" {
		cfg.Table = opts.table
	}
	if opts.sourcePath != "" || opts.kind != "" || opts.sheet != 0 || opts.mode != "" {
		if cfg.Source == nil {
			cfg.Source = &config.SourceBlock{}
		}
	}
	if cfg.Source != nil {
		if opts.sourcePath != "" {
			cfg.Source.Path = opts.sourcePath
			if opts.kind == "" {
				kind, err := kindFromPath(opts.sourcePath)
				switch {
				case err == nil:
					cfg.Source.Kind = kind
				case cfg.Source.Kind == "":
					return nil, err
				}
			}
		}
		if opts.kind != "" {
			cfg.Source.Kind = opts.kind
		}
		if opts.sheet != 0 {
			cfg.Source.Sheet = opts.sheet
		}
		if opts.mode != "" {
			cfg.Source.Mode = opts.mode
		}
	}
	return cfg, nil
}

func kindFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv", ".txt":
		return "csv", nil
	case ".xlsx", ".xlsm":
		return "excel", nil
	case ".html", ".htm":
		return "html", nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

func main() {
	_ = godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
