package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/reaandrew/rewritestats/core"
	"github.com/reaandrew/rewritestats/metrics"
	"github.com/reaandrew/rewritestats/parsers"
	"github.com/reaandrew/rewritestats/reporters"
	"github.com/reaandrew/rewritestats/repositories"
	"github.com/reaandrew/rewritestats/utils"
	"github.com/spf13/cobra"
)

// Cli represents the command-line interface
type Cli struct {
	reportFormat string
	outputDir    string
	strict       bool
	includes     []string
	excludes     []string
	configPath   string
	queriesPath  string
	dbPath       string
	historyDB    string
	noHistory    bool
	historyLimit int
}

// Execute sets up and runs the root command
func (cli *Cli) Execute() error {
	rootCmd := &cobra.Command{
		Use:   "rewritestats",
		Short: "rewritestats computes pointwise rewrite success rates from build logs.",
	}

	rootCmd.AddCommand(cli.createMetricsCommand())
	rootCmd.AddCommand(cli.createHistoryCommand())

	return rootCmd.Execute()
}

// createMetricsCommand creates the 'metrics' subcommand with its flags
func (cli *Cli) createMetricsCommand() *cobra.Command {
	metricsCmd := &cobra.Command{
		Use:     "metrics <POINTWISE_LOG> <UNMODIFIED_LOG>",
		Short:   "Compare a pointwise-rewrite build log against an unmodified baseline log.",
		Version: Version,
		Args:    cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cli.runMetrics(args[0], args[1])
		},
	}

	metricsCmd.Flags().StringVar(&cli.reportFormat, "report", "text", "Report format (supported: text, json, xlsx)")
	metricsCmd.Flags().StringVar(&cli.outputDir, "output-dir", ".", "Directory for generated report files")
	metricsCmd.Flags().BoolVar(&cli.strict, "strict", false, "Require both logs to cover the same function identifiers")
	metricsCmd.Flags().StringArrayVar(&cli.includes, "include", nil, "Only count functions matching this glob (repeatable)")
	metricsCmd.Flags().StringArrayVar(&cli.excludes, "exclude", nil, "Skip functions matching this glob (repeatable)")
	metricsCmd.Flags().StringVar(&cli.configPath, "config", "", "TOML file with pass-rate thresholds")
	metricsCmd.Flags().StringVar(&cli.queriesPath, "queries", "", "YAML file with SQL summary queries")
	metricsCmd.Flags().StringVar(&cli.dbPath, "db", "", "Path for the per-function SQLite database (default: temp file)")
	metricsCmd.Flags().StringVar(&cli.historyDB, "history-db", DefaultHistoryDB, "Path to the run history database")
	metricsCmd.Flags().BoolVar(&cli.noHistory, "no-history", false, "Do not record this run in the history database")

	return metricsCmd
}

func (cli *Cli) runMetrics(pointwiseLogPath string, unmodifiedLogPath string) {
	queries := core.SqlQueries{}
	if cli.queriesPath != "" {
		loaded, err := core.LoadSqlQueries(cli.queriesPath)
		if err != nil {
			log.Fatal(err)
		}
		queries = loaded
	}

	var thresholds core.Thresholds
	if cli.configPath != "" {
		loaded, err := core.LoadThresholds(cli.configPath)
		if err != nil {
			log.Fatal(err)
		}
		thresholds = loaded
	}

	dbPath := cli.dbPath
	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), utils.GenerateRandomFilename("db"))
	}

	reporter, err := reporters.CreateReporter(cli.reportFormat, cli.outputDir, queries, dbPath)
	if err != nil {
		log.Fatal(err)
	}

	parser, err := parsers.NewBuildLogParser(cli.includes, cli.excludes)
	if err != nil {
		log.Fatal(err)
	}

	progress := utils.NewBarProgressReporter(2, "Parsing build logs")
	pointwise, err := parser.ParseFile(pointwiseLogPath)
	if err != nil {
		log.Fatal(err)
	}
	progress.Increment()

	unmodified, err := parser.ParseFile(unmodifiedLogPath)
	if err != nil {
		log.Fatal(err)
	}
	progress.Increment()

	summary, err := metrics.Aggregate(pointwise, unmodified, metrics.Options{Strict: cli.strict})
	if err != nil {
		log.Fatal(err)
	}

	repository, err := repositories.NewSqliteFunctionRepository(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer repository.Close()

	if err := repository.Store(metrics.Records(pointwise, unmodified)); err != nil {
		log.Fatalf("Error storing function records: %v", err)
	}

	if err := reporter.Report(summary, repository); err != nil {
		log.Fatalf("Error generating report: %v", err)
	}

	if !cli.noHistory {
		cli.recordRun(summary)
	}

	if err := thresholds.Check(summary); err != nil {
		log.Fatalf("Threshold violated: %v", err)
	}
}

func (cli *Cli) recordRun(summary *core.Summary) {
	history, err := repositories.NewBoltRunRepository(cli.historyDB)
	if err != nil {
		log.Fatal(err)
	}
	defer history.Close()

	if err := history.AppendRun(summary); err != nil {
		log.Fatalf("Error recording run history: %v", err)
	}
}

// createHistoryCommand creates the 'history' subcommand
func (cli *Cli) createHistoryCommand() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List previous metric runs, most recent first.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			history, err := repositories.NewBoltRunRepository(cli.historyDB)
			if err != nil {
				log.Fatal(err)
			}
			defer history.Close()

			runs, err := history.ListRuns(cli.historyLimit)
			if err != nil {
				log.Fatal(err)
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return
			}

			for _, run := range runs {
				fmt.Printf("%s  %s  pointwise %d/%d (%.1f%%)  unmodified %d/%d (%.1f%%)  improved %d  broke %d\n",
					run.GeneratedAt.Format("2006-01-02 15:04:05"), run.RunID,
					run.PointwisePassed, run.TotalFunctions, run.PointwisePct,
					run.UnmodifiedPassed, run.TotalFunctions, run.UnmodifiedPct,
					len(run.Improved), len(run.Broke))
			}
		},
	}

	historyCmd.Flags().StringVar(&cli.historyDB, "history-db", DefaultHistoryDB, "Path to the run history database")
	historyCmd.Flags().IntVar(&cli.historyLimit, "limit", 10, "Maximum number of runs to list (0 for all)")

	return historyCmd
}
