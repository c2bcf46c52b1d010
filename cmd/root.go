package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"javacheck/internal/analyzer"
	"javacheck/internal/config"
	"javacheck/internal/telemetry"
	"javacheck/internal/watcher"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	formatFlag         string
	watchFlag          bool
	configFlag         string
	generateConfigFlag bool
	metricsFileFlag    string
	outputFlag         string
	verboseFlag        bool
)

// errLowScore makes the process exit non-zero without printing anything
// beyond the report.
var errLowScore = errors.New("quality score below fair threshold")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "javacheck [files or directories]",
	Short: "A Java analyzer that finds refactoring patterns",
	Long: `javacheck builds an AST for every Java file it is given and reports
refactoring patterns such as classic getters and setters, hybrid
constructors, nested loops and string concatenation in loops.

Examples:
  javacheck .                              # Analyze current directory
  javacheck src/main/java/App.java         # Analyze specific files
  javacheck --format=json .                # Output results in JSON format
  javacheck --config=.javacheck.yml .      # Use custom config
  javacheck --generate-config              # Generate sample config file
  javacheck dump App.java                  # Print the AST of a file
  javacheck decompose App.java             # Split classes into cohesive groups`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalysis,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errLowScore) {
			color.Red("Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (console, json)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch mode for development")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file")
	rootCmd.Flags().BoolVar(&generateConfigFlag, "generate-config", false, "Generate sample configuration file")
	rootCmd.Flags().StringVar(&metricsFileFlag, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the report to this file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output and debug logging")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	if generateConfigFlag {
		return generateConfig()
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if outputFlag != "" {
		cfg.Output.OutputFile = outputFlag
	}
	if metricsFileFlag != "" {
		cfg.Output.MetricsFile = metricsFileFlag
	}
	if verboseFlag {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	logger := newLogger(cfg.Output.Verbose)
	engine := analyzer.NewAnalyzerWithConfig(cfg, analyzer.WithLogger(logger), analyzer.WithMetrics(telemetry.New()))

	if watchFlag {
		return runWatch(cmd.Context(), cfg, engine, logger, args)
	}

	var javaFiles []string
	for _, arg := range args {
		files, err := collectJavaFiles(arg, cfg.Files)
		if err != nil {
			color.Red("Error collecting files from %s: %v\n", arg, err)
			continue
		}
		javaFiles = append(javaFiles, files...)
	}

	if len(javaFiles) == 0 {
		color.Yellow("No Java files found to analyze\n")
		return nil
	}

	if cfg.Output.Verbose {
		color.Cyan("Analyzing %d Java files with %d detectors...\n", len(javaFiles), engine.GetDetectorCount())
		if configFlag != "" {
			color.Cyan("Using configuration: %s\n", configFlag)
		}
		color.Cyan("Enabled categories: %s\n\n", strings.Join(cfg.Analysis.EnabledCategories, ", "))
	} else if cfg.Output.Format != "json" {
		color.Cyan("Analyzing %d Java files...\n\n", len(javaFiles))
	}

	score, err := analyzeAndReport(cmd.Context(), cfg, engine, javaFiles)
	if err != nil {
		return err
	}
	if score < cfg.Analysis.ScoreThresholds.Fair {
		return errLowScore
	}
	return nil
}

// analyzeAndReport runs one analysis pass and emits the report and the
// metrics textfile. It returns the quality score.
func analyzeAndReport(ctx context.Context, cfg *config.Config, engine *analyzer.Analyzer, files []string) (int, error) {
	result, err := engine.AnalyzeFiles(ctx, files)
	if err != nil {
		return 0, err
	}

	report, err := analyzer.NewReportGeneratorWithConfig(cfg).Generate(result)
	if err != nil {
		return 0, err
	}

	if cfg.Output.OutputFile != "" {
		if err := writeReportToFile(report, cfg.Output.OutputFile); err != nil {
			return 0, fmt.Errorf("failed to write report to file: %w", err)
		}
		color.Green("Report saved to: %s\n", cfg.Output.OutputFile)
	} else {
		fmt.Print(report)
	}

	if cfg.Output.MetricsFile != "" {
		if err := engine.Metrics().WriteToTextfile(cfg.Output.MetricsFile); err != nil {
			return 0, err
		}
	}
	return result.QualityScore, nil
}

func runWatch(ctx context.Context, cfg *config.Config, engine *analyzer.Analyzer, logger *slog.Logger, paths []string) error {
	fw, err := watcher.NewFileWatcher(cfg, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	color.Cyan("Watching %s for changes (Ctrl+C to stop)\n", strings.Join(paths, ", "))
	err = fw.Watch(ctx, paths, func(ctx context.Context, files []string) error {
		existing := files[:0]
		for _, f := range files {
			if _, err := os.Stat(f); err == nil {
				existing = append(existing, f)
			}
		}
		if len(existing) == 0 {
			return nil
		}
		color.Cyan("\nChanged: %s\n", strings.Join(existing, ", "))
		_, err := analyzeAndReport(ctx, cfg, engine, existing)
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func writeReportToFile(report, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, []byte(report), 0644)
}

func generateConfig() error {
	configPath := ".javacheck.yml"
	if err := config.GenerateConfig(configPath); err != nil {
		return fmt.Errorf("failed to generate config file: %w", err)
	}
	color.Green("Generated sample configuration file: %s\n", configPath)
	color.Cyan("Edit this file to customize javacheck behavior\n")
	color.Cyan("Run 'javacheck --config=%s .' to use it\n", configPath)
	return nil
}

// collectJavaFiles finds the Java files under path selected by the file
// patterns. A path naming a single file is taken as given.
func collectJavaFiles(path string, files config.FilesConfig) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var javaFiles []string
	err = filepath.WalkDir(path, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if filePath != path && files.ExcludesDir(filePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if files.ShouldAnalyze(filePath) {
			javaFiles = append(javaFiles, filePath)
		}
		return nil
	})

	return javaFiles, err
}
