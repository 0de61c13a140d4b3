package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teamforge/cmd/forge/tui"
	"teamforge/internal/agent"
	"teamforge/internal/compose"
	"teamforge/internal/config"
	"teamforge/internal/logging"
	"teamforge/internal/roster"
	"teamforge/internal/session"
	"teamforge/internal/trace"
)

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "teamforge - VALORANT team composition builder",
	Long: `teamforge queries a local player database, assembles a prompt for the
selected team submission type, and asks a remote hosted agent to build and
analyze a team composition.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err = logging.New(cfg.Logging)
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
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cfg, newGenerator(), logger)
	},
}

// seedCmd initializes the database and imports players from a CSV file.
var seedCmd = &cobra.Command{
	Use:   "seed <players.csv>",
	Short: "Create the player database and import records from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := roster.NewStore(cfg.Database.Path, logger)
		count, err := store.ImportCSV(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d players into %s\n", count, cfg.Database.Path)
		return nil
	},
}

// buildCmd runs one pipeline pass without the interactive surface.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate one team composition and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		teamType, err := resolveSubmissionType(buildType)
		if err != nil {
			return err
		}

		st := session.New()
		gen := newGenerator()

		out, err := gen.Generate(cmd.Context(), st.ID, teamType, buildConstraints)
		if err != nil {
			if compose.IsInputError(err) {
				return fmt.Errorf("cannot build this team: %v", err)
			}
			return err
		}
		st.Record(out.Prompt, out.Invocation)

		fmt.Println(out.Composition)

		if buildTrace {
			printTraceSummary(st)
		}
		return nil
	},
}

var (
	buildType        string
	buildConstraints string
	buildTrace       bool
)

// resolveSubmissionType accepts either the full submission type name or a
// unique case-insensitive prefix of it.
func resolveSubmissionType(input string) (roster.SubmissionType, error) {
	if input == "" {
		return "", fmt.Errorf("--type is required (one of: %s)", submissionTypeList())
	}
	needle := strings.ToLower(input)
	var match roster.SubmissionType
	for _, t := range roster.SubmissionTypes {
		name := strings.ToLower(string(t))
		if name == needle {
			return t, nil
		}
		if strings.HasPrefix(name, needle) {
			if match != "" {
				return "", fmt.Errorf("ambiguous submission type %q", input)
			}
			match = t
		}
	}
	if match == "" {
		return "", fmt.Errorf("unknown submission type %q (one of: %s)", input, submissionTypeList())
	}
	return match, nil
}

func submissionTypeList() string {
	names := make([]string, len(roster.SubmissionTypes))
	for i, t := range roster.SubmissionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func printTraceSummary(st *session.State) {
	result := trace.Reconcile(st.Trace)
	fmt.Println("\n--- Trace ---")
	if len(result.Steps) == 0 {
		fmt.Println("No trace information available.")
	}
	for _, step := range result.Steps {
		fmt.Printf("[%s] Trace Step %d (%s)\n", step.Section, step.Number, step.Phase)
		fmt.Println(step.Render())
	}
	if result.Dropped > 0 {
		fmt.Printf("(%d trace entries did not match any known field and were skipped)\n", result.Dropped)
	}

	fmt.Println("\n--- Citations ---")
	units := trace.FlattenCitations(st.Citations)
	if len(units) == 0 {
		fmt.Println("No citations available.")
	}
	for _, u := range units {
		fmt.Printf("Citation [%d]\n", u.Number)
		fmt.Println(u.Render())
	}
}

func newGenerator() *compose.Generator {
	return &compose.Generator{
		Store: roster.NewStore(cfg.Database.Path, logger),
		Invoker: agent.NewRuntimeClient(agent.Config{
			BaseURL: cfg.Agent.RuntimeEndpoint(),
			APIKey:  cfg.Agent.APIKey,
			Timeout: cfg.Agent.TimeoutDuration(),
			Logger:  logger,
		}),
		AgentID:      cfg.Agent.ID,
		AgentAliasID: cfg.Agent.AliasID,
		Logger:       logger,
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".teamforge/config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the player database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	buildCmd.Flags().StringVar(&buildType, "type", "", "team submission type")
	buildCmd.Flags().StringVar(&buildConstraints, "constraints", "", "additional constraints text")
	buildCmd.Flags().BoolVar(&buildTrace, "trace", false, "print the trace and citation summary")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(buildCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
