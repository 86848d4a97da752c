package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recsweep/recsweep/internal/aggregate"
	"github.com/recsweep/recsweep/internal/config"
	"github.com/recsweep/recsweep/internal/logging"
	"github.com/recsweep/recsweep/internal/progress"
	"github.com/recsweep/recsweep/internal/records"
	"github.com/recsweep/recsweep/internal/selection"
	"github.com/recsweep/recsweep/internal/source"
	"github.com/recsweep/recsweep/internal/trash"
	"github.com/recsweep/recsweep/internal/users"
	"github.com/recsweep/recsweep/internal/zoom"
)

var (
	// Version information - will be set during build
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	verbose    bool
	demoMode   bool

	// Search flags
	fromDate    string
	toDate      string
	sourceName  string
	query       string
	pageSize    int
	ownerFilter string
	topicFilter string
	autoDelete  string
	groupView   bool
	jsonOutput  bool

	// Trash flags
	selectKeys []string
	selectAll  bool
	assumeYes  bool
)

const dateLayout = "2006-01-02"

// buildRootCommand creates and configures the root command
func buildRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recsweep",
		Short: "A CLI tool to find and bulk-trash Zoom recordings",
		Long: `recsweep aggregates call, meeting and contact-center recording
metadata from the Zoom API into one unified view, and bulk-moves
selected recordings to the trash.

This tool helps you:
- Search recording metadata across phone, meetings and contact center
- Filter by date range, free text, owner and auto-delete status
- Group results by owner and review them before acting
- Trash selected recordings in one sequential, progress-reported batch`,
		Run: func(cmd *cobra.Command, args []string) {
			configPath := "config.yaml"
			if configFile != "" {
				configPath = configFile
			}

			// Try to load configuration to provide helpful feedback
			_, err := config.LoadConfig(configPath)
			if err != nil {
				cmd.Printf("⚠️  Configuration Issue Detected\n\n")

				if strings.Contains(err.Error(), "no such file or directory") || strings.Contains(err.Error(), "cannot find the file") || strings.Contains(err.Error(), "failed to read config file") {
					cmd.Printf("Configuration file '%s' not found.\n\n", configPath)
					cmd.Printf("To get started:\n")
					cmd.Printf("1. Run 'recsweep config' to see configuration structure\n")
					cmd.Printf("2. Copy config.example.yaml to config.yaml\n")
					cmd.Printf("3. Edit config.yaml with your Zoom credentials\n")
					cmd.Printf("4. Run 'recsweep search' to list recordings\n\n")
				} else {
					cmd.Printf("Configuration error: %v\n\n", err)
					cmd.Printf("To fix this:\n")
					cmd.Printf("1. Run 'recsweep config' to see the correct configuration structure\n")
					cmd.Printf("2. Check your config file for syntax errors or missing required fields\n")
					cmd.Printf("3. Ensure all required Zoom API credentials are provided\n\n")
				}

				hasEnvCreds := os.Getenv("ZOOM_ACCOUNT_ID") != "" &&
					os.Getenv("ZOOM_CLIENT_ID") != "" &&
					os.Getenv("ZOOM_CLIENT_SECRET") != ""

				if hasEnvCreds {
					cmd.Printf("✅ Zoom credentials found in environment variables.\n")
					cmd.Printf("You can run 'recsweep search' without a config file.\n\n")
				} else {
					cmd.Printf("💡 Alternative: Set environment variables instead of using a config file:\n")
					cmd.Printf("   export ZOOM_ACCOUNT_ID='your-account-id'\n")
					cmd.Printf("   export ZOOM_CLIENT_ID='your-client-id'\n")
					cmd.Printf("   export ZOOM_CLIENT_SECRET='your-client-secret'\n\n")
					cmd.Printf("💡 Or try demo mode, no credentials needed: recsweep search --demo\n\n")
				}

				cmd.Printf("For detailed help: recsweep config\n")
				cmd.Printf("For general usage: recsweep --help\n")
				return
			}

			cmd.Printf("Configuration OK. Run 'recsweep search' to list recordings.\n")
		},
	}

	// Add subcommands
	rootCmd.AddCommand(createSearchCommand())
	rootCmd.AddCommand(createTrashCommand())
	rootCmd.AddCommand(createUsersCommand())
	rootCmd.AddCommand(createCountsCommand())
	rootCmd.AddCommand(createVersionCommand())
	rootCmd.AddCommand(createConfigCommand())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file path (default: config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "demo mode: synthetic data, no credentials or API calls")

	return rootCmd
}

// addSearchFlags registers the flags shared by search and trash
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fromDate, "from", "", "start of date range, YYYY-MM-DD (default: 30 days ago)")
	cmd.Flags().StringVar(&toDate, "to", "", "end of date range, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&sourceName, "source", "phone", "recording source: phone, meetings or cc")
	cmd.Flags().StringVar(&query, "query", "", "free-text filter matched against names, numbers, topics and owners")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "upstream page size, 1-300 (overrides config)")
	cmd.Flags().StringVar(&ownerFilter, "owner-filter", "", "filter meetings by owner email substring")
	cmd.Flags().StringVar(&topicFilter, "topic-filter", "", "filter meetings by topic substring")
	cmd.Flags().StringVar(&autoDelete, "auto-delete", "", "filter meetings by auto-delete status: true or false (default: both)")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !records.Source(sourceName).Valid() {
			return fmt.Errorf("invalid source %q: must be phone, meetings or cc", sourceName)
		}
		if pageSize < 0 || pageSize > 300 {
			return fmt.Errorf("page-size must be between 1 and 300, got: %d", pageSize)
		}
		if autoDelete != "" && autoDelete != "true" && autoDelete != "false" {
			return fmt.Errorf("auto-delete must be true or false, got: %q", autoDelete)
		}
		if _, _, err := parseDateRange(); err != nil {
			return err
		}
		return nil
	}
}

// createSearchCommand creates the search subcommand
func createSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search recording metadata across sources",
		Long: `Fetch recording metadata for one source over a date range,
normalize it into the unified shape, and print the filtered results.
Per-user fetch failures on the meetings source are reported alongside
the records that did load, never as a whole-search failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := setupEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			res, err := runSearch(ctx, env)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd, res)
			}
			printResult(cmd, res)
			return nil
		},
	}
	addSearchFlags(cmd)
	cmd.Flags().BoolVar(&groupView, "group", false, "group results by owner")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	return cmd
}

// createTrashCommand creates the trash subcommand
func createTrashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Search, select and bulk-trash recordings",
		Long: `Run a search, mark recordings by selection key (or all of them),
review the pending list, and move them to the trash one at a time.
A failed item is counted and reported but never aborts the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := setupEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()
			return runTrash(ctx, cmd, env)
		},
	}
	addSearchFlags(cmd)
	cmd.Flags().StringArrayVar(&selectKeys, "select", nil, "selection key of a recording to trash (repeatable)")
	cmd.Flags().BoolVar(&selectAll, "all", false, "select every record in the search result")
	cmd.Flags().BoolVar(&assumeYes, "yes", false, "skip the confirmation prompt")
	return cmd
}

// createUsersCommand creates the users debug subcommand
func createUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List active account users",
		Long:  "Display the active users the meetings search fans out over, for debugging empty results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := setupEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			list, err := env.agg.ListUsers(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("%d active users\n", len(list))
			for _, u := range list {
				name := u.DisplayName
				if name == "" {
					name = u.FirstName + " " + u.LastName
				}
				cmd.Printf("  %-40s %s (%s)\n", u.Email, strings.TrimSpace(name), u.ID)
			}
			return nil
		},
	}
}

// createCountsCommand creates the per-user counts debug subcommand
func createCountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Show per-user meeting recording counts",
		Long:  "Fan out over active users and report each user's meeting recording count over the date range, for debugging which users contribute results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := setupEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			from, to, err := parseDateRange()
			if err != nil {
				return err
			}
			counts, err := env.agg.UserCounts(ctx, from, to)
			if err != nil {
				return err
			}
			for _, c := range counts.Counts {
				cmd.Printf("  %-40s %d meetings\n", c.Email, c.Meetings)
			}
			if len(counts.Errors) > 0 {
				cmd.Printf("\n%d users failed:\n", len(counts.Errors))
				for _, e := range counts.Errors {
					cmd.Printf("  %s: %s\n", e.SubjectLabel, e.Message)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fromDate, "from", "", "start of date range, YYYY-MM-DD (default: 30 days ago)")
	cmd.Flags().StringVar(&toDate, "to", "", "end of date range, YYYY-MM-DD (default: today)")
	return cmd
}

// createVersionCommand creates the version subcommand
func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version, commit, and build information for recsweep",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("recsweep version %s\n", version)
			cmd.Printf("Commit: %s\n", commit)
			cmd.Printf("Build date: %s\n", buildDate)
		},
	}
}

// createConfigCommand creates the config help subcommand
func createConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show configuration file structure and examples",
		Long:  "Display the required configuration file structure, authentication methods, environment variables, and comprehensive examples",
		Run: func(cmd *cobra.Command, args []string) {
			configHelp := `Configuration File Structure (config.yaml):

ZOOM API CONFIGURATION (Required unless demo mode):
==================================================
zoom:
  account_id: "your_zoom_account_id"       # Zoom Account ID from Server-to-Server OAuth app
  client_id: "your_zoom_client_id"         # Client ID from Server-to-Server OAuth app
  client_secret: "your_zoom_client_secret" # Client Secret from Server-to-Server OAuth app
  base_url: "https://api.zoom.us/v2"       # Zoom API base URL (default: https://api.zoom.us/v2)

# REQUIRED SCOPES: phone:read, recording:read, user:read, contact_center:read
# Trashing additionally requires: phone:write, recording:write
# Uses Server-to-Server OAuth (account-level access, no user tokens needed)

FETCH CONFIGURATION:
===================
fetch:
  page_size: 300                   # Upstream page size, 1-300 (default: 300)
  phone_max_pages: 20              # Page cap for phone recordings (default: 20)
  cc_max_pages: 50                 # Page cap for contact center recordings (default: 50)
  user_concurrency: 4              # Concurrent per-user meeting fetches (default: 4)
  retry_attempts: 3                # Max retry attempts for failed requests (default: 3)
  timeout_seconds: 30              # Request timeout in seconds (default: 30)

LOGGING CONFIGURATION:
=====================
logging:
  level: "info"                    # Log level: debug, info, warn, error (default: info)
  file: "./recsweep.log"           # Log file path (default: ./recsweep.log)
  console: true                    # Enable console output (default: true)
  json_format: false               # Use JSON log format (default: false)

ACTIVE USERS FILTERING (Optional):
=================================
active_users:
  file: "./active_users.txt"       # Path to allowlist file (empty = all users)
  check_enabled: true              # Enable user filtering (default: true)
  watch_file: true                 # Hot-reload the file on change (default: true)

# Allowlist file format (one email per line):
# john.doe@company.com
# jane.smith@company.com
# # Lines starting with # are comments

DEMO MODE (Optional):
====================
demo:
  enabled: false                   # Synthetic data, no credentials or API calls
  seed: 0                          # Generator seed, 0 = fixed default

ENVIRONMENT VARIABLES:
=====================

Required Zoom API credentials (override config file):
  ZOOM_ACCOUNT_ID     - Your Zoom account ID
  ZOOM_CLIENT_ID      - Your Zoom OAuth app client ID
  ZOOM_CLIENT_SECRET  - Your Zoom OAuth app client secret
  ZOOM_BASE_URL       - Zoom API base URL (optional)

Other settings:
  RECSWEEP_PAGE_SIZE  - Upstream page size
  RECSWEEP_DEMO       - Set to "true" for demo mode

EXAMPLE USAGE:
=============

1. Using configuration file:
   cp config.example.yaml config.yaml
   # Edit config.yaml with your credentials
   recsweep search --source phone --from 2026-08-01 --to 2026-08-28

2. Using environment variables:
   export ZOOM_ACCOUNT_ID="your-account-id"
   export ZOOM_CLIENT_ID="your-client-id"
   export ZOOM_CLIENT_SECRET="your-client-secret"
   recsweep search --source meetings

3. Searching and filtering:
   recsweep search --source meetings --query "quarterly" --owner-filter sales@
   recsweep search --source meetings --auto-delete true
   recsweep search --source cc --from 2026-08-01 --group

4. Trashing recordings:
   recsweep trash --source phone --query "spam" --all
   recsweep trash --source meetings --select "meetings|AbCdEf==|83921"

5. Demo mode (no credentials):
   recsweep search --demo --source phone
   recsweep trash --demo --source meetings --all --yes

6. Debug views:
   recsweep users
   recsweep counts --from 2026-08-01

TROUBLESHOOTING:
===============
- Ensure your Zoom app has Server-to-Server OAuth enabled
- Verify required scopes are granted for every source you search
- Check account_id matches your Zoom account (not user ID)
- Empty meetings results? Run 'recsweep users' and 'recsweep counts'
  to see which users the fan-out covers
`
			cmd.Print(configHelp)
		},
	}
}

// environment bundles everything a command needs after setup
type environment struct {
	cfg       *config.Config
	agg       *aggregate.Aggregator
	remover   trash.Remover
	allowlist *users.Allowlist
	logger    logging.Logger
}

func (e *environment) Close() {
	if e.allowlist != nil {
		e.allowlist.Close()
	}
	if e.logger != nil {
		e.logger.Close()
	}
}

// setupEnvironment loads configuration, initializes logging and wires the
// aggregator. In demo mode the provider client is never built.
func setupEnvironment(ctx context.Context) (*environment, error) {
	configPath := "config.yaml"
	if configFile != "" {
		configPath = configFile
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if !demoMode {
			return nil, err
		}
		// Demo mode runs without any config file
		cfg = &config.Config{}
	}
	if demoMode {
		cfg.Demo.Enabled = true
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if pageSize > 0 {
		cfg.Fetch.PageSize = pageSize
	}
	if cfg.Fetch.PageSize == 0 {
		cfg.Fetch.PageSize = 300
	}
	if cfg.Fetch.UserConcurrency == 0 {
		cfg.Fetch.UserConcurrency = 4
	}

	if err := logging.InitializeLogging(cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger := logging.GetDefaultLogger()

	env := &environment{cfg: cfg, logger: logger}

	if cfg.Demo.Enabled {
		demo := aggregate.NewDemoGenerator(cfg.Demo.Seed)
		env.agg = aggregate.New(nil, nil, nil, demo, logger)
		env.remover = demoRemover{}
		return env, nil
	}

	var allowlist *users.Allowlist
	if cfg.ActiveUsers.CheckEnabled && cfg.ActiveUsers.File != "" {
		allowlist, err = users.NewAllowlist(users.Config{
			FilePath:  cfg.ActiveUsers.File,
			WatchFile: cfg.ActiveUsers.WatchFile,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load active users list: %w", err)
		}
		env.allowlist = allowlist
	}

	auth := zoom.NewServerToServerAuth(cfg.Zoom)
	retryClient := zoom.NewRetryHTTPClient(zoom.HTTPClientConfigFromFetchConfig(cfg.Fetch))
	httpClient := zoom.NewAuthenticatedRetryClient(retryClient, auth)
	client := zoom.NewClient(httpClient, cfg.Zoom.BaseURL)

	phone := source.NewPhoneAdapter(client, cfg.Fetch.PageSize, cfg.Fetch.PhoneMaxPages)
	meetings := source.NewMeetingsAdapter(client, cfg.Fetch.PageSize, cfg.Fetch.UserConcurrency, allowlist)
	cc := source.NewCCAdapter(client, cfg.Fetch.PageSize, cfg.Fetch.CCMaxPages)

	env.agg = aggregate.New(phone, meetings, cc, nil, logger)
	env.remover = client
	return env, nil
}

// demoRemover satisfies the trash remover without an API behind it
type demoRemover struct{}

func (demoRemover) TrashPhoneRecording(ctx context.Context, recordingID string) error { return nil }
func (demoRemover) TrashMeetingRecording(ctx context.Context, meetingID string) error { return nil }

func parseDateRange() (time.Time, time.Time, error) {
	to := time.Now().UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Second)
	from := to.AddDate(0, 0, -30)

	if fromDate != "" {
		t, err := time.Parse(dateLayout, fromDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q: expected YYYY-MM-DD", fromDate)
		}
		from = t
	}
	if toDate != "" {
		t, err := time.Parse(dateLayout, toDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q: expected YYYY-MM-DD", toDate)
		}
		to = t.Add(24*time.Hour - time.Second)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date range: --to %s is before --from %s",
			to.Format(dateLayout), from.Format(dateLayout))
	}
	return from, to, nil
}

func searchParams() (aggregate.Params, error) {
	from, to, err := parseDateRange()
	if err != nil {
		return aggregate.Params{}, err
	}
	p := aggregate.Params{
		Source:     records.Source(sourceName),
		From:       from,
		To:         to,
		Query:      query,
		OwnerEmail: ownerFilter,
		Topic:      topicFilter,
	}
	switch autoDelete {
	case "true":
		v := true
		p.AutoDelete = &v
	case "false":
		v := false
		p.AutoDelete = &v
	}
	return p, nil
}

func runSearch(ctx context.Context, env *environment) (*source.Result, error) {
	p, err := searchParams()
	if err != nil {
		return nil, err
	}
	return env.agg.Search(ctx, p)
}

// runTrash performs the search, resolves the selection, confirms and runs
// the sequential trash batch.
func runTrash(ctx context.Context, cmd *cobra.Command, env *environment) error {
	if !selectAll && len(selectKeys) == 0 {
		return fmt.Errorf("nothing selected: pass --select <key> (repeatable) or --all")
	}

	res, err := runSearch(ctx, env)
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		cmd.Printf("No recordings matched the search. Nothing to trash.\n")
		return nil
	}

	sel := selection.New()
	if selectAll {
		keys := make([]string, 0, len(res.Records))
		for i := range res.Records {
			keys = append(keys, res.Records[i].SelectionKey())
		}
		sel.Apply(keys, true)
	} else {
		sel.Apply(selectKeys, true)
	}

	pending := sel.Pick(res.Records)
	if len(pending) == 0 {
		return fmt.Errorf("none of the selected keys matched the search result")
	}

	orch := trash.New(env.remover, env.logger)
	if err := orch.Confirm(pending); err != nil {
		return err
	}

	cmd.Printf("About to trash %d of %d recordings:\n", len(pending), len(res.Records))
	for _, r := range pending {
		cmd.Printf("  %s\n", describeRecord(&r))
	}
	if !assumeYes {
		cmd.Printf("\nProceed? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			orch.Cancel()
			cmd.Printf("Cancelled. Nothing was trashed.\n")
			return nil
		}
	}

	bar := progress.NewBar(len(pending), cmd.OutOrStdout())
	orch.SetObserver(func(p trash.Progress, item trash.ItemResult) {
		bar.Update(p.Done, item.Label)
	})

	summary, err := orch.Run(ctx, func(ctx context.Context, s trash.Summary) error {
		if env.cfg.Demo.Enabled {
			res.Records = trash.RemoveLocal(res.Records, s)
			return nil
		}
		// Re-fetch so the view reflects the provider's state
		refreshed, err := runSearch(ctx, env)
		if err != nil {
			return fmt.Errorf("trash batch finished but re-fetch failed: %w", err)
		}
		*res = *refreshed
		return nil
	})
	bar.Finish()
	sel.Clear()
	if err != nil {
		return err
	}

	if summary.Failures > 0 {
		cmd.Printf("⚠️  Trashed %d of %d recordings, %d failed:\n", summary.Successes, summary.Total, summary.Failures)
		for _, r := range summary.Results {
			if r.Err != nil {
				cmd.Printf("  %s: %v\n", r.Label, r.Err)
			}
		}
	} else {
		cmd.Printf("✅ Trashed %d recordings.\n", summary.Successes)
	}
	cmd.Printf("%d recordings remain in the current view.\n", len(res.Records))
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult renders the search result as a flat list or grouped by owner,
// with the filtered-vs-server status line and any per-unit errors.
func printResult(cmd *cobra.Command, res *source.Result) {
	if groupView {
		for _, g := range selection.GroupByOwner(res.Records, nil) {
			cmd.Printf("%s (%d)\n", g.OwnerName, g.Count)
			for _, r := range res.Records {
				if keyIn(r.SelectionKey(), g.MemberKeys) {
					cmd.Printf("  %s\n", describeRecord(&r))
				}
			}
		}
	} else {
		for i := range res.Records {
			cmd.Printf("%s\n", describeRecord(&res.Records[i]))
		}
	}

	cmd.Printf("\n%d records", res.TotalRecords)
	if res.ServerTotal > res.TotalRecords {
		cmd.Printf(" (of %d on the server)", res.ServerTotal)
	}
	if res.Incomplete {
		cmd.Printf(" [truncated at the page cap]")
	}
	cmd.Printf("\n")

	if len(res.Errors) > 0 {
		cmd.Printf("\n%d fetch errors:\n", len(res.Errors))
		for _, e := range res.Errors {
			cmd.Printf("  %s: %s\n", e.SubjectLabel, e.Message)
		}
	}
}

func describeRecord(r *records.UnifiedRecording) string {
	when := r.StartTime.Format("2006-01-02 15:04")
	dur := (time.Duration(r.Duration) * time.Second).String()
	var what string
	switch r.Source {
	case records.SourceMeetings:
		what = fmt.Sprintf("%s (%s)", r.Topic, r.OwnerEmail)
	case records.SourceContactCenter:
		what = fmt.Sprintf("%s -> %s [%s]", r.Caller.Name, r.AgentName, r.QueueName)
	default:
		what = fmt.Sprintf("%s (%s) -> %s (%s)", r.Caller.Name, r.Caller.Number, r.Callee.Name, r.Callee.Number)
	}
	return fmt.Sprintf("%-16s %8s  %-60s key=%s", when, dur, what, r.SelectionKey())
}

func keyIn(key string, keys []string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func main() {
	rootCmd := buildRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
