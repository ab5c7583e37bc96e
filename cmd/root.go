package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"desktop-setup/internal/catalog"
	"desktop-setup/internal/config"
	"desktop-setup/internal/executor"
	"desktop-setup/internal/fetch"
	"desktop-setup/internal/gitclone"
	"desktop-setup/internal/installer"
	"desktop-setup/internal/logger"
	"desktop-setup/internal/provision"
	"desktop-setup/internal/report"
)

// usageMessage is printed when the positional arguments are incomplete.
const usageMessage = "Username and email required."

var (
	// debug enables verbose logging via --debug.
	debug bool
	// dryRun prints every command instead of running it.
	dryRun bool
	// failFast switches the run policy to abort on the first failed step.
	failFast bool
	// reportPath, when set, receives a JSON report of the run.
	reportPath string
	// envFile is an optional dotenv file loaded before reading PYENV_ROOT.
	envFile string
	// userConfig is the bundled editor settings directory or archive.
	userConfig string
)

// rootCmd runs the full provisioning sequence.
var rootCmd = &cobra.Command{
	Use:   "desktop-setup <box-user> <git-name> <email>",
	Short: "Provision a Linux developer desktop",
	Long: `desktop-setup installs and configures a fixed set of developer tools:
build dependencies, git identity, Sublime Text with Package Control,
flake8, pyenv with pyenv-virtualenv, direnv, ProtonVPN and ~/.bashrc hooks.

Run it with root privileges. Package manager prompts are passed through
to the terminal.`,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,

	// Initialize logging before any command runs
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 3 {
			cmd.Println(usageMessage)
			cmd.Println(cmd.UsageString())
			return nil
		}

		inst, err := newInstaller()
		if err != nil {
			return err
		}
		inv := config.Invocation{BoxUser: args[0], GitName: args[1], GitEmail: args[2]}
		return runSteps(cmd.Context(), provision.FullPlan(inst, inv)...)
	},
}

// newInstaller builds the Installer from flags and the environment.
// Tests replace it to observe external calls.
var newInstaller = func() (*installer.Installer, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	env, err := config.LoadEnvironment(envFile)
	if err != nil {
		return nil, err
	}

	inst := &installer.Installer{
		Catalog:          cat,
		Env:              env,
		Home:             config.LookupHome,
		UserConfigSource: userConfig,
		DryRun:           dryRun,
	}
	if dryRun {
		inst.Runner = &executor.Recorder{Log: true}
		inst.Fetcher = fetch.Dry{}
		inst.Cloner = gitclone.Dry{}
	} else {
		inst.Runner = executor.NewExecRunner()
		inst.Fetcher = fetch.NewHTTPFetcher()
		inst.Cloner = gitclone.GoGit{Progress: os.Stdout}
	}
	return inst, nil
}

// runSteps executes steps under the selected policy, prints the summary,
// writes the optional report and fails when any step did not succeed.
func runSteps(ctx context.Context, steps ...provision.Step) error {
	policy := provision.ContinueOnError
	if failFast {
		policy = provision.AbortOnError
	}
	logger.Debug("[DEBUG] Running %d steps (%s)\n", len(steps), policy)

	runner := &provision.Runner{Policy: policy}
	if reportPath != "" {
		// Checkpoint after every step so an interrupted run still leaves a record
		progress := &provision.Summary{Policy: policy}
		runner.OnStepComplete = func(res *provision.StepResult) {
			progress.Add(res)
			rep := report.FromSummary(progress, time.Now())
			rep.InProgress, rep.Success = true, false
			if err := report.Save(reportPath, rep); err != nil {
				logger.Warn("[WARN] Could not checkpoint report after %s: %v\n", res.Name, err)
			}
		}
	}

	summary := runner.Execute(ctx, steps)
	provision.LogSummary(summary)

	if reportPath != "" {
		if err := report.Save(reportPath, report.FromSummary(summary, time.Now())); err != nil {
			return err
		}
		logger.Info("[INFO] Report written to %s\n", reportPath)
	}

	if !summary.Success() {
		return fmt.Errorf("%d of %d steps failed, %d skipped", summary.Failed, len(summary.Results), summary.Skipped)
	}
	return nil
}

// Execute registers flags and sub-commands and runs the CLI.
// It exits non-zero when the selected steps did not all succeed.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&dryRun, "dry-run", false, "Print commands instead of running them")
	flags.BoolVar(&failFast, "fail-fast", false, "Stop at the first failed step")
	flags.StringVar(&reportPath, "report", "", "Write a JSON report of the run to this path")
	flags.StringVar(&envFile, "env-file", "", "Load environment variables (e.g. PYENV_ROOT) from a dotenv file")
	flags.StringVar(&userConfig, "user-config", installer.DefaultUserConfigSource, "Editor settings directory or archive to install")
}
