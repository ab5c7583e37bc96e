package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desktop-setup/internal/catalog"
	"desktop-setup/internal/config"
	"desktop-setup/internal/executor"
	"desktop-setup/internal/fetch"
	"desktop-setup/internal/gitclone"
	"desktop-setup/internal/installer"
	"desktop-setup/internal/report"
)

type cliResult struct {
	output string
	err    error
	rec    *executor.Recorder
	built  int
}

// runCLI executes the root command with a dry installer backed by a recorder.
func runCLI(t *testing.T, fail func(executor.Command) error, args ...string) cliResult {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	res := cliResult{rec: &executor.Recorder{Fail: fail}}
	homes := t.TempDir()

	orig := newInstaller
	newInstaller = func() (*installer.Installer, error) {
		res.built++
		return &installer.Installer{
			Runner:  res.rec,
			Fetcher: fetch.Dry{},
			Cloner:  gitclone.Dry{},
			Catalog: cat,
			Env:     config.Environment{PyenvRoot: "/opt/pyenv"},
			Home:    func(u string) (string, error) { return filepath.Join(homes, u), nil },
			DryRun:  true,
		}, nil
	}
	t.Cleanup(func() {
		newInstaller = orig
		debug, dryRun, failFast = false, false, false
		reportPath, envFile = "", ""
		userConfig = installer.DefaultUserConfigSource
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	res.err = rootCmd.ExecuteContext(context.Background())
	res.output = out.String()
	return res
}

func TestMissingArgumentsPrintUsageOnly(t *testing.T) {
	for _, args := range [][]string{{}, {"alice"}, {"alice", "Alice Example"}} {
		res := runCLI(t, nil, args...)

		require.NoError(t, res.err, args)
		assert.Contains(t, res.output, usageMessage)
		assert.Contains(t, res.output, "Usage:")
		assert.Zero(t, res.built, "no installer may be built for %v", args)
		assert.Empty(t, res.rec.Commands())
	}
}

func TestTooManyArguments(t *testing.T) {
	res := runCLI(t, nil, "alice", "Alice Example", "alice@example.com", "extra")
	require.Error(t, res.err)
	assert.Zero(t, res.built)
}

func TestFullRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	res := runCLI(t, nil, "--report", out, "alice", "Alice Example", "alice@example.com")
	require.NoError(t, res.err)

	lines := res.rec.Lines()
	assert.Equal(t, "apt-get update", lines[0])
	assert.Contains(t, lines, "git config --global user.name Alice Example")
	assert.Contains(t, lines, "git config --global user.email alice@example.com")
	assert.Equal(t, "apt-get upgrade", lines[len(lines)-1])

	rep, err := report.Load(out)
	require.NoError(t, err)
	assert.True(t, rep.Success)
	assert.False(t, rep.InProgress)
	require.Len(t, rep.Steps, 10)
	assert.Equal(t, "update", rep.Steps[0].Name)
	assert.Equal(t, "profile", rep.Steps[8].Name)
}

func TestReportCheckpointsEachStep(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")

	// By the time git runs, update and deps have been checkpointed
	var seen *report.Report
	fail := func(c executor.Command) error {
		if c.Name == "git" && seen == nil {
			rep, err := report.Load(out)
			if err != nil {
				return err
			}
			seen = rep
		}
		return nil
	}

	res := runCLI(t, fail, "--report", out, "alice", "Alice Example", "alice@example.com")
	require.NoError(t, res.err)
	require.NotNil(t, seen)
	assert.True(t, seen.InProgress)
	assert.False(t, seen.Success)
	require.Len(t, seen.Steps, 2)
	assert.Equal(t, "update", seen.Steps[0].Name)
	assert.Equal(t, "deps", seen.Steps[1].Name)
}

func TestReportSubcommandPrintsSavedRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	fail := func(c executor.Command) error {
		if c.Name == "git" {
			return errors.New("git not installed")
		}
		return nil
	}
	res := runCLI(t, fail, "--fail-fast", "--report", out, "alice", "Alice Example", "alice@example.com")
	require.Error(t, res.err)

	res = runCLI(t, nil, "report", out)
	require.NoError(t, res.err)
	assert.Contains(t, res.output, "Run finished")
	assert.Contains(t, res.output, "git not installed")
	assert.Contains(t, res.output, "run aborted")
	assert.Contains(t, res.output, "2 completed, 1 failed, 7 skipped")
	assert.Zero(t, res.built)
}

func TestReportSubcommandMissingFile(t *testing.T) {
	res := runCLI(t, nil, "report", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "read report")
}

func TestFailFastStopsAfterFirstFailure(t *testing.T) {
	fail := func(c executor.Command) error {
		if c.String() == "apt-get upgrade" {
			return errors.New("dpkg interrupted")
		}
		return nil
	}

	res := runCLI(t, fail, "--fail-fast", "alice", "Alice Example", "alice@example.com")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "1 of 10 steps failed, 9 skipped")
	assert.Equal(t, []string{"apt-get update", "apt-get upgrade"}, res.rec.Lines())
}

func TestContinueOnErrorIsDefault(t *testing.T) {
	fail := func(c executor.Command) error {
		if c.Name == "git" {
			return errors.New("git not installed")
		}
		return nil
	}

	res := runCLI(t, fail, "alice", "Alice Example", "alice@example.com")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "1 of 10 steps failed, 0 skipped")
	assert.Contains(t, res.rec.Lines(), "apt-get install protonvpn")
}

func TestGitSubcommand(t *testing.T) {
	res := runCLI(t, nil, "git", "Bob Example", "bob@example.com")
	require.NoError(t, res.err)
	assert.Equal(t, []string{
		"git config --global user.name Bob Example",
		"git config --global user.email bob@example.com",
	}, res.rec.Lines())
}

func TestSubcommandArgumentCounts(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr bool
	}{
		{[]string{"update"}, false},
		{[]string{"update", "extra"}, true},
		{[]string{"editor"}, true},
		{[]string{"profile", "bob"}, false},
		{[]string{"pyenv", "bob"}, false},
		{[]string{"git", "Bob"}, true},
	}
	for _, tt := range tests {
		res := runCLI(t, nil, tt.args...)
		if tt.wantErr {
			assert.Error(t, res.err, tt.args)
			assert.Zero(t, res.built, tt.args)
		} else {
			assert.NoError(t, res.err, tt.args)
		}
	}
}
