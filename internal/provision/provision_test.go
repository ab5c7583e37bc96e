package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desktop-setup/internal/catalog"
	"desktop-setup/internal/config"
	"desktop-setup/internal/executor"
	"desktop-setup/internal/fetch"
	"desktop-setup/internal/installer"
)

type recordingCloner struct{ dests []string }

func (c *recordingCloner) Clone(_ context.Context, _, dest string) error {
	c.dests = append(c.dests, dest)
	return nil
}

func newInstaller(t *testing.T) (*installer.Installer, *executor.Recorder, *recordingCloner, string) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	homes := t.TempDir()
	rec := &executor.Recorder{}
	cl := &recordingCloner{}
	in := &installer.Installer{
		Runner:  rec,
		Fetcher: fetch.Dry{},
		Cloner:  cl,
		Catalog: cat,
		Env:     config.Environment{PyenvRoot: "/opt/pyenv"},
		Home: func(u string) (string, error) {
			return filepath.Join(homes, u), nil
		},
		DryRun: true,
	}
	return in, rec, cl, homes
}

var alice = config.Invocation{BoxUser: "alice", GitName: "Alice Example", GitEmail: "alice@example.com"}

func TestFullPlanOrder(t *testing.T) {
	in, _, _, _ := newInstaller(t)

	var names []string
	for _, s := range FullPlan(in, alice) {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		StepUpdate, StepDeps, StepGit, StepEditor, StepLinter,
		StepPyenv, StepDirenv, StepVPN, StepProfile, StepUpdate,
	}, names)
}

func TestFullRunGitIdentityPrecedesEditor(t *testing.T) {
	in, rec, _, _ := newInstaller(t)

	summary := (&Runner{}).Execute(context.Background(), FullPlan(in, alice))
	require.True(t, summary.Success())

	lines := rec.Lines()
	name := slices.Index(lines, "git config --global user.name Alice Example")
	email := slices.Index(lines, "git config --global user.email alice@example.com")
	editor := slices.Index(lines, "apt-get install sublime-text")
	keyImport := slices.Index(lines, "apt-key add -")

	require.NotEqual(t, -1, name)
	require.NotEqual(t, -1, email)
	assert.Less(t, name, email)
	assert.Less(t, email, keyImport)
	assert.Less(t, email, editor)
}

func TestFullRunUpdatesSystemThreeTimes(t *testing.T) {
	in, rec, _, _ := newInstaller(t)

	summary := (&Runner{}).Execute(context.Background(), FullPlan(in, alice))
	require.True(t, summary.Success())

	lines := rec.Lines()
	var pairs []int
	for i := 0; i+1 < len(lines); i++ {
		if lines[i] == "apt-get update" && lines[i+1] == "apt-get upgrade" {
			pairs = append(pairs, i)
		}
	}
	require.Len(t, pairs, 3)
	assert.Equal(t, 3, countOf(lines, "apt-get update"))
	assert.Equal(t, 3, countOf(lines, "apt-get upgrade"))

	// First pair opens the run, last pair closes it
	assert.Equal(t, 0, pairs[0])
	assert.Equal(t, len(lines)-2, pairs[2])

	// Middle pair sits between the VPN repository registration and the VPN install
	repo := slices.Index(lines, "add-apt-repository deb https://repo.protonvpn.com/debian unstable main")
	install := slices.Index(lines, "apt-get install protonvpn")
	assert.Equal(t, repo+1, pairs[1])
	assert.Equal(t, pairs[1]+2, install)
}

func countOf(lines []string, want string) int {
	n := 0
	for _, l := range lines {
		if l == want {
			n++
		}
	}
	return n
}

func TestFullRunProfileUsesBoxUser(t *testing.T) {
	in, _, _, homes := newInstaller(t)
	in.DryRun = false
	require.NoError(t, os.MkdirAll(filepath.Join(homes, "alice"), 0755))

	summary := (&Runner{}).Execute(context.Background(), FullPlan(in, alice))

	// Editor settings fail (no bundled User dir), the profile still lands in alice's home
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, StepEditor, summary.FailedStep.Name)
	assert.FileExists(t, filepath.Join(homes, "alice", ".bashrc"))
}

func TestMissingPyenvRootAbortsRun(t *testing.T) {
	in, rec, cl, homes := newInstaller(t)
	in.Env.PyenvRoot = ""

	summary := (&Runner{}).Execute(context.Background(), FullPlan(in, alice))

	assert.True(t, summary.Aborted)
	assert.Equal(t, StepPyenv, summary.FailedStep.Name)
	assert.ErrorIs(t, summary.FailedStep.Err, installer.ErrMissingConfig)

	// Primary clone attempted, plugin clone not
	assert.Equal(t, []string{filepath.Join(homes, "alice", ".pyenv")}, cl.dests)

	// direnv, vpn, profile and the final update are skipped
	assert.Equal(t, 4, summary.Skipped)
	assert.NotContains(t, rec.Lines(), "apt-get install -y direnv")
	assert.Equal(t, 1, countOf(rec.Lines(), "apt-get update"))
}

func TestContinueOnErrorRunsEveryStep(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	steps := []Step{
		{Name: "a", Run: func(context.Context) error { ran = append(ran, "a"); return boom }},
		{Name: "b", Run: func(context.Context) error { ran = append(ran, "b"); return nil }},
	}

	summary := (&Runner{Policy: ContinueOnError}).Execute(context.Background(), steps)
	assert.Equal(t, []string{"a", "b"}, ran)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Completed)
	assert.False(t, summary.Aborted)
	assert.False(t, summary.Success())
	assert.ErrorIs(t, summary.FailedStep.Err, boom)
}

func TestAbortOnErrorSkipsRemaining(t *testing.T) {
	var ran []string
	steps := []Step{
		{Name: "a", Run: func(context.Context) error { ran = append(ran, "a"); return errors.New("boom") }},
		{Name: "b", Run: func(context.Context) error { ran = append(ran, "b"); return nil }},
		{Name: "c", Run: func(context.Context) error { ran = append(ran, "c"); return nil }},
	}

	var completed []string
	r := &Runner{
		Policy:         AbortOnError,
		OnStepComplete: func(res *StepResult) { completed = append(completed, res.Name) },
	}
	summary := r.Execute(context.Background(), steps)

	assert.Equal(t, []string{"a"}, ran)
	assert.Equal(t, []string{"a"}, completed)
	assert.Equal(t, 2, summary.Skipped)
	assert.Len(t, summary.Results, 3)
	assert.Equal(t, "run aborted", summary.Results[2].SkipReason)
}

func TestCancelledContextSkipsSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := []Step{
		{Name: "a", Run: func(context.Context) error { cancel(); return nil }},
		{Name: "b", Run: func(context.Context) error { t.Fatal("must not run"); return nil }},
	}

	summary := (&Runner{}).Execute(ctx, steps)
	assert.True(t, summary.Aborted)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.Skipped)
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "continue-on-error", ContinueOnError.String())
	assert.Equal(t, "abort-on-error", AbortOnError.String())
}
