// Package testutil holds the harness shared by the integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/chipgrid/internal/app"
	"github.com/vk/chipgrid/internal/hcl"
	"github.com/vk/chipgrid/internal/registry"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files under a fresh temp directory, points the
// app at its "experiments" subdirectory and runs it with cfg. File names are
// relative, e.g. "experiments/main.hcl". Startup and run errors both end up
// in the result's Err.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	defsDir := filepath.Join(tmpDir, "experiments")
	require.NoError(t, os.Mkdir(defsDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg.DefinitionPaths = append(cfg.DefinitionPaths, defsDir)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	config, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Err: err}
	}

	outBuffer := &app.SafeBuffer{}
	logBuffer := &app.SafeBuffer{}

	testApp, err := app.NewApp(outBuffer, logBuffer, config, hcl.NewLoader(), modules...)
	var runErr error
	if err != nil {
		runErr = err
	} else {
		runErr = testApp.Run(context.Background())
	}

	if os.Getenv("CHIPGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
