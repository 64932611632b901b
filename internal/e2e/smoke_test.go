package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runTL(t, binaryPath, home, "add", "Buy milk")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runTL(t, binaryPath, home, "add", "Call mom")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runTL(t, binaryPath, home, "rm", "1")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runTL(t, binaryPath, home, "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "1. 📝 Call mom")
	assert.NotContains(t, stdout, "Buy milk")
}

func TestSmokeBlankAddExitsNonZero(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runTL(t, binaryPath, home, "add", "  ")
	require.Error(t, err)
	assert.Contains(t, stderr, "task title is blank")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "tl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tl")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build tl binary: %s", string(output))
	return binaryPath
}

func runTL(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "XDG_CONFIG_HOME=", "XDG_DATA_HOME=")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
