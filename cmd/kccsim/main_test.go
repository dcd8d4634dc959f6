package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	lg := logrus.New()
	lg.Out = io.Discard
	return lg
}

func TestReadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kcc.toml")
	conf, err := readConfig(quietLogger(), path)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.NotEmpty(t, conf.Agents)
}

func TestRunReturnsConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[solver"), 0644))

	err := run(quietLogger(), path, 1)
	require.ErrorContains(t, err, "error reading config")
}

func TestRunDefaultLevel(t *testing.T) {
	require.NoError(t, run(quietLogger(), filepath.Join(t.TempDir(), "kcc.yaml"), 5))
}
