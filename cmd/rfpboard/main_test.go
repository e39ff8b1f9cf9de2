package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/rfpboard/internal/config"
)

func TestRunValidationDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, runValidation(config.Default(), slog.New(slog.DiscardHandler)))
}

func TestRunValidationCustomStages(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[board]
new_stage = "inbox"

[[board.stages]]
id = "inbox"

[[board.stages]]
id = "drafting"

[[board.stages]]
id = "closed"
lifecycle = "won"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, runValidation(cfg, slog.New(slog.DiscardHandler)))
}

func TestValidateAndVersionCommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RFPBOARD_CONFIG", "")

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"validate", "--no-seed"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "ok\n", out.String())

	out.Reset()
	cmd = rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "rfpboard version "+Version)
}

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RFPBOARD_CONFIG", "")

	cfg, err := loadConfig(options{logLevel: "debug", noSeed: true})
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.Board.Seed)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[board]\nnew_stage = \"nowhere\"\n"), 0o644))
	_, err = loadConfig(options{configPath: bad})
	require.Error(t, err)
}

func TestInitWritesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RFPBOARD_CONFIG", "")
	path := filepath.Join(t.TempDir(), "rfpboard.toml")

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", "--config", path})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "wrote "+path+"\n", out.String())

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.Default().Board.NewStage, cfg.Board.NewStage)

	cmd = rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", "--config", path})
	require.ErrorContains(t, cmd.Execute(), "already exists")

	cmd = rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", "--config", path, "--force"})
	require.NoError(t, cmd.Execute())
}

func TestInitUsesDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RFPBOARD_CONFIG", "")

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())
	require.FileExists(t, filepath.Join(home, ".config", "rfpboard", "config.toml"))
}

func TestClientsCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RFPBOARD_CONFIG", "")

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"clients"})
	require.NoError(t, cmd.Execute())
	for _, want := range []string{"NAME", "Innovate Corp", "Global Tech", "inactive"} {
		require.Contains(t, out.String(), want)
	}
}
