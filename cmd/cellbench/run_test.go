package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/IvanBrykalov/cellsize/cellsize"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := parseMode("position")
	require.NoError(t, err)
	require.Equal(t, cellsize.ModePosition, m)

	m, err = parseMode("identity")
	require.NoError(t, err)
	require.Equal(t, cellsize.ModeIdentity, m)

	_, err = parseMode("object")
	require.ErrorIs(t, err, errBadFlag)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, err := parseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, l)

	_, err = parseLevel("loud")
	require.ErrorIs(t, err, errBadFlag)
}

func TestRunCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"run",
		"--lists", "2", "--items", "40", "--steps", "200",
		"--mutate", "20", "--mode", "identity", "--seed", "1", "--verify",
		"--log-level", "warn",
	})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "mode=identity")
	require.Contains(t, out.String(), "stale=0")
}
