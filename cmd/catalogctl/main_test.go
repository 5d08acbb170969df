package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := rootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "seed", "reindex", "backfill-playback-ids", "ping"})

	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	assert.Equal(t, "20", seed.Flags().Lookup("shows").DefValue)
	assert.Equal(t, "50", seed.Flags().Lookup("episodes").DefValue)
}

func TestMigrateDown_RequiresConfirmation(t *testing.T) {
	root := rootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"migrate", "down"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestBackfill_RequiresIDs(t *testing.T) {
	root := rootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"backfill-playback-ids"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}
