package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"workout-generator-be/internal/config"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("NATS_URL", "")
	t.Setenv("LOG_FILE_PATH", filepath.Join(t.TempDir(), "exercisectl.log"))
	cfg, err := config.Parse()
	require.NoError(t, err)

	var out bytes.Buffer
	return newCLI(&out, cfg), &out
}

func run(t *testing.T, c *cli, out *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	root := c.rootCmd()
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestSeedSkipsExisting(t *testing.T) {
	c, out := newTestCLI(t)

	first := run(t, c, out, "seed")
	assert.Equal(t, 4, strings.Count(first, "insert"))

	second := run(t, c, out, "seed")
	assert.Equal(t, 4, strings.Count(second, "skip"))
	assert.NotContains(t, second, "insert")
}

func TestListInStoredOrder(t *testing.T) {
	c, out := newTestCLI(t)

	assert.Contains(t, run(t, c, out, "list"), "No content to return")

	run(t, c, out, "seed")
	got := run(t, c, out, "list")

	order := []string{"Press up", "Squat", "Sit up", "Crunch"}
	last := -1
	for _, name := range order {
		idx := strings.Index(got, name)
		require.Greater(t, idx, last, name)
		last = idx
	}
}

func TestSampleIsReproducibleWithSeed(t *testing.T) {
	c, out := newTestCLI(t)
	run(t, c, out, "seed")

	a := run(t, c, out, "sample", "--quantity", "2", "--difficulty", "hard", "--seed", "7")
	b := run(t, c, out, "sample", "--quantity", "2", "--difficulty", "hard", "--seed", "7")

	assert.Equal(t, a, b)
	assert.Contains(t, a, "Workout (hard, 2 of 4)")
}

func TestSampleEverythingKeepsStoredOrder(t *testing.T) {
	c, out := newTestCLI(t)
	run(t, c, out, "seed")

	got := run(t, c, out, "sample", "-q", "10", "-d", "easy")

	assert.Contains(t, got, "Workout (easy, 4 of 4)")
	assert.Less(t, strings.Index(got, "Press up"), strings.Index(got, "Crunch"))
}

func TestSampleEmptyStore(t *testing.T) {
	c, out := newTestCLI(t)

	assert.Contains(t, run(t, c, out, "sample"), "No exercises available")
}

func TestSampleRejectsBadInput(t *testing.T) {
	c, _ := newTestCLI(t)

	for _, args := range [][]string{
		{"sample", "--difficulty", "extreme"},
		{"sample", "--quantity", "-1"},
	} {
		root := c.rootCmd()
		root.SetArgs(args)
		assert.Error(t, root.Execute(), args)
	}
}

func TestMigrateOnMemoryStore(t *testing.T) {
	c, out := newTestCLI(t)

	assert.Contains(t, run(t, c, out, "migrate"), "Memory store needs no migration")
}
