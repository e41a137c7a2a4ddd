package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mazegen/internal/config"
	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/ui"
)

func testConfig(seed int64) config.Config {
	cfg := config.Default()
	cfg.Width = 8
	cfg.Height = 6
	cfg.Seed = seed
	cfg.StepDelay = 0
	return cfg
}

func startApp(t *testing.T, cfg config.Config) (*App, tcell.SimulationScreen, <-chan error) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.WrapScreen(sim)
	require.NoError(t, err)
	sim.SetSize(60, 20)

	logger, _ := logtest.NewNullLogger()
	a, err := New(cfg, screen, logger)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- a.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		g := a.Generator()
		return g != nil && g.State() == maze.StateComplete
	}, 5*time.Second, 5*time.Millisecond)
	return a, sim, errc
}

func waitForExit(t *testing.T, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func expectedGrid(t *testing.T, seed int64, width, height int) [][]maze.Cell {
	t.Helper()
	g := maze.New(maze.WithSeed(seed))
	_, err := g.Generate(context.Background(), width, height)
	require.NoError(t, err)
	return g.Snapshot()
}

func TestAppGeneratesAndQuits(t *testing.T) {
	a, sim, errc := startApp(t, testConfig(123))

	assert.Equal(t, expectedGrid(t, 123, 8, 6), a.Generator().Snapshot())

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitForExit(t, errc)
}

func TestAppReplaySameSeed(t *testing.T) {
	a, sim, errc := startApp(t, testConfig(77))
	first := a.Generator()

	sim.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	require.Eventually(t, func() bool {
		g := a.Generator()
		return g != first && g.State() == maze.StateComplete
	}, 5*time.Second, 5*time.Millisecond)

	assert.Equal(t, int64(77), a.Generator().Seed())
	assert.Equal(t, first.Snapshot(), a.Generator().Snapshot())

	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	waitForExit(t, errc)
}

func TestAppNewMaze(t *testing.T) {
	a, sim, errc := startApp(t, testConfig(5))
	first := a.Generator()

	sim.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	require.Eventually(t, func() bool {
		g := a.Generator()
		return g != first && g.State() == maze.StateComplete
	}, 5*time.Second, 5*time.Millisecond)

	assert.NotEqual(t, int64(5), a.Generator().Seed())

	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	waitForExit(t, errc)
}

func TestAppQuitCancelsSlowGeneration(t *testing.T) {
	cfg := testConfig(9)
	cfg.StepDelay = time.Hour

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.WrapScreen(sim)
	require.NoError(t, err)
	sim.SetSize(60, 20)

	logger, _ := logtest.NewNullLogger()
	a, err := New(cfg, screen, logger)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- a.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		g := a.Generator()
		return g != nil && g.State() == maze.StateGrowing
	}, 5*time.Second, 5*time.Millisecond)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitForExit(t, errc)
	assert.Equal(t, maze.StateCancelled, a.Generator().State())
}

func TestAppUsesConfigGeneratorOptions(t *testing.T) {
	cfg := testConfig(31)
	cfg.Algorithm = ""
	a, sim, errc := startApp(t, cfg)
	first := a.Generator()

	assert.Equal(t, maze.DefaultAlgorithm, first.Algorithm())
	assert.Equal(t, int64(31), first.Seed())

	sim.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	require.Eventually(t, func() bool {
		g := a.Generator()
		return g != first && g.State() == maze.StateComplete
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, maze.DefaultAlgorithm, a.Generator().Algorithm())

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitForExit(t, errc)
}

func TestAppRunReturnsContextError(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.WrapScreen(sim)
	require.NoError(t, err)
	sim.SetSize(60, 20)

	logger, _ := logtest.NewNullLogger()
	a, err := New(testConfig(3), screen, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		return a.Generator() != nil
	}, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.True(t, errors.Is(err, context.Canceled), "Run error = %v, want context.Canceled", err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.Width = 0

	logger, _ := logtest.NewNullLogger()
	_, err := New(cfg, nil, logger)
	assert.ErrorIs(t, err, maze.ErrInvalidDimension)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	logger, hook := logtest.NewNullLogger()

	state, err := Print(context.Background(), testConfig(123), &buf, logger)
	require.NoError(t, err)
	assert.Equal(t, maze.StateComplete, state)

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "Seed: 123\n"), "output should end with the seed: %q", out)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 2*6+1+1, "maze rows plus seed line")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, int64(123), hook.LastEntry().Data["seed"])
}

func TestPrintInvalidConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.Height = -2

	logger, _ := logtest.NewNullLogger()
	_, err := Print(context.Background(), cfg, &bytes.Buffer{}, logger)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
