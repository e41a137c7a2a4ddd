// Package app hosts maze generation: it runs the generator on a background
// goroutine and animates the growing grid in the terminal.
package app

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazegen/internal/config"
	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/palette"
	"github.com/samdwyer/mazegen/internal/telemetry"
	"github.com/samdwyer/mazegen/internal/ui"
)

// frameInterval is how often the grid is redrawn while the app is open.
const frameInterval = 33 * time.Millisecond

// App holds the running application state.
type App struct {
	cfg      config.Config
	screen   *ui.Screen
	renderer *ui.Renderer
	logger   logrus.FieldLogger

	gen    atomic.Pointer[maze.Generator]
	steps  atomic.Int64
	cancel context.CancelFunc
	done   chan struct{}

	running bool
}

// New creates an app drawing to screen. The config must be valid.
func New(cfg config.Config, screen *ui.Screen, logger logrus.FieldLogger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := palette.Load()
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, p),
		logger:   logger,
		running:  true,
	}, nil
}

// Generator returns the generator of the current maze, or nil before Run.
func (a *App) Generator() *maze.Generator {
	return a.gen.Load()
}

// Run animates maze generation until the user quits or ctx is done.
// The screen is closed on return. Quitting from the keyboard returns nil;
// if ctx ends the run, its error is returned.
func (a *App) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("app")
	ctx, span := tracer.Start(ctx, "app.run")
	defer span.End()

	span.SetAttributes(
		attribute.Int("maze.width", a.cfg.Width),
		attribute.Int("maze.height", a.cfg.Height),
		attribute.String("maze.algorithm", a.cfg.Algorithm.String()),
	)

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go a.pollEvents(events, quit)

	a.startGeneration(ctx, a.cfg.Seed)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var err error
	for a.running {
		a.render()

		select {
		case <-ctx.Done():
			a.running = false
			err = ctx.Err()
		case ev, ok := <-events:
			if !ok {
				a.running = false
				break
			}
			a.handleEvent(ctx, ev)
		case <-ticker.C:
		}
	}

	close(quit)
	a.stopGeneration()
	a.screen.Close()
	return err
}

// pollEvents forwards terminal events until the screen closes or quit is closed.
func (a *App) pollEvents(events chan<- tcell.Event, quit <-chan struct{}) {
	defer close(events)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// handleEvent processes a single input event.
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (a *App) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.running = false
		case 'n', 'N':
			a.startGeneration(ctx, 0)
		case 'r', 'R':
			if g := a.gen.Load(); g != nil {
				a.startGeneration(ctx, g.Seed())
			}
		}
	}
}

// startGeneration cancels any running generation and starts a new one on a
// background goroutine. A zero seed picks a wall-clock seed.
func (a *App) startGeneration(ctx context.Context, seed int64) {
	a.stopGeneration()

	genCtx, cancel := context.WithCancel(ctx)

	cfg := a.cfg
	cfg.Seed = seed
	g := maze.New(append(cfg.GeneratorOptions(),
		maze.WithLogger(a.logger),
		maze.WithProgress(a.pace(genCtx)),
	)...)
	a.steps.Store(0)
	a.gen.Store(g)

	done := make(chan struct{})
	a.cancel = cancel
	a.done = done

	go func() {
		defer close(done)
		if _, err := g.Generate(genCtx, a.cfg.Width, a.cfg.Height); err != nil {
			a.logger.WithError(err).Error("maze generation failed")
		}
	}()
}

// stopGeneration cancels the running generation and waits for it to return.
func (a *App) stopGeneration() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.done
	a.cancel = nil
	a.done = nil
}

// pace returns the progress hook: it records the step count and sleeps
// StepDelay so the growth is visible.
func (a *App) pace(ctx context.Context) func(maze.Progress) {
	delay := a.cfg.StepDelay
	return func(p maze.Progress) {
		a.steps.Store(int64(p.Step))
		if delay <= 0 {
			return
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.C:
		}
	}
}

func (a *App) render() {
	g := a.gen.Load()
	if g == nil {
		a.renderer.Render(nil, "")
		return
	}

	var grid maze.GridReader
	if gr := g.Grid(); gr != nil {
		grid = gr
	}
	a.renderer.Render(grid, a.status(g))
}

func (a *App) status(g *maze.Generator) string {
	return fmt.Sprintf("%s seed=%d %dx%d cells=%d/%d %s  [n]ew [r]eplay [q]uit",
		g.Algorithm(), g.Seed(), a.cfg.Width, a.cfg.Height,
		a.steps.Load(), a.cfg.Width*a.cfg.Height, g.State())
}

// Print generates one maze synchronously and writes it as ASCII art
// followed by its seed.
func Print(ctx context.Context, cfg config.Config, w io.Writer, logger logrus.FieldLogger) (maze.State, error) {
	if err := cfg.Validate(); err != nil {
		return maze.StateIdle, err
	}

	g := maze.New(append(cfg.GeneratorOptions(), maze.WithLogger(logger))...)
	state, err := g.Generate(ctx, cfg.Width, cfg.Height)
	if err != nil {
		return state, err
	}

	if _, err := io.WriteString(w, maze.Format(g.Grid())); err != nil {
		return state, err
	}
	if _, err := fmt.Fprintf(w, "Seed: %d\n", g.Seed()); err != nil {
		return state, err
	}
	return state, nil
}
