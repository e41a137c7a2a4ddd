package maze

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mazegen/internal/rng"
	"github.com/samdwyer/mazegen/internal/telemetry"
)

// Progress describes the cell that was just added to the maze.
type Progress struct {
	RunID     uuid.UUID
	Step      int   // cells in the maze so far, including this one
	Total     int   // cells in the grid
	Cell      Point // the cell that joined the maze
	Remaining int   // frontier size after the step
}

// Option configures a Generator.
type Option func(*Generator)

// WithAlgorithm selects the growth algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(g *Generator) { g.algorithm = a }
}

// WithSeed seeds the generator deterministically.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.src = rng.New(seed) }
}

// WithSource uses src as the random source.
func WithSource(src *rng.Source) Option {
	return func(g *Generator) { g.src = src }
}

// WithProgress installs a hook called after every cell joins the maze.
// The hook runs on the generating goroutine; sleeping in it paces the run
// without changing its outcome.
func WithProgress(fn func(Progress)) Option {
	return func(g *Generator) { g.progress = fn }
}

// WithTracer overrides the tracer used for generation spans.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) { g.tracer = t }
}

// WithMeter overrides the meter used for generation counters.
func WithMeter(m metric.Meter) Option {
	return func(g *Generator) { g.meter = m }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) { g.logger = l }
}

// Generator runs a maze algorithm over a fresh grid on every call.
//
// Grid accessors may be called from any goroutine while a run is in progress;
// Generate and Start must not be called concurrently with each other.
type Generator struct {
	algorithm Algorithm
	src       *rng.Source
	progress  func(Progress)
	tracer    trace.Tracer
	meter     metric.Meter
	logger    logrus.FieldLogger

	generations metric.Int64Counter
	cells       metric.Int64Counter

	current atomic.Pointer[Run]
}

// New creates a generator. Without WithSeed or WithSource the seed is taken
// from the wall clock.
func New(opts ...Option) *Generator {
	g := &Generator{
		algorithm: DefaultAlgorithm,
		tracer:    telemetry.Tracer("maze"),
		meter:     telemetry.Meter("maze"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src = rng.NewFromTime()
	}
	if g.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		g.logger = l
	}

	var err error
	if g.generations, err = g.meter.Int64Counter("maze.generations",
		metric.WithDescription("Maze generation runs started")); err != nil {
		g.generations = noop.Int64Counter{}
	}
	if g.cells, err = g.meter.Int64Counter("maze.cells",
		metric.WithDescription("Cells added to mazes"), metric.WithUnit("{cell}")); err != nil {
		g.cells = noop.Int64Counter{}
	}
	return g
}

// Algorithm returns the configured algorithm.
func (g *Generator) Algorithm() Algorithm {
	return g.algorithm
}

// Seed returns the seed of the generator's random source.
func (g *Generator) Seed() int64 {
	return g.src.Seed()
}

// Grid returns the grid of the latest run, or nil before any run started.
func (g *Generator) Grid() *Grid {
	if r := g.current.Load(); r != nil {
		return r.grid
	}
	return nil
}

// Width returns the width of the latest grid, or 0.
func (g *Generator) Width() int {
	if grid := g.Grid(); grid != nil {
		return grid.Width()
	}
	return 0
}

// Height returns the height of the latest grid, or 0.
func (g *Generator) Height() int {
	if grid := g.Grid(); grid != nil {
		return grid.Height()
	}
	return 0
}

// Snapshot copies the latest grid, or returns nil before any run started.
func (g *Generator) Snapshot() [][]Cell {
	if grid := g.Grid(); grid != nil {
		return grid.Snapshot()
	}
	return nil
}

// State returns the state of the latest run.
func (g *Generator) State() State {
	if r := g.current.Load(); r != nil {
		return r.State()
	}
	return StateIdle
}

// RunID returns the id of the latest run, or uuid.Nil.
func (g *Generator) RunID() uuid.UUID {
	if r := g.current.Load(); r != nil {
		return r.id
	}
	return uuid.Nil
}

// Start validates the dimensions, allocates a fresh grid and places the
// start cell. The returned Run is advanced with Step.
// On error the previous grid stays current.
func (g *Generator) Start(width, height int) (*Run, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	switch g.algorithm {
	case AlgorithmPrim:
	default:
		return nil, fmt.Errorf("maze: %q: %w", g.algorithm, ErrUnknownAlgorithm)
	}

	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	r := &Run{
		id:       uuid.New(),
		grid:     grid,
		src:      g.src,
		progress: g.progress,
		total:    width * height,
	}
	r.state.Store(int32(StateGrowing))
	g.current.Store(r)

	start := Point{Col: g.src.MustIntn(width), Row: g.src.MustIntn(height)}
	r.include(start)
	if r.frontier.len() == 0 {
		r.state.Store(int32(StateComplete))
	}
	return r, nil
}

// Generate runs the configured algorithm to completion on a new
// width x height grid. Cancellation of ctx is checked before each step;
// a cancelled run returns StateCancelled and a nil error, leaving the
// partial grid readable.
func (g *Generator) Generate(ctx context.Context, width, height int) (State, error) {
	ctx, span := g.tracer.Start(ctx, "maze.generate")
	defer span.End()

	startTime := time.Now()

	span.SetAttributes(
		attribute.String("maze.algorithm", g.algorithm.String()),
		attribute.Int("maze.width", width),
		attribute.Int("maze.height", height),
		attribute.Int64("maze.seed", g.Seed()),
	)

	r, err := g.Start(width, height)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StateIdle, err
	}
	g.generations.Add(ctx, 1, metric.WithAttributes(attribute.String("maze.algorithm", g.algorithm.String())))

	for r.State() == StateGrowing {
		if ctx.Err() != nil {
			r.cancel()
			break
		}
		r.Step()
	}

	state := r.State()
	g.cells.Add(ctx, int64(r.steps))

	span.SetAttributes(
		attribute.String("maze.run_id", r.id.String()),
		attribute.String("maze.state", state.String()),
		attribute.Int("maze.steps", r.steps),
		attribute.Int64("maze.generation_ms", time.Since(startTime).Milliseconds()),
	)

	g.logger.WithFields(logrus.Fields{
		"run_id": r.id.String(),
		"seed":   g.Seed(),
		"width":  width,
		"height": height,
		"state":  state.String(),
		"steps":  r.steps,
	}).Info("maze generation finished")

	return state, nil
}

// Run is a single generation pass over one grid. It is driven by one
// goroutine; State and Grid may be read from others.
type Run struct {
	id       uuid.UUID
	grid     *Grid
	src      *rng.Source
	progress func(Progress)
	frontier frontier
	state    atomic.Int32
	steps    int
	total    int
}

// ID returns the run id.
func (r *Run) ID() uuid.UUID {
	return r.id
}

// Grid returns the grid being grown.
func (r *Run) Grid() *Grid {
	return r.grid
}

// State returns the current state of the run.
func (r *Run) State() State {
	return State(r.state.Load())
}

// Steps returns how many cells have joined the maze.
func (r *Run) Steps() int {
	return r.steps
}

// Step adds one frontier cell to the maze. It returns true while the run
// is still growing afterward.
func (r *Run) Step() bool {
	if r.State() != StateGrowing {
		return false
	}

	cell := r.frontier.removeAt(r.src.MustIntn(r.frontier.len()))

	var connectable [4]Point
	n := 0
	for _, dir := range Directions {
		if nb, ok := r.neighbor(cell, dir); ok && r.grid.Get(nb.Col, nb.Row).Has(InMaze) {
			connectable[n] = nb
			n++
		}
	}
	if n > 0 {
		r.connect(cell, connectable[r.src.MustIntn(n)])
	}

	r.include(cell)

	if r.frontier.len() == 0 {
		r.state.Store(int32(StateComplete))
		return false
	}
	return true
}

// cancel stops a growing run.
func (r *Run) cancel() {
	r.state.CompareAndSwap(int32(StateGrowing), int32(StateCancelled))
}

// connect opens the wall pair between two adjacent cells.
func (r *Run) connect(from, to Point) {
	dir := directionTo(from, to)
	r.grid.SetFlag(from.Col, from.Row, Cell(dir))
	r.grid.SetFlag(to.Col, to.Row, Cell(dir.Opposite()))
}

// include marks p InMaze and pushes its unvisited neighbors onto the frontier.
func (r *Run) include(p Point) {
	r.grid.include(p.Col, p.Row)
	for _, dir := range Directions {
		nb, ok := r.neighbor(p, dir)
		if !ok || !r.grid.Get(nb.Col, nb.Row).Unvisited() {
			continue
		}
		r.grid.SetFlag(nb.Col, nb.Row, Frontier)
		r.frontier.add(nb)
	}

	r.steps++
	if r.progress != nil {
		r.progress(Progress{
			RunID:     r.id,
			Step:      r.steps,
			Total:     r.total,
			Cell:      p,
			Remaining: r.frontier.len(),
		})
	}
}

func (r *Run) neighbor(p Point, dir Direction) (Point, bool) {
	dc, dr := dir.Delta()
	nb := Point{Col: p.Col + dc, Row: p.Row + dr}
	return nb, r.grid.InBounds(nb.Col, nb.Row)
}
