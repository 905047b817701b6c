package problem

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/soroban/internal/errors"
)

// Search budget. A full sequence is built left to right up to MaxAttempts
// times; each position gets up to MaxDrawsPerStep random draws.
const (
	MaxAttempts     = 12000
	MaxDrawsPerStep = 160
)

// Source is a uniform random integer source. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// lockedSource serialises access to a seeded *rand.Rand.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// NewSeededSource returns a deterministic Source that is safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generator produces problems by bounded generate-and-test search.
// It holds no state besides its random source and is safe to share when
// the source is.
type Generator struct {
	src         Source
	maxAttempts int
	maxDraws    int
	tracer      trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithBudget overrides the search budget. Non-positive values keep the default.
func WithBudget(attempts, drawsPerStep int) Option {
	return func(g *Generator) {
		if attempts > 0 {
			g.maxAttempts = attempts
		}
		if drawsPerStep > 0 {
			g.maxDraws = drawsPerStep
		}
	}
}

// NewGenerator creates a Generator. A nil source uses the global
// math/rand/v2 source.
func NewGenerator(src Source, opts ...Option) *Generator {
	if src == nil {
		src = globalSource{}
	}
	g := &Generator{
		src:         src,
		maxAttempts: MaxAttempts,
		maxDraws:    MaxDrawsPerStep,
		tracer:      otel.Tracer("github.com/agbru/soroban/internal/problem"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// operandRange returns the inclusive operand bounds for a difficulty step.
func operandRange(step int) (lo, hi int) {
	if step == 4 {
		return 10, 99
	}
	return 1, 9
}

// crossesFiveDown reports a subtraction moving the total from 5 or more to
// below 5, the pattern practised with the five-complement technique.
func crossesFiveDown(before, after int) bool {
	return before >= 5 && after < 5
}

// Generate returns a problem satisfying the rules of cfg.Step, or a
// GenerationExhaustedError once the search budget is spent. ctx is checked
// before every attempt; a canceled search returns ctx.Err().
//
// Rules for every candidate draw:
//   - the first step adds; later steps subtract only in mixed mode
//   - an operand never repeats the previous step's operand
//   - the running total never goes negative
//   - step 1 keeps the total at 9 or below
//   - steps 1 and 2 reject a subtraction crossing five downwards
//
// Rules checked on a finished sequence:
//   - steps 2 and 3 need a running total above 9 at least once
//   - step 3 needs a subtraction crossing five downwards, and mixed mode
func (g *Generator) Generate(ctx context.Context, cfg Config) (Problem, error) {
	_, span := g.tracer.Start(ctx, "problem.Generate", trace.WithAttributes(
		attribute.Int("step", cfg.Step),
		attribute.Int("count", cfg.Count),
		attribute.String("mode", string(cfg.Mode)),
	))
	defer span.End()

	allowSub := cfg.Mode.AllowsSubtraction()
	lo, hi := operandRange(cfg.Step)
	seq := make([]Step, 0, cfg.Count)

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return Problem{}, err
		}
		seq = seq[:0]
		total := 0
		prev := -1
		hadOverNine := false
		hadCrossFive := false
		ok := true

		for i := 0; i < cfg.Count; i++ {
			st, found := g.draw(cfg.Step, i, allowSub, lo, hi, total, prev)
			if !found {
				ok = false
				break
			}
			seq = append(seq, st)
			total = st.After
			prev = st.Operand
			if total > 9 {
				hadOverNine = true
			}
			if st.Op == Subtract && crossesFiveDown(st.Before, st.After) {
				hadCrossFive = true
			}
		}
		if !ok {
			continue
		}

		if (cfg.Step == 2 || cfg.Step == 3) && !hadOverNine {
			continue
		}
		if cfg.Step == 3 && (!hadCrossFive || !allowSub) {
			continue
		}

		p := Problem{Steps: append([]Step(nil), seq...), Attempts: attempt}
		p.Answer = p.SignedSum()
		span.SetAttributes(attribute.Int("attempts", attempt))
		return p, nil
	}

	err := apperrors.GenerationExhaustedError{
		Step:     cfg.Step,
		Count:    cfg.Count,
		Mode:     string(cfg.Mode),
		Attempts: g.maxAttempts,
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "generation exhausted")
	return Problem{}, err
}

// draw picks the step at position i, trying up to maxDraws candidates.
func (g *Generator) draw(step, i int, allowSub bool, lo, hi, total, prev int) (Step, bool) {
	for k := 0; k < g.maxDraws; k++ {
		op := Add
		if i > 0 && allowSub && g.src.IntN(2) == 1 {
			op = Subtract
		}
		value := lo + g.src.IntN(hi-lo+1)

		if value == prev {
			continue
		}
		if op == Subtract && value > total {
			continue
		}
		next := total + value
		if op == Subtract {
			next = total - value
		}
		if step == 1 && next > 9 {
			continue
		}
		if (step == 1 || step == 2) && op == Subtract && crossesFiveDown(total, next) {
			continue
		}
		return Step{Op: op, Operand: value, Before: total, After: next}, true
	}
	return Step{}, false
}

// GenerateBatch generates n independent problems concurrently, at most
// limit at a time (limit <= 0 means unbounded). Each problem gets its own
// generator seeded from g's source in index order, so a seeded source
// yields a reproducible sheet.
func (g *Generator) GenerateBatch(ctx context.Context, cfg Config, n, limit int) ([]Problem, error) {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = uint64(g.src.IntN(math.MaxInt))
	}

	problems := make([]Problem, n)
	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i := range n {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := &Generator{
				src:         rand.New(rand.NewPCG(seeds[i], uint64(i))),
				maxAttempts: g.maxAttempts,
				maxDraws:    g.maxDraws,
				tracer:      g.tracer,
			}
			p, err := child.Generate(ctx, cfg)
			if err != nil {
				return err
			}
			problems[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return problems, nil
}
