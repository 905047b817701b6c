package problem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sebdah/goldie/v2"

	apperrors "github.com/agbru/soroban/internal/errors"
)

// checkProblem returns the first rule the problem breaks for cfg, or nil.
func checkProblem(cfg Config, p Problem) error {
	if len(p.Steps) != cfg.Count {
		return fmt.Errorf("got %d steps, want %d", len(p.Steps), cfg.Count)
	}
	lo, hi := operandRange(cfg.Step)
	total := 0
	overNine := false
	crossFive := false
	for i, s := range p.Steps {
		if s.Operand < lo || s.Operand > hi {
			return fmt.Errorf("step %d: operand %d outside [%d,%d]", i, s.Operand, lo, hi)
		}
		if i == 0 && s.Op != Add {
			return fmt.Errorf("first step must add")
		}
		if s.Op == Subtract && !cfg.Mode.AllowsSubtraction() {
			return fmt.Errorf("step %d: subtraction in addition-only mode", i)
		}
		if i > 0 && p.Steps[i-1].Operand == s.Operand {
			return fmt.Errorf("step %d: operand %d repeats", i, s.Operand)
		}
		if s.Before != total {
			return fmt.Errorf("step %d: Before=%d, running total %d", i, s.Before, total)
		}
		if s.Op == Subtract {
			total -= s.Operand
		} else {
			total += s.Operand
		}
		if s.After != total {
			return fmt.Errorf("step %d: After=%d, running total %d", i, s.After, total)
		}
		if total < 0 {
			return fmt.Errorf("step %d: negative total %d", i, total)
		}
		if cfg.Step == 1 && total > 9 {
			return fmt.Errorf("step %d: total %d above 9", i, total)
		}
		if total > 9 {
			overNine = true
		}
		if s.Op == Subtract && crossesFiveDown(s.Before, s.After) {
			if cfg.Step == 1 || cfg.Step == 2 {
				return fmt.Errorf("step %d: subtraction crosses five (%d -> %d)", i, s.Before, s.After)
			}
			crossFive = true
		}
	}
	if (cfg.Step == 2 || cfg.Step == 3) && !overNine {
		return fmt.Errorf("total never exceeded 9")
	}
	if cfg.Step == 3 && !crossFive {
		return fmt.Errorf("no subtraction crossed five")
	}
	if p.Answer != total || p.Answer != p.SignedSum() {
		return fmt.Errorf("answer %d, signed sum %d", p.Answer, total)
	}
	return nil
}

func TestGenerate_Scenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"step 1 addition", Config{Step: 1, Count: 3, Mode: ModeAdditionOnly}},
		{"step 1 mixed", Config{Step: 1, Count: 5, Mode: ModeMixed}},
		{"step 2 addition", Config{Step: 2, Count: 4, Mode: ModeAdditionOnly}},
		{"step 2 mixed", Config{Step: 2, Count: 6, Mode: ModeMixed}},
		{"step 3 mixed", Config{Step: 3, Count: 5, Mode: ModeMixed}},
		{"step 4 addition", Config{Step: 4, Count: 5, Mode: ModeAdditionOnly}},
		{"step 4 mixed", Config{Step: 4, Count: 10, Mode: ModeMixed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewGenerator(NewSeededSource(42))
			for i := 0; i < 20; i++ {
				p, err := g.Generate(context.Background(), tt.cfg)
				if err != nil {
					t.Fatalf("Generate(%+v) error: %v", tt.cfg, err)
				}
				if err := checkProblem(tt.cfg, p); err != nil {
					t.Fatalf("problem %v breaks a rule: %v", p.Operands(), err)
				}
			}
		})
	}
}

func TestGenerate_StepThreeAdditionOnlyExhausts(t *testing.T) {
	t.Parallel()
	g := NewGenerator(NewSeededSource(7))
	cfg := Config{Step: 3, Count: 5, Mode: ModeAdditionOnly}

	_, err := g.Generate(context.Background(), cfg)
	if !errors.Is(err, apperrors.ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
	var exhausted apperrors.GenerationExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected GenerationExhaustedError, got %T", err)
	}
	if exhausted.Attempts != MaxAttempts {
		t.Errorf("Attempts = %d, want %d", exhausted.Attempts, MaxAttempts)
	}
	if exhausted.Step != 3 || exhausted.Mode != "add" {
		t.Errorf("unexpected error fields: %+v", exhausted)
	}
}

// cancelingSource cancels its context after a fixed number of draws.
type cancelingSource struct {
	Source
	after  int
	draws  int
	cancel context.CancelFunc
}

func (s *cancelingSource) IntN(n int) int {
	s.draws++
	if s.draws == s.after {
		s.cancel()
	}
	return s.Source.IntN(n)
}

func TestGenerate_StopsWhenCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &cancelingSource{Source: NewSeededSource(7), after: 50, cancel: cancel}

	// Step 3 in addition-only mode never succeeds, so only cancellation ends
	// the search early.
	_, err := NewGenerator(src).Generate(ctx, Config{Step: 3, Count: 5, Mode: ModeAdditionOnly})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, apperrors.ErrGenerationExhausted) {
		t.Error("a canceled search must not report exhaustion")
	}
	if src.draws > 50+5*MaxDrawsPerStep {
		t.Errorf("search kept drawing after cancellation: %d draws", src.draws)
	}
}

func TestGenerate_StepFourPair(t *testing.T) {
	t.Parallel()
	cfg := Config{Step: 4, Count: 2, Mode: ModeAdditionOnly}
	p, err := NewGenerator(NewSeededSource(3)).Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	a, b := p.Steps[0].Operand, p.Steps[1].Operand
	if a < 10 || a > 99 || b < 10 || b > 99 {
		t.Errorf("operands %d, %d outside [10,99]", a, b)
	}
	if p.Answer != a+b {
		t.Errorf("Answer = %d, want %d", p.Answer, a+b)
	}
}

func TestGenerate_InfeasibleStepOneExhausts(t *testing.T) {
	t.Parallel()
	// Ten additions without repeats always pass 9.
	g := NewGenerator(NewSeededSource(1), WithBudget(50, 20))
	_, err := g.Generate(context.Background(), Config{Step: 1, Count: 10, Mode: ModeAdditionOnly})
	if !errors.Is(err, apperrors.ErrGenerationExhausted) {
		t.Fatalf("expected exhaustion, got %v", err)
	}
}

func TestGenerate_SeededIsDeterministic(t *testing.T) {
	t.Parallel()
	cfg := Config{Step: 2, Count: 8, Mode: ModeMixed}
	a, err := NewGenerator(NewSeededSource(99)).Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGenerator(NewSeededSource(99)).Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(a.Steps) != fmt.Sprint(b.Steps) {
		t.Errorf("same seed gave different problems: %v vs %v", a.Operands(), b.Operands())
	}
}

func TestGenerate_NilSourceUsesGlobal(t *testing.T) {
	t.Parallel()
	cfg := Config{Step: 2, Count: 5, Mode: ModeAdditionOnly}
	p, err := NewGenerator(nil).Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := checkProblem(cfg, p); err != nil {
		t.Error(err)
	}
}

// scriptedSource replays fixed values and fails the test when it runs dry.
type scriptedSource struct {
	t      *testing.T
	values []int
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.values) == 0 {
		s.t.Fatalf("scripted source exhausted")
	}
	v := s.values[0]
	s.values = s.values[1:]
	if v >= n {
		s.t.Fatalf("scripted value %d out of range [0,%d)", v, n)
	}
	return v
}

func TestGenerate_RejectsRepeatedOperand(t *testing.T) {
	t.Parallel()
	// Addition-only draws consume one value each: operand = 1 + v.
	// 3, 3 (rejected), 4.
	src := &scriptedSource{t: t, values: []int{2, 2, 3}}
	p, err := NewGenerator(src).Generate(context.Background(), Config{Step: 1, Count: 2, Mode: ModeAdditionOnly})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Operands(); got[0] != 3 || got[1] != 4 {
		t.Errorf("operands = %v, want [3 4]", got)
	}
}

func TestGenerate_StepTwoRejectsFiveCrossing(t *testing.T) {
	t.Parallel()
	// Mixed draws consume the operator bit first, then the operand.
	// +9 (step 0 has no operator bit), -5 crosses 9->4 and is rejected,
	// -3 gives 6, +8 gives 14.
	src := &scriptedSource{t: t, values: []int{8, 1, 4, 1, 2, 0, 7}}
	cfg := Config{Step: 2, Count: 3, Mode: ModeMixed}
	p, err := NewGenerator(src).Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []Step{
		{Op: Add, Operand: 9, Before: 0, After: 9},
		{Op: Subtract, Operand: 3, Before: 9, After: 6},
		{Op: Add, Operand: 8, Before: 6, After: 14},
	}
	if fmt.Sprint(p.Steps) != fmt.Sprint(want) {
		t.Errorf("steps = %v, want %v", p.Steps, want)
	}
	if p.Answer != 14 || p.Attempts != 1 {
		t.Errorf("Answer=%d Attempts=%d, want 14 and 1", p.Answer, p.Attempts)
	}
}

func TestGenerate_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	configs := []Config{
		{Step: 1, Count: 4, Mode: ModeMixed},
		{Step: 2, Count: 5, Mode: ModeMixed},
		{Step: 3, Count: 6, Mode: ModeMixed},
		{Step: 4, Count: 7, Mode: ModeMixed},
		{Step: 4, Count: 3, Mode: ModeAdditionOnly},
	}
	for _, cfg := range configs {
		name := fmt.Sprintf("step %d count %d mode %s satisfies its rules", cfg.Step, cfg.Count, cfg.Mode)
		properties.Property(name, prop.ForAll(
			func(seed uint64) bool {
				p, err := NewGenerator(NewSeededSource(seed)).Generate(context.Background(), cfg)
				if err != nil {
					t.Logf("seed %d: %v", seed, err)
					return false
				}
				if err := checkProblem(cfg, p); err != nil {
					t.Logf("seed %d: %v", seed, err)
					return false
				}
				return true
			},
			gen.UInt64(),
		))
	}
	properties.TestingRun(t)
}

func TestGenerateBatch(t *testing.T) {
	t.Parallel()
	cfg := Config{Step: 2, Count: 5, Mode: ModeMixed}

	first, err := NewGenerator(NewSeededSource(2024)).GenerateBatch(context.Background(), cfg, 12, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 12 {
		t.Fatalf("got %d problems, want 12", len(first))
	}
	for i, p := range first {
		if err := checkProblem(cfg, p); err != nil {
			t.Errorf("problem %d: %v", i, err)
		}
	}

	second, err := NewGenerator(NewSeededSource(2024)).GenerateBatch(context.Background(), cfg, 12, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if fmt.Sprint(first[i].Steps) != fmt.Sprint(second[i].Steps) {
			t.Errorf("problem %d differs between seeded batches", i)
		}
	}
}

func TestGenerateBatch_PropagatesExhaustion(t *testing.T) {
	t.Parallel()
	g := NewGenerator(NewSeededSource(5), WithBudget(10, 10))
	_, err := g.GenerateBatch(context.Background(), Config{Step: 3, Count: 3, Mode: ModeAdditionOnly}, 4, 2)
	if !errors.Is(err, apperrors.ErrGenerationExhausted) {
		t.Fatalf("expected exhaustion, got %v", err)
	}
}

func TestGenerateBatch_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(nil).GenerateBatch(ctx, Config{Step: 1, Count: 3, Mode: ModeAdditionOnly}, 5, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTrace_Golden(t *testing.T) {
	t.Parallel()
	p := Problem{Steps: []Step{
		{Op: Add, Operand: 3},
		{Op: Add, Operand: 5},
		{Op: Subtract, Operand: 4},
		{Op: Add, Operand: 9},
		{Op: Subtract, Operand: 7},
	}}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "trace", []byte(strings.Join(p.Trace(), "\n")+"\n"))
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"add", "mix"} {
		if m, err := ParseMode(in); err != nil || string(m) != in {
			t.Errorf("ParseMode(%q) = %q, %v", in, m, err)
		}
	}
	if _, err := ParseMode("sub"); err == nil {
		t.Error("ParseMode(\"sub\") should fail")
	}
}

func TestConfigDurations(t *testing.T) {
	t.Parallel()
	cfg := Config{GapMs: 250, RevealSec: 0}
	if cfg.Gap().Milliseconds() != 250 {
		t.Errorf("Gap = %v", cfg.Gap())
	}
	if cfg.RevealDelay().Seconds() != 1 {
		t.Errorf("RevealDelay = %v, want 1s floor", cfg.RevealDelay())
	}
	cfg.RevealSec = 4
	if cfg.RevealDelay().Seconds() != 4 {
		t.Errorf("RevealDelay = %v, want 4s", cfg.RevealDelay())
	}
}
