package wordeq

// Notes:
// - Convert must agree with Transform on output; these tests add the
//   statistics, limits and cancellation that only Converter provides.
// - Match timeouts reuse catastrophicPattern from rule_test.go.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"defaults", nil, nil},
		{"custom rules", []Option{WithRules(RuleSet{MustRule("r", `a`, "b")})}, nil},
		{"match timeout", []Option{WithMatchTimeout(time.Second)}, nil},
		{"zero timeout disables", []Option{WithMatchTimeout(0)}, nil},
		{"max input size at limit", []Option{WithMaxInputSize(MaxInputSizeLimit)}, nil},
		{"empty rules", []Option{WithRules(nil)}, ErrEmptyRuleSet},
		{"negative timeout", []Option{WithMatchTimeout(-time.Second)}, ErrInvalidTimeout},
		{"zero max input size", []Option{WithMaxInputSize(0)}, ErrInvalidInputSize},
		{"max input size over limit", []Option{WithMaxInputSize(MaxInputSizeLimit + 1)}, ErrInvalidInputSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				if conv != nil {
					t.Error("NewConverter() should return nil on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() unexpected error: %v", err)
			}
			if conv == nil {
				t.Fatal("NewConverter() returned nil")
			}
		})
	}
}

func TestNewConverter_AppliesTimeoutToRules(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithMatchTimeout(250 * time.Millisecond))
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	for _, r := range conv.Rules() {
		if r.MatchTimeout() != 250*time.Millisecond {
			t.Errorf("rule %q MatchTimeout() = %v, want 250ms", r.Name, r.MatchTimeout())
		}
	}
}

func TestConverter_RulesIsACopy(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	rules := conv.Rules()
	rules[0], rules[2] = rules[2], rules[0]

	if got := conv.Rules()[0].Name; got != RuleStandalone {
		t.Errorf("Rules()[0].Name = %q after mutating a copy, want %q", got, RuleStandalone)
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Convert - Output and statistics
// ---------------------------------------------------------------------------

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantOutput  string
		wantChanged bool
		wantCounts  []int
	}{
		{
			name:        "two standalone tags",
			input:       `\mathbit{x}*\mathbf{y}`,
			wantOutput:  " x * y ",
			wantChanged: true,
			wantCounts:  []int{2, 0, 0},
		},
		{
			name:        "tag before marker",
			input:       `\mathbf{a}^{2}`,
			wantOutput:  " a^{2}",
			wantChanged: true,
			wantCounts:  []int{0, 1, 0},
		},
		{
			name:        "tag after marker",
			input:       `_\mathbit{b}`,
			wantOutput:  "_b ",
			wantChanged: true,
			wantCounts:  []int{0, 0, 1},
		},
		{
			name:        "marker on both sides",
			input:       `_\mathbf{a}^`,
			wantOutput:  "_ a^",
			wantChanged: true,
			wantCounts:  []int{0, 1, 0},
		},
		{
			name:        "mixed",
			input:       `\mathbf{a}_\mathbf{b}+\mathbit{c}`,
			wantOutput:  " a_b + c ",
			wantChanged: true,
			wantCounts:  []int{1, 1, 1},
		},
		{
			name:        "no tags",
			input:       "plain text",
			wantOutput:  "plain text",
			wantChanged: false,
			wantCounts:  []int{0, 0, 0},
		},
		{
			name:        "empty input",
			input:       "",
			wantOutput:  "",
			wantChanged: false,
			wantCounts:  []int{0, 0, 0},
		},
	}

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := conv.Convert(context.Background(), Input{Text: tt.input})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}

			if result.Output != tt.wantOutput {
				t.Errorf("Output = %q, want %q", result.Output, tt.wantOutput)
			}
			if result.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", result.Changed, tt.wantChanged)
			}
			if want := Transform(tt.input, DefaultRules()); result.Output != want {
				t.Errorf("Output = %q differs from Transform() = %q", result.Output, want)
			}

			if len(result.Matches) != len(tt.wantCounts) {
				t.Fatalf("len(Matches) = %d, want %d", len(result.Matches), len(tt.wantCounts))
			}
			names := DefaultRules().Names()
			total := 0
			for i, m := range result.Matches {
				if m.Rule != names[i] {
					t.Errorf("Matches[%d].Rule = %q, want %q", i, m.Rule, names[i])
				}
				if m.Count != tt.wantCounts[i] {
					t.Errorf("Matches[%d].Count = %d, want %d", i, m.Count, tt.wantCounts[i])
				}
				total += tt.wantCounts[i]
			}
			if result.Total() != total {
				t.Errorf("Total() = %d, want %d", result.Total(), total)
			}
		})
	}
}

func TestConverter_Convert_CustomRules(t *testing.T) {
	t.Parallel()

	extra, err := CompileRules([]RuleSpec{
		{Name: "mathit", Pattern: `\\mathit\{([^{}]+)\}`, Replacement: "$1"},
	})
	if err != nil {
		t.Fatalf("CompileRules() unexpected error: %v", err)
	}

	rules := append(DefaultRules(), extra...)
	conv, err := NewConverter(WithRules(rules))
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	result, err := conv.Convert(context.Background(), Input{Text: `\mathbf{F}=m\mathit{a}`})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if result.Output != " F =ma" {
		t.Errorf("Output = %q, want %q", result.Output, " F =ma")
	}
	if got := result.Matches[3]; got.Rule != "mathit" || got.Count != 1 {
		t.Errorf("Matches[3] = %+v, want {mathit 1}", got)
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Convert_Errors - Limits, cancellation and engine failures
// ---------------------------------------------------------------------------

func TestConverter_Convert_InputTooLarge(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithMaxInputSize(8))
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	_, err = conv.Convert(context.Background(), Input{Text: strings.Repeat("x", 9)})
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("Convert() error = %v, want %v", err, ErrInputTooLarge)
	}

	// Exactly at the limit is accepted.
	if _, err := conv.Convert(context.Background(), Input{Text: strings.Repeat("x", 8)}); err != nil {
		t.Errorf("Convert() at limit unexpected error: %v", err)
	}
}

func TestConverter_Convert_InvalidEncoding(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"latin-1 with tag", "caf\xe9 \\mathbf{x}"},
		{"latin-1 without tag", "caf\xe9"},
		{"stray byte before tag", "a\xffb\\mathbf{c}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := conv.Convert(context.Background(), Input{Text: tt.input})
			if !errors.Is(err, ErrInvalidEncoding) {
				t.Fatalf("Convert() error = %v, want %v", err, ErrInvalidEncoding)
			}
			if result != nil {
				t.Error("Convert() should return nil result for invalid input")
			}
		})
	}
}

// A timeout on a later match must fail the rule, not truncate the output.
func TestConverter_Convert_TimeoutAfterFirstMatch(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(
		WithRules(RuleSet{MustRule("slow", `x|(a+)+b`, "y")}),
		WithMatchTimeout(10*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	result, err := conv.Convert(context.Background(), Input{Text: "x" + strings.Repeat("a", 40)})
	if !errors.Is(err, ErrRuleEvaluation) {
		t.Fatalf("Convert() = (%+v, %v), want %v", result, err, ErrRuleEvaluation)
	}
}

func TestConverter_Convert_ContextCanceled(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := conv.Convert(ctx, Input{Text: `\mathbf{x}`})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Convert() error = %v, want %v", err, context.Canceled)
	}
	if result != nil {
		t.Error("Convert() should return nil result on cancellation")
	}
}

func TestConverter_Convert_MatchTimeout(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(
		WithRules(RuleSet{MustRule("slow", catastrophicPattern, "x")}),
		WithMatchTimeout(10*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	_, err = conv.Convert(context.Background(), Input{Text: strings.Repeat("a", 40)})
	if !errors.Is(err, ErrRuleEvaluation) {
		t.Fatalf("Convert() error = %v, want %v", err, ErrRuleEvaluation)
	}
	if !strings.Contains(err.Error(), "slow") {
		t.Errorf("error %q should name the failing rule", err)
	}
}

// ---------------------------------------------------------------------------
// TestConverter_Concurrent - Shared Converter across goroutines
// ---------------------------------------------------------------------------

func TestConverter_Concurrent(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}

	inputs := []string{
		`\mathbit{x}*\mathbf{y}`,
		`\mathbf{a}^{2}`,
		`_\mathbit{b}`,
		`  \mathbf{z}  `,
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers*len(inputs))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, in := range inputs {
				result, err := conv.Convert(context.Background(), Input{Text: in})
				if err != nil {
					errs <- err
					continue
				}
				if want := Transform(in, DefaultRules()); result.Output != want {
					errs <- errors.New("output mismatch for " + in)
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
