package wordeq_test

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-wordeq"
)

// Example demonstrates the pure transformation with the default rules.
func Example() {
	out := wordeq.Transform(`\mathbit{x}*\mathbf{y}`, wordeq.DefaultRules())
	fmt.Printf("%q\n", out)
	// Output: " x * y "
}

// Example_markers shows how tags next to sub/superscript markers are handled.
func Example_markers() {
	rules := wordeq.DefaultRules()
	fmt.Printf("%q\n", wordeq.Transform(`\mathbf{a}^{2}`, rules))
	fmt.Printf("%q\n", wordeq.Transform(`_\mathbit{b}`, rules))
	// Output:
	// " a^{2}"
	// "_b "
}

// ExampleConverter_Convert reports per-rule match counts.
func ExampleConverter_Convert() {
	conv, err := wordeq.NewConverter(wordeq.WithMatchTimeout(time.Second))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), wordeq.Input{
		Text: `\mathbf{a}_\mathbf{b}+\mathbit{c}`,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%q\n", result.Output)
	for _, m := range result.Matches {
		fmt.Printf("%s: %d\n", m.Rule, m.Count)
	}
	// Output:
	// " a_b + c "
	// standalone word-tag: 1
	// word-tag before marker: 1
	// word-tag after marker: 1
}

// ExampleCompileRules extends the defaults with a custom rule.
func ExampleCompileRules() {
	extra, err := wordeq.CompileRules([]wordeq.RuleSpec{
		{Name: "mathit", Pattern: `\\mathit\{([^{}]+)\}`, Replacement: "$1"},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	rules := append(wordeq.DefaultRules(), extra...)
	fmt.Printf("%q\n", wordeq.Transform(`\mathbf{F}=m\mathit{a}`, rules))
	// Output: " F =ma"
}
