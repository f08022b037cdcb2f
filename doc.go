// Package wordeq converts word-processor equation markup to LaTeX.
//
// Equations copied out of a word processor's equation editor as "linear
// LaTeX" carry \mathbit{...} and \mathbf{...} wrappers that LaTeX does not
// define. This package unwraps them with an ordered set of substitution rules.
//
// # Quick Start
//
// Transform is a pure function over a string and a RuleSet:
//
//	out := wordeq.Transform(`\mathbf{a}^{2}+\mathbit{b}`, wordeq.DefaultRules())
//	// out == " a^{2}+ b "
//
// # Rules
//
// The default RuleSet holds three rules, applied in this order:
//
//  1. a tag with no sub/superscript marker next to it becomes " content ",
//     absorbing any spaces around it
//  2. a tag directly followed by ^ or _ becomes " content^"
//  3. a tag directly preceded by ^ or _ becomes "^content "
//
// Each rule replaces every match in one pass over the output of the previous
// rule. Rules are not repeated until a fixed point, so nested tags need one
// call per nesting level.
//
// Patterns use the .NET regular expression dialect (github.com/dlclark/regexp2)
// because the rules depend on look-behind and look-ahead assertions.
// Custom rules are compiled with NewRule or CompileRules:
//
//	extra, err := wordeq.CompileRules([]wordeq.RuleSpec{
//	    {Name: "mathit", Pattern: `\\mathit\{([^{}]+)\}`, Replacement: "$1"},
//	})
//	rules := append(wordeq.DefaultRules(), extra...)
//
// # Converter
//
// Converter wraps a RuleSet with per-rule match counts, an input size limit,
// a per-match timeout and context cancellation:
//
//	conv, err := wordeq.NewConverter(wordeq.WithMatchTimeout(time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := conv.Convert(ctx, wordeq.Input{Text: eq})
//	fmt.Println(result.Output, result.Total())
package wordeq
