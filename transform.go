package wordeq

// Transform applies rules to input in order and returns the result. Each rule
// replaces all of its non-overlapping matches in one left-to-right pass, and
// its output is the input of the next rule. Rules are applied once each;
// text exposed by a rule is only seen by the rules after it.
//
// An input without matches is returned unchanged.
func Transform(input string, rules RuleSet) string {
	return rules.Apply(input)
}

// TransformOptional is Transform for callers that may have no input at all.
// A nil input is treated as the empty string.
func TransformOptional(input *string, rules RuleSet) string {
	if input == nil {
		return ""
	}
	return Transform(*input, rules)
}
