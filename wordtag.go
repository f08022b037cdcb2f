package wordeq

// Word-tag rule names, in application order.
const (
	RuleStandalone   = "standalone word-tag"
	RuleBeforeMarker = "word-tag before marker"
	RuleAfterMarker  = "word-tag after marker"
)

// Word-tag patterns. A word-tag is \mathbit{content} or \mathbf{content} where
// content holds no braces. Markers are the sub/superscript characters _ and ^.
const (
	// StandalonePattern matches a tag with no marker directly on either side,
	// together with any spaces around it. The look-arounds sit next to the tag
	// itself so that spaces never count as adjacency.
	StandalonePattern = ` *(?<![\^_])\\mathb(?:it|f)\{([^{}]+)\}(?![\^_]) *`

	// BeforeMarkerPattern matches a tag directly followed by a marker.
	BeforeMarkerPattern = ` *\\mathb(?:it|f)\{([^{}]+)\}([\^_])`

	// AfterMarkerPattern matches a marker directly followed by a tag.
	AfterMarkerPattern = `([\^_])\\mathb(?:it|f)\{([^{}]+)\} *`
)

// Replacement templates for the word-tag patterns.
const (
	StandaloneReplacement   = " $1 "
	BeforeMarkerReplacement = " $1$2"
	AfterMarkerReplacement  = "$1$2 "
)

var defaultRules = RuleSet{
	MustRule(RuleStandalone, StandalonePattern, StandaloneReplacement),
	MustRule(RuleBeforeMarker, BeforeMarkerPattern, BeforeMarkerReplacement),
	MustRule(RuleAfterMarker, AfterMarkerPattern, AfterMarkerReplacement),
}

// DefaultRules returns the word-tag rules in their required order:
//
//  1. standalone tag -> " content "
//  2. tag directly before a marker -> " content^"
//  3. marker directly before a tag -> "^content "
//
// Each call returns a new slice.
func DefaultRules() RuleSet {
	return defaultRules.Clone()
}
