package assets

// DefaultStyleName is the built-in stylesheet used when none is configured.
const DefaultStyleName = "default"

// ReportTemplateName is the page template wrapping rendered reports.
const ReportTemplateName = "report"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name, without the .css extension.
// Returns ErrStyleNotFound if the style does not exist.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in page template by name, without the .html
// extension. Returns ErrTemplateNotFound if the template does not exist.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// StyleNames lists the built-in stylesheet names in lexical order.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
