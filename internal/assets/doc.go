// Package assets provides the stylesheets and page template used by
// conversion reports.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// Resolver is what the report generator uses. A custom directory can
// override a single style or the page template while the rest still come
// from the embedded set.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # page stylesheet (e.g., default.css)
//	└── templates/
//	    └── {name}.html      # html/template page shell (e.g., report.html)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
