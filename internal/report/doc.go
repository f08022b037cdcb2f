// Package report renders a conversion result as a standalone HTML page.
//
// A report is assembled in stages:
//   - Markdown is built from the result: title, date line, a GFM table of
//     per-rule match counts, and fenced Input/Output blocks
//   - Goldmark renders the Markdown, with chroma highlighting the output
//     block as LaTeX using inline styles
//   - The fragment is wrapped in the page template from internal/assets
//   - The page stylesheet is injected as a <style> block before </head>
package report
