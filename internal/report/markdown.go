package report

import (
	"fmt"
	"strings"

	"github.com/alnah/go-wordeq"
)

// DefaultTitle heads reports without a configured title.
const DefaultTitle = "Equation conversion"

// Data is the content of one report.
type Data struct {
	Title  string // Empty uses DefaultTitle
	Date   string // Literal, "auto" or "auto:FORMAT"; empty omits the date
	Source string // Input name shown under the title, may be empty
	Input  string
	Result *wordeq.ConvertResult
}

// BuildMarkdown renders d as GitHub Flavored Markdown. Date must already be
// resolved.
func BuildMarkdown(d Data) string {
	var b strings.Builder

	title := d.Title
	if title == "" {
		title = DefaultTitle
	}
	b.WriteString("# " + escapeInline(title) + "\n\n")

	if meta := metaLine(d.Source, d.Date); meta != "" {
		b.WriteString(meta + "\n\n")
	}

	b.WriteString("## Rules\n\n")
	b.WriteString("| # | Rule | Matches |\n")
	b.WriteString("| ---: | --- | ---: |\n")
	var matches []wordeq.RuleMatch
	if d.Result != nil {
		matches = d.Result.Matches
	}
	for i, m := range matches {
		fmt.Fprintf(&b, "| %d | %s | %d |\n", i+1, escapeCell(m.Rule), m.Count)
	}
	fmt.Fprintf(&b, "|  | **Total** | **%d** |\n\n", d.Result.Total())

	output := d.Input
	if d.Result != nil {
		output = d.Result.Output
	}

	b.WriteString("## Input\n\n")
	writeFence(&b, "text", d.Input)

	b.WriteString("## Output\n\n")
	if d.Result != nil && !d.Result.Changed {
		b.WriteString("No word-tags found; the output equals the input.\n\n")
	}
	writeFence(&b, "latex", output)

	return b.String()
}

// metaLine joins the source name and date as an emphasized line.
func metaLine(source, date string) string {
	var parts []string
	if source != "" {
		parts = append(parts, "`"+strings.ReplaceAll(source, "`", "'")+"`")
	}
	if date != "" {
		parts = append(parts, escapeInline(date))
	}
	if len(parts) == 0 {
		return ""
	}
	return "*" + strings.Join(parts, " · ") + "*"
}

// writeFence writes content in a fenced code block. The fence is longer than
// any backtick run inside content.
func writeFence(b *strings.Builder, lang, content string) {
	fence := strings.Repeat("`", max(3, longestRun(content, '`')+1))

	b.WriteString(fence + lang + "\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence + "\n\n")
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return longest
}

// escapeCell makes s safe inside a single-line GFM table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return escapeInline(strings.ReplaceAll(s, "|", `\|`))
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

// escapeInline neutralizes Markdown emphasis, code, links and raw HTML in s.
// Table pipes are escaped before calling it, so their backslash is kept.
func escapeInline(s string) string {
	if !strings.ContainsAny(s, "\\*_`[]<#") {
		return s
	}
	// Keep the \| produced by escapeCell intact.
	parts := strings.Split(s, `\|`)
	for i, p := range parts {
		parts[i] = inlineEscaper.Replace(p)
	}
	return strings.Join(parts, `\|`)
}
