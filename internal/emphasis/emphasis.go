// Package emphasis rewrites markup source before parsing, wrapping defined
// terms in emphasis markers. Terms are collected per section and never leak
// into neighboring sections.
package emphasis

import (
	"regexp"
	"sort"
	"strings"
)

var (
	parenRe = regexp.MustCompile(`\(([^)]*)\)`)
	wordRe  = regexp.MustCompile(`\w+`)
	onObjRe = regexp.MustCompile(`called on an object (\w+)`)
	letBeRe = regexp.MustCompile(`[Ll]et (\w+) be`)
)

// Process rewrites markup source section by section. A section is a heading
// line plus the body text up to the next heading; text before the first
// heading passes through untouched. Pure text to text.
func Process(src string) string {
	lines := strings.SplitAfter(src, "\n")

	var out strings.Builder
	var heading string
	var body strings.Builder
	inSection := false

	flush := func() {
		if !inSection {
			return
		}
		out.WriteString(heading)
		out.WriteString(rewriteSection(heading, body.String()))
		body.Reset()
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			flush()
			heading = line
			inSection = true
			continue
		}
		if inSection {
			body.WriteString(line)
		} else {
			out.WriteString(line)
		}
	}
	flush()
	return out.String()
}

// rewriteSection emphasizes the section's terms in its body text and marks
// the "this" of "the this value" strong.
func rewriteSection(heading, body string) string {
	body = strings.ReplaceAll(body, "the this value", "the **this** value")

	terms := collectTerms(heading, body)
	if len(terms) == 0 {
		return body
	}

	return termPattern(terms).ReplaceAllStringFunc(body, func(m string) string {
		if strings.Contains(m, "*") {
			return m
		}
		return "*" + m + "*"
	})
}

// collectTerms gathers the term names a section defines: every word of the
// heading's first parenthesized group, plus names the body introduces with
// "called on an object X" or "let X be".
func collectTerms(heading, body string) []string {
	var terms []string
	seen := map[string]bool{}
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	if m := parenRe.FindStringSubmatch(heading); m != nil {
		for _, w := range wordRe.FindAllString(m[1], -1) {
			add(w)
		}
	}
	for _, m := range onObjRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}
	for _, m := range letBeRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}
	return terms
}

// termPattern builds the standalone-occurrence pattern for a term set. The
// optional asterisks let a match swallow surrounding emphasis markers, so
// the caller can recognize an occurrence that is already emphasized and
// leave it alone.
func termPattern(terms []string) *regexp.Regexp {
	sorted := append([]string(nil), terms...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`\*?\b(?:` + strings.Join(quoted, "|") + `)\b\*?`)
}
