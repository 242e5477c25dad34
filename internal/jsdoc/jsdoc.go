// Package jsdoc extracts the tiny JSDoc annotation surface spec.md §4.C.2
// describes from a single `/** ... */` block comment's raw text: `@type`,
// `@param`, `@returns`, `@template`, `@typedef`. It does not parse
// JavaScript and does not give JSDoc its own type grammar — a `{T}` tag's
// contents are handed to the surface type parser (parser.ParseTypeString)
// unchanged, beyond stripping the `import("...").` prefix spec.md's tiny
// subset allows, which that grammar has no syntax for.
//
// Grounded on funxy's small hand-rolled line scanners (e.g. the lexer's
// own switch-on-rune dispatch, internal/lexer/lexer.go): the tag grammar
// here is a handful of fixed keywords over single lines, so a line-by-line
// scan matches that idiom better than a regexp table.
package jsdoc

import "strings"

// ParamTag is one `@param {T} name` annotation.
type ParamTag struct {
	Name string
	Type string
}

// TypedefTag is one `@typedef {T} Name` annotation.
type TypedefTag struct {
	Name string
	Type string
}

// Doc is everything one JSDoc block comment contributes.
type Doc struct {
	Type      string // @type {T}
	Returns   string // @returns {T} / @return {T}
	Params    []ParamTag
	Templates []string // @template T, U
	Typedef   *TypedefTag
}

// Parse scans one `/** ... */` comment's raw text into a Doc. Unknown tags
// and malformed lines are silently skipped; ingestion is best-effort,
// matching spec.md §4.C.2's "tiny subset" contract rather than a full
// JSDoc grammar.
func Parse(raw string) Doc {
	var doc Doc
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "/**")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "@") {
			continue
		}
		tag, rest := splitTag(line)
		switch tag {
		case "type":
			if t, _, ok := splitBraced(rest); ok {
				doc.Type = stripImportPrefix(t)
			}
		case "returns", "return":
			if t, _, ok := splitBraced(rest); ok {
				doc.Returns = stripImportPrefix(t)
			}
		case "param", "arg", "argument":
			t, after, ok := splitBraced(rest)
			if !ok {
				continue
			}
			name := paramName(after)
			if name != "" {
				doc.Params = append(doc.Params, ParamTag{Name: name, Type: stripImportPrefix(t)})
			}
		case "template":
			for _, name := range strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
				if name != "" {
					doc.Templates = append(doc.Templates, name)
				}
			}
		case "typedef":
			t, after, ok := splitBraced(rest)
			if !ok {
				continue
			}
			name := strings.TrimSpace(strings.Fields(after + " ")[0])
			if name != "" {
				doc.Typedef = &TypedefTag{Name: name, Type: stripImportPrefix(t)}
			}
		}
	}
	return doc
}

// splitTag splits a line starting with "@" into its tag name and the
// remainder of the line.
func splitTag(line string) (tag, rest string) {
	line = strings.TrimPrefix(line, "@")
	i := strings.IndexAny(line, " \t{")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

// splitBraced reads a balanced `{...}` prefix (after optional leading
// whitespace) from s, returning its contents and whatever follows.
func splitBraced(s string) (inner, rest string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return "", s, false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], strings.TrimSpace(s[i+1:]), true
			}
		}
	}
	return "", s, false
}

// paramName extracts the parameter name from the text following a
// `@param`'s `{T}`, handling the `[name]` and `[name=default]` optional-
// parameter forms and trailing `- description` text.
func paramName(after string) string {
	after = strings.TrimSpace(after)
	if after == "" {
		return ""
	}
	field := strings.Fields(after)[0]
	field = strings.TrimPrefix(field, "[")
	field = strings.TrimSuffix(field, "]")
	if i := strings.IndexByte(field, '='); i >= 0 {
		field = field[:i]
	}
	return field
}

// stripImportPrefix rewrites JSDoc's `import("module").Name` type-only
// import form down to the bare trailing name: tscore has one module-less
// interner per compilation, so only the terminal identifier (resolved
// against `@typedef` names and top-level declarations, same as any other
// bare type reference) carries meaning.
func stripImportPrefix(t string) string {
	t = strings.TrimSpace(t)
	if !strings.HasPrefix(t, "import(") {
		return t
	}
	i := strings.Index(t, ").")
	if i < 0 {
		return t
	}
	return t[i+2:]
}
