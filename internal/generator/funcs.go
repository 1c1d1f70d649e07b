package generator

import (
	"strings"
	"text/template"

	"mvvmgen/internal/builder"
)

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"quote":      quote,
		"docComment": formatDocComment,
	}
}

// quote renders s as a C# regular string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

// docLines turns documentation fragments into XML doc comment lines. Lines
// that already start with an XML tag are forwarded as written; anything else
// is wrapped in a summary element.
func docLines(doc []string) []string {
	var lines []string
	for _, d := range doc {
		for _, l := range strings.Split(strings.TrimSpace(d), "\n") {
			lines = append(lines, strings.TrimSpace(l))
		}
	}
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return nil
	}

	var out []string
	if strings.HasPrefix(lines[0], "<") {
		for _, l := range lines {
			out = append(out, "/// "+l)
		}
		return out
	}
	out = append(out, "/// <summary>")
	for _, l := range lines {
		out = append(out, "/// "+l)
	}
	out = append(out, "/// </summary>")
	return out
}

// formatDocComment formats a documentation comment for C#.
func formatDocComment(doc ...string) string {
	return strings.Join(docLines(doc), "\n")
}

// writeDoc emits forwarded documentation followed by attributes.
func writeDoc(b *builder.CodeBuilder, doc, attributes []string) {
	if text := formatDocComment(doc...); text != "" {
		b.AppendLines(text)
	}
	for _, a := range attributes {
		a = strings.TrimSpace(a)
		if !strings.HasPrefix(a, "[") {
			a = "[" + a + "]"
		}
		b.AppendLine(a)
	}
}

// invoke renders a callback reference as a statement. Bare method names are
// called without arguments.
func invoke(callback string) string {
	callback = strings.TrimSpace(callback)
	if strings.Contains(callback, "(") {
		return strings.TrimSuffix(callback, ";") + ";"
	}
	return callback + "();"
}

// isNullable reports whether a C# type spelling is a nullable type.
func isNullable(typ string) bool {
	return strings.HasSuffix(strings.TrimSpace(typ), "?")
}
