package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
)

// forEachLine calls fn with every line of source (without its line ending)
// and reassembles the result, keeping the original \n / \r\n endings.
func forEachLine(source string, fn func(i int, line string) string) string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		body := strings.TrimSuffix(l, "\r")
		cr := len(body) != len(l)
		out := fn(i, body)
		if cr {
			out += "\r"
		}
		lines[i] = out
	}
	return strings.Join(lines, "\n")
}

// matchCase returns repl in upper case when matched is all upper case, lower case otherwise
func matchCase(matched, repl string) string {
	if matched == strings.ToUpper(matched) {
		return strings.ToUpper(repl)
	}
	return strings.ToLower(repl)
}

// tableRename replaces a table identifier with its successor.
// Occurrences followed by "-" are field references and are left to fieldRewrite.
type tableRename struct {
	id   string
	from string
	to   string
	re   *regexp.Regexp
}

func rename(id, from, to string) *tableRename {
	return &tableRename{
		id:   id,
		from: from,
		to:   to,
		re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(from) + `\b`),
	}
}

func (t *tableRename) RuleID() string { return t.id }

func (t *tableRename) Apply(source string, _ models.Finding) (Output, error) {
	idx := t.re.FindAllStringIndex(source, -1)
	if len(idx) == 0 {
		return unchanged(source), nil
	}

	var b strings.Builder
	var changes []models.ChangeRecord
	last := 0
	for _, loc := range idx {
		start, end := loc[0], loc[1]
		if end < len(source) && source[end] == '-' {
			continue
		}
		matched := source[start:end]
		repl := matchCase(matched, t.to)
		b.WriteString(source[last:start])
		b.WriteString(repl)
		last = end
		changes = append(changes, models.Replace(matched, repl))
	}
	if len(changes) == 0 {
		return unchanged(source), nil
	}
	b.WriteString(source[last:])

	return Output{Source: b.String(), Changes: changes}, nil
}

// fieldRewrite replaces TABLE-FIELD references with their successor table and field.
// A nil field map keeps field names; otherwise unmapped fields are left alone.
type fieldRewrite struct {
	id     string
	tables map[string]string
	fields map[string]string
	re     *regexp.Regexp
}

func fieldRefs(id string, tables, fields map[string]string) *fieldRewrite {
	names := make([]string, 0, len(tables))
	for old := range tables {
		names = append(names, regexp.QuoteMeta(old))
	}
	sort.Strings(names)
	return &fieldRewrite{
		id:     id,
		tables: tables,
		fields: fields,
		re:     regexp.MustCompile(`(?i)\b(` + strings.Join(names, "|") + `)-(\w+)`),
	}
}

func (t *fieldRewrite) RuleID() string { return t.id }

func (t *fieldRewrite) Apply(source string, _ models.Finding) (Output, error) {
	var changes []models.ChangeRecord
	out := t.re.ReplaceAllStringFunc(source, func(ref string) string {
		m := t.re.FindStringSubmatch(ref)
		table, field := m[1], m[2]

		newTable, ok := t.tables[strings.ToUpper(table)]
		if !ok {
			return ref
		}
		newField := strings.ToUpper(field)
		if t.fields != nil {
			mapped, ok := t.fields[newField]
			if !ok {
				return ref
			}
			newField = mapped
		}

		repl := matchCase(table, newTable) + "-" + matchCase(field, newField)
		changes = append(changes, models.Replace(ref, repl))
		return repl
	})

	if len(changes) == 0 {
		return unchanged(source), nil
	}
	return Output{Source: out, Changes: changes}, nil
}

// todoMarker starts every comment inserted by deprecatedCall
const todoMarker = `" TODO(S/4HANA):`

// deprecatedCall puts a TODO comment above each call of a deprecated function module.
// The call itself is kept verbatim below the comment.
type deprecatedCall struct {
	id          string
	function    string
	replacement string
	re          *regexp.Regexp
}

func deprecated(id, function, replacement string) *deprecatedCall {
	return &deprecatedCall{
		id:          id,
		function:    function,
		replacement: replacement,
		re:          regexp.MustCompile(`(?i)^(\s*)CALL\s+FUNCTION\s+'` + regexp.QuoteMeta(function) + `'`),
	}
}

func (t *deprecatedCall) RuleID() string { return t.id }

func (t *deprecatedCall) note() string {
	return fmt.Sprintf("replace %s with %s", t.function, t.replacement)
}

func (t *deprecatedCall) Apply(source string, _ models.Finding) (Output, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines)+1)
	var changes []models.ChangeRecord

	for i, l := range lines {
		m := t.re.FindStringSubmatch(strings.TrimSuffix(l, "\r"))
		if m != nil && !t.annotated(lines, i) {
			comment := m[1] + todoMarker + " " + t.note()
			if strings.HasSuffix(l, "\r") {
				comment += "\r"
			}
			out = append(out, comment)
			changes = append(changes, models.Comment(t.note(), t.function))
		}
		out = append(out, l)
	}

	if len(changes) == 0 {
		return unchanged(source), nil
	}
	return Output{Source: strings.Join(out, "\n"), Changes: changes}, nil
}

// annotated reports whether the line above i already carries this transform's comment
func (t *deprecatedCall) annotated(lines []string, i int) bool {
	if i == 0 {
		return false
	}
	prev := strings.TrimSpace(lines[i-1])
	return strings.HasPrefix(prev, todoMarker) && strings.Contains(prev, t.function)
}

// rewrite is a line-anchored modernization: lines matching re are rebuilt from their submatches.
// build returns the new line, or the input line to leave it alone.
type rewrite struct {
	id    string
	re    *regexp.Regexp
	build func(line string, m []string) string
}

func modernize(id, pattern string, build func(line string, m []string) string) *rewrite {
	return &rewrite{id: id, re: regexp.MustCompile(`(?i)` + pattern), build: build}
}

func (t *rewrite) RuleID() string { return t.id }

func (t *rewrite) Apply(source string, _ models.Finding) (Output, error) {
	var changes []models.ChangeRecord
	out := forEachLine(source, func(_ int, line string) string {
		m := t.re.FindStringSubmatch(line)
		if m == nil {
			return line
		}
		next := t.build(line, m)
		if next == line {
			return line
		}
		changes = append(changes, models.Replace(strings.TrimSpace(line), strings.TrimSpace(next)))
		return next
	})

	if len(changes) == 0 {
		return unchanged(source), nil
	}
	return Output{Source: out, Changes: changes}, nil
}

// flagOnly reports each construct the finding matched without touching the source
type flagOnly struct {
	id   string
	note string
}

func flag(id, note string) *flagOnly {
	return &flagOnly{id: id, note: note}
}

func (t *flagOnly) RuleID() string { return t.id }

func (t *flagOnly) Apply(source string, f models.Finding) (Output, error) {
	out := unchanged(source)
	for _, m := range f.Matches {
		target := m.Content
		if !m.IsNameMatch() {
			target = fmt.Sprintf("line %d: %s", m.Line, m.Content)
		}
		out.Changes = append(out.Changes, models.Flag(target, t.note))
	}
	return out, nil
}
