package remediator

import "strings"

// UnifiedDiff renders a line diff between the original and the remediated
// source of one object. Lines are compared pairwise by position: a differing
// pair is printed as a removal followed by an addition. The output is meant
// for review, not for patch(1).
func UnifiedDiff(name, original, modified string) string {
	a := diffLines(original)
	b := diffLines(modified)

	var out strings.Builder
	out.WriteString("--- " + name + " (original)\n")
	out.WriteString("+++ " + name + " (remediated)\n")

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] == b[j] {
			out.WriteString(" " + a[i] + "\n")
		} else {
			out.WriteString("-" + a[i] + "\n")
			out.WriteString("+" + b[j] + "\n")
		}
		i++
		j++
	}
	for ; i < len(a); i++ {
		out.WriteString("-" + a[i] + "\n")
	}
	for ; j < len(b); j++ {
		out.WriteString("+" + b[j] + "\n")
	}
	return out.String()
}

func diffLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
