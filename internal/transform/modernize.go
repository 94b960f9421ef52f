package transform

import "strings"

// Language modernizations. Every pattern is anchored on a complete statement so
// that the rewritten line can never match again.

func modernizations() []Transform {
	return []Transform{
		modernize("SIMPL-ABAP-001",
			`^(\s*)(DATA|TYPES)(:?)\s+(\w+)\s+(TYPE|LIKE)\s+(\S+)\s+OCCURS\s+\d+\s*\.\s*$`,
			func(_ string, m []string) string {
				return m[1] + m[2] + m[3] + " " + m[4] + " " + m[5] + " STANDARD TABLE OF " + m[6] + "."
			}),
		modernize("SIMPL-ABAP-003",
			`^(\s*)CREATE\s+OBJECT\s+([\w\->]+)\s*\.\s*$`,
			func(_ string, m []string) string {
				return m[1] + m[2] + " = NEW #( )."
			}),
		modernize("SIMPL-ABAP-004",
			`^(\s*)TRANSLATE\s+(\S+)\s+TO\s+(UPPER|LOWER)\s+CASE\s*\.\s*$`,
			func(_ string, m []string) string {
				fn := "to_" + strings.ToLower(m[3])
				return m[1] + m[2] + " = " + fn + "( " + m[2] + " )."
			}),
		modernize("SIMPL-ABAP-005",
			`^(\s*)MOVE\s+(\S+)\s+TO\s+(\S+?)\s*\.\s*$`,
			func(_ string, m []string) string {
				return m[1] + m[3] + " = " + m[2] + "."
			}),
		modernize("SIMPL-ABAP-006",
			`^(\s*)REFRESH\s+(\S+?)\s*\.\s*$`,
			func(_ string, m []string) string {
				return m[1] + "CLEAR " + m[2] + "."
			}),
		modernize("SIMPL-ABAP-007",
			`^(\s*)DESCRIBE\s+TABLE\s+(\S+)\s+LINES\s+(\S+?)\s*\.\s*$`,
			func(_ string, m []string) string {
				return m[1] + m[3] + " = lines( " + m[2] + " )."
			}),
		modernize("SIMPL-ABAP-008",
			`^(\s*)(ADD|SUBTRACT)\s+(\S+)\s+(TO|FROM)\s+(\S+?)\s*\.\s*$`,
			func(line string, m []string) string {
				op := strings.ToUpper(m[2])
				prep := strings.ToUpper(m[4])
				switch {
				case op == "ADD" && prep == "TO":
					return m[1] + m[5] + " += " + m[3] + "."
				case op == "SUBTRACT" && prep == "FROM":
					return m[1] + m[5] + " -= " + m[3] + "."
				}
				return line
			}),
		modernize("SIMPL-ABAP-009",
			`^(\s*)(MULTIPLY|DIVIDE)\s+(\S+)\s+BY\s+(\S+?)\s*\.\s*$`,
			func(_ string, m []string) string {
				op := " *= "
				if strings.EqualFold(m[2], "DIVIDE") {
					op = " /= "
				}
				return m[1] + m[3] + op + m[4] + "."
			}),
		modernize("SIMPL-ABAP-010",
			`^(\s*)CALL\s+METHOD\s+([\w\->=]+?)\s*\.\s*$`,
			func(_ string, m []string) string {
				return m[1] + m[2] + "( )."
			}),
		modernize("SIMPL-ABAP-019",
			`^(\s*)COMPUTE\s+(\S.*)$`,
			func(line string, m []string) string {
				if strings.HasPrefix(strings.ToUpper(m[2]), "EXACT ") {
					return line
				}
				return m[1] + m[2]
			}),
		modernize("SIMPL-MM-006",
			`^(.*?matnr\w*)(\(18\)|\s+TYPE\s+c\s+LENGTH\s+18\b)(.*)$`,
			func(_ string, m []string) string {
				decl := m[2]
				if decl == "(18)" {
					decl = "(40)"
				} else {
					decl = decl[:len(decl)-2] + "40"
				}
				return m[1] + decl + m[3]
			}),
	}
}
