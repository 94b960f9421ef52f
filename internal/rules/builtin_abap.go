package rules

var abapRules = table{
	category: "ABAP Language",
	impact:   "Obsolete ABAP statements block ABAP Cloud readiness and some behave differently on SAP HANA.",
	source: []entry{
		{"SIMPL-ABAP-001", low, `\bOCCURS\b`,
			"Internal table declared with OCCURS",
			"Declare the table as TYPE STANDARD TABLE OF.", ""},
		{"SIMPL-ABAP-002", medium, `WITH\s+HEADER\s+LINE`,
			"Internal table with header line",
			"Remove the header line and use an explicit work area.", ""},
		{"SIMPL-ABAP-003", low, `^\s*CREATE\s+OBJECT\s+[\w\->]+\s*\.`,
			"CREATE OBJECT statement",
			"Use the NEW constructor operator.", ""},
		{"SIMPL-ABAP-004", low, `^\s*TRANSLATE\s+\S+\s+TO\s+(UPPER|LOWER)\s+CASE\s*\.`,
			"TRANSLATE ... TO UPPER/LOWER CASE",
			"Use the built-in functions to_upper( ) / to_lower( ).", ""},
		{"SIMPL-ABAP-005", low, `^\s*MOVE\s+\S+\s+TO\s+\S+\s*\.`,
			"MOVE statement",
			"Use the assignment operator.", ""},
		{"SIMPL-ABAP-006", low, `^\s*REFRESH\s+\S+\s*\.`,
			"REFRESH statement",
			"Use CLEAR.", ""},
		{"SIMPL-ABAP-007", low, `^\s*DESCRIBE\s+TABLE\s+\S+\s+LINES\s+\S+\s*\.`,
			"DESCRIBE TABLE ... LINES",
			"Use the built-in function lines( ).", ""},
		{"SIMPL-ABAP-008", low, `^\s*(ADD|SUBTRACT)\s+\S+\s+(TO|FROM)\s+\S+\s*\.`,
			"ADD / SUBTRACT statement",
			"Use the += and -= operators.", ""},
		{"SIMPL-ABAP-009", low, `^\s*(MULTIPLY|DIVIDE)\s+\S+\s+BY\s+\S+\s*\.`,
			"MULTIPLY / DIVIDE statement",
			"Use the *= and /= operators.", ""},
		{"SIMPL-ABAP-010", low, `^\s*CALL\s+METHOD\s+[\w\->=]+\s*\.`,
			"CALL METHOD without parameters",
			"Use the functional method call syntax.", ""},
		{"SIMPL-ABAP-011", high, `\bEXEC\s+SQL\b`,
			"Native SQL",
			"Native SQL bound to the old database breaks on SAP HANA; use Open SQL or AMDP.", "2241080"},
		{"SIMPL-ABAP-012", medium, `\bBINARY\s+SEARCH\b`,
			"READ TABLE ... BINARY SEARCH",
			"SAP HANA returns rows without implicit order; sort before a binary search or use a sorted table.", "2241080"},
		{"SIMPL-ABAP-013", medium, `\bDELETE\s+ADJACENT\s+DUPLICATES\b`,
			"DELETE ADJACENT DUPLICATES",
			"Sort the table explicitly first; SELECT results are not ordered on SAP HANA.", "2241080"},
		{"SIMPL-ABAP-014", low, `^\s*AT\s+(NEW|END\s+OF)\b`,
			"Control level processing",
			"Control breaks rely on sort order; sort explicitly before the loop.", "2241080"},
		{"SIMPL-ABAP-015", medium, `\bCLIENT\s+SPECIFIED\b`,
			"CLIENT SPECIFIED addition",
			"Use USING CLIENT.", ""},
		{"SIMPL-ABAP-016", low, `\bBYPASSING\s+BUFFER\b`,
			"BYPASSING BUFFER addition",
			"Check whether bypassing the table buffer is still needed on SAP HANA.", ""},
		{"SIMPL-ABAP-017", low, `\bIN\s+BACKGROUND\s+TASK\b`,
			"tRFC call IN BACKGROUND TASK",
			"Use bgRFC.", ""},
		{"SIMPL-ABAP-018", low, `\bON\s+CHANGE\s+OF\b`,
			"ON CHANGE OF",
			"Compare against a saved value explicitly.", ""},
		{"SIMPL-ABAP-019", low, `^\s*COMPUTE\s+`,
			"COMPUTE keyword",
			"Drop the COMPUTE keyword.", ""},
		{"SIMPL-ABAP-020", low, `^\s*LOCAL\s+\w+`,
			"LOCAL statement",
			"Save and restore the data object explicitly.", ""},
		{"SIMPL-ABAP-021", low, `^\s*RANGES\b`,
			"RANGES statement",
			"Declare DATA ... TYPE RANGE OF.", ""},
		{"SIMPL-ABAP-022", low, `^\s*SEARCH\s+\S+\s+FOR\b`,
			"SEARCH statement",
			"Use FIND.", ""},
		{"SIMPL-ABAP-023", medium, `\bCALL\s+DIALOG\b`,
			"CALL DIALOG",
			"Dialog modules are obsolete; call a function module or class.", ""},
		{"SIMPL-ABAP-024", low, `\bSET\s+EXTENDED\s+CHECK\b`,
			"SET EXTENDED CHECK",
			"Use pragmas or pseudo comments instead.", ""},
		{"SIMPL-ABAP-025", low, `^\s*TABLES\s*:?\s*\w+\s*[.,]\s*$`,
			"TABLES work area declaration",
			"Declare explicit work areas.", ""},
		{"SIMPL-ABAP-026", low, `^\s*CHECK\s+SELECT-OPTIONS\b`,
			"CHECK SELECT-OPTIONS",
			"Check against the selection table with IN.", ""},
		{"SIMPL-ABAP-027", low, `\bCATCH\s+SYSTEM-EXCEPTIONS\b`,
			"CATCH SYSTEM-EXCEPTIONS",
			"Use TRY ... CATCH with class-based exceptions.", ""},
		{"SIMPL-ABAP-028", low, `\bFIELD-GROUPS\b`,
			"Extract datasets (FIELD-GROUPS)",
			"Use internal tables.", ""},
		{"SIMPL-ABAP-029", medium, `\bCALL\s+METHOD\s+OF\b`,
			"OLE automation",
			"OLE needs SAP GUI for Windows and does not run in Fiori or background; use XLSX/document APIs.", ""},
	},
}

var enhancementRules = table{
	category: "Enhancements",
	impact:   "Modifications and classic exits must be reviewed against the S/4HANA code base.",
	source: []entry{
		{"SIMPL-ENH-002", medium, `\bCALL\s+CUSTOMER-FUNCTION\b`,
			"Customer exit call",
			"Check the exit still exists in S/4HANA and move logic to a BAdI where possible.", ""},
		{"SIMPL-ENH-003", medium, `\bENHANCEMENT-POINT\b`,
			"Explicit enhancement point",
			"Re-verify the enhancement point against the S/4HANA version of the program.", ""},
		{"SIMPL-ENH-004", medium, `^\s*ENHANCEMENT\s+\d+\s+\w+`,
			"Enhancement implementation",
			"Re-verify the implementation; the surrounding standard code may have changed.", ""},
		{"SIMPL-ENH-005", medium, `\bENHANCEMENT-SECTION\b`,
			"Explicit enhancement section",
			"Re-verify the replaced standard code against S/4HANA.", ""},
		{"SIMPL-ENH-006", low, `\b(GET|CALL)\s+BADI\b`,
			"New BAdI call",
			"Check the BAdI definition is unchanged in S/4HANA.", ""},
		{"SIMPL-ENH-007", medium, `\bCL_EXITHANDLER=>GET_INSTANCE\b`,
			"Classic BAdI instantiation",
			"Migrate the classic BAdI to a new BAdI (GET BADI).", ""},
		{"SIMPL-ENH-010", medium, `\bUSEREXIT_\w+`,
			"SD user exit form routine",
			"Check the user exit is still called; prefer BAdIs where offered.", ""},
	},
	names: []entry{
		{"SIMPL-ENH-001", medium, `^[ZY]\w*EXIT`,
			"Custom exit handler object",
			"Review which standard exit the object implements and whether it still exists.", ""},
		{"SIMPL-ENH-008", high, `^[ZY]X[A-Z0-9]{4,}$`,
			"Customer exit include",
			"The include belongs to a customer exit (CMOD); re-verify the enhancement project.", ""},
		{"SIMPL-ENH-009", medium, `^[ZY]\w*BADI`,
			"BAdI implementation object",
			"Re-verify the implemented BAdI interface against S/4HANA.", ""},
	},
}
