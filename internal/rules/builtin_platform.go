package rules

var dataModelRules = table{
	category: "Data Model",
	impact:   "Simplified data models remove tables and forbid direct writes to standard tables.",
	source: []entry{
		{"SIMPL-DM-001", medium, `\b(EIKP|EIPO)\b`,
			"Foreign trade data EIKP/EIPO",
			"SD foreign trade is replaced by SAP Global Trade Services or International Trade.", "2269324"},
		{"SIMPL-DM-002", high, `\b(VBREVK|VBREVE|VBREVR)\b`,
			"SD revenue recognition tables",
			"SD revenue recognition is replaced by Revenue Accounting and Reporting.", "2269324"},
		{"SIMPL-DM-003", medium, `\bNAST\b`,
			"Output control table NAST",
			"Output is handled by the new output management (BRF+); check NAST based logic.", "2269324"},
		{"SIMPL-DM-004", high, `^\s*(UPDATE|MODIFY|INSERT|DELETE)\s+(VBAK|VBAP|EKKO|EKPO|MARA|BKPF|LIKP|LIPS)\b`,
			"Direct write to standard document tables",
			"Change standard documents through released APIs only.", "2269324"},
	},
}

var removedRules = table{
	category: "Removed Functionality",
	impact:   "The function or transaction is removed or no longer maintained.",
	source: []entry{
		{"SIMPL-RMV-001", medium, `CALL\s+TRANSACTION\s+'ME2[1-3]'`,
			"Batch input on old purchase order transactions",
			"ME21/ME22/ME23 are removed; use BAPI_PO_CREATE1 / BAPI_PO_CHANGE.", ""},
		{"SIMPL-RMV-002", medium, `CALL\s+TRANSACTION\s+'VL0[12]'`,
			"Batch input on old delivery transactions",
			"VL01/VL02 are removed; use the delivery BAPIs.", ""},
		{"SIMPL-RMV-003", medium, `'SO_NEW_DOCUMENT_SEND_API1'`,
			"SAPoffice send API",
			"Send mail through CL_BCS.", ""},
		{"SIMPL-RMV-004", medium, `'WS_DOWNLOAD'`,
			"Obsolete WS_DOWNLOAD",
			"Use CL_GUI_FRONTEND_SERVICES=>GUI_DOWNLOAD.", ""},
		{"SIMPL-RMV-005", medium, `'WS_UPLOAD'`,
			"Obsolete WS_UPLOAD",
			"Use CL_GUI_FRONTEND_SERVICES=>GUI_UPLOAD.", ""},
		{"SIMPL-RMV-006", low, `'POPUP_TO_CONFIRM_STEP'`,
			"Obsolete POPUP_TO_CONFIRM_STEP",
			"Use POPUP_TO_CONFIRM.", ""},
		{"SIMPL-RMV-007", low, `'POPUP_TO_DECIDE'`,
			"Obsolete POPUP_TO_DECIDE",
			"Use POPUP_TO_CONFIRM.", ""},
		{"SIMPL-RMV-008", low, `'REUSE_ALV_GRID_DISPLAY'`,
			"Function module based ALV",
			"Use CL_SALV_TABLE.", ""},
		{"SIMPL-RMV-009", low, `'HELP_VALUES_GET_WITH_TABLE'`,
			"Obsolete value help function",
			"Use F4IF_INT_TABLE_VALUE_REQUEST.", ""},
		{"SIMPL-RMV-010", medium, `'WS_EXECUTE'`,
			"Obsolete WS_EXECUTE",
			"Use CL_GUI_FRONTEND_SERVICES=>EXECUTE.", ""},
		{"SIMPL-RMV-011", medium, `'WS_FILENAME_GET'`,
			"Obsolete WS_FILENAME_GET",
			"Use CL_GUI_FRONTEND_SERVICES=>FILE_OPEN_DIALOG.", ""},
		{"SIMPL-RMV-012", medium, `'WS_QUERY'`,
			"Obsolete WS_QUERY",
			"Use the CL_GUI_FRONTEND_SERVICES query methods.", ""},
		{"SIMPL-RMV-013", low, `'POPUP_TO_CONFIRM_WITH_MESSAGE'`,
			"Obsolete POPUP_TO_CONFIRM_WITH_MESSAGE",
			"Use POPUP_TO_CONFIRM.", ""},
		{"SIMPL-RMV-014", low, `'POPUP_TO_CONFIRM_LOSS_OF_DATA'`,
			"Obsolete POPUP_TO_CONFIRM_LOSS_OF_DATA",
			"Use POPUP_TO_CONFIRM.", ""},
		{"SIMPL-RMV-015", low, `'POPUP_TO_DECIDE_WITH_MESSAGE'`,
			"Obsolete POPUP_TO_DECIDE_WITH_MESSAGE",
			"Use POPUP_TO_CONFIRM.", ""},
		{"SIMPL-RMV-016", low, `'CLPB_EXPORT'`,
			"Obsolete clipboard export",
			"Use CL_GUI_FRONTEND_SERVICES=>CLIPBOARD_EXPORT.", ""},
		{"SIMPL-RMV-017", low, `'CLPB_IMPORT'`,
			"Obsolete clipboard import",
			"Use CL_GUI_FRONTEND_SERVICES=>CLIPBOARD_IMPORT.", ""},
		{"SIMPL-RMV-018", medium, `'SO_OBJECT_SEND'`,
			"SAPoffice object send",
			"Send mail through CL_BCS.", ""},
		{"SIMPL-RMV-019", medium, `'SO_DOCUMENT_SEND_API1'`,
			"SAPoffice document send API",
			"Send mail through CL_BCS.", ""},
		{"SIMPL-RMV-020", low, `'REUSE_ALV_LIST_DISPLAY'`,
			"Function module based list ALV",
			"Use CL_SALV_TABLE.", ""},
		{"SIMPL-RMV-021", low, `'REUSE_ALV_HIERSEQ_LIST_DISPLAY'`,
			"Function module based hierarchical ALV",
			"Use CL_SALV_HIERSEQ_TABLE.", ""},
		{"SIMPL-RMV-022", medium, `'UPLOAD'`,
			"Obsolete UPLOAD",
			"Use CL_GUI_FRONTEND_SERVICES=>GUI_UPLOAD.", ""},
		{"SIMPL-RMV-023", medium, `'DOWNLOAD'`,
			"Obsolete DOWNLOAD",
			"Use CL_GUI_FRONTEND_SERVICES=>GUI_DOWNLOAD.", ""},
	},
}

var configurationRules = table{
	category: "Configuration",
	impact:   "Customizing is adjusted during conversion and must not be changed by custom code.",
	source: []entry{
		{"SIMPL-CFG-001", high, `^\s*(UPDATE|MODIFY|INSERT|DELETE)\s+(T001|T001W|T001L|TVKO|TVTA|T024E)\b`,
			"Direct write to organizational customizing",
			"Maintain organizational units through customizing transports only.", ""},
		{"SIMPL-CFG-002", medium, `\bFAGL_ACTIVEC\b`,
			"New G/L activation check",
			"New G/L is always active; remove the check.", ""},
		{"SIMPL-CFG-003", medium, `\bT881\b`,
			"Ledger definition T881",
			"Ledgers are defined in FINSC_LEDGER.", ""},
		{"SIMPL-CFG-004", medium, `\bT093[A-Z]?\b`,
			"Classic asset accounting depreciation area customizing",
			"New asset accounting changes depreciation area settings; revalidate the reads.", ""},
	},
}

var industryRules = table{
	category: "Industry Solutions",
	impact:   "Industry add-ons are merged into S/4HANA or replaced by successor solutions.",
	source: []entry{
		{"SIMPL-IS-001", medium, `\b(WRS1|WRSZ)\b`,
			"IS-Retail assortment tables",
			"Review assortment logic against S/4HANA Retail.", ""},
		{"SIMPL-IS-002", medium, `\bOIJ[A-Z_]{2,}\b`,
			"IS-Oil TSW tables",
			"Review trader and scheduler logic against S/4HANA Oil & Gas.", ""},
		{"SIMPL-IS-003", high, `\bJ_3A\w+`,
			"Apparel and Footwear (AFS) objects",
			"AFS is replaced by S/4HANA Fashion; redesign against the fashion data model.", ""},
		{"SIMPL-IS-004", medium, `/SAPMP/\w+`,
			"Mill products add-on objects",
			"Mill products functions are merged into S/4HANA; verify each object used.", ""},
		{"SIMPL-IS-005", medium, `\b(WAKH|WAKP)\b`,
			"IS-Retail promotion tables",
			"Review promotion logic against S/4HANA Retail.", ""},
	},
}
