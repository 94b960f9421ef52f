package rules

var financeRules = table{
	category: "Finance",
	impact:   "Financial accounting in S/4HANA posts to the Universal Journal and several classic FI components are replaced.",
	source: []entry{
		{"SIMPL-FI-001", critical, `\bBSEG\b`,
			"Direct access to accounting document segment BSEG",
			"Read journal entry line items from ACDOCA or the CDS view I_JournalEntryItem instead of BSEG.", "1976487"},
		{"SIMPL-FI-002", high, `CALL\s+TRANSACTION\s+'(FB01|FB50|FB60|FB70|F-02|F-43)'`,
			"Batch input on FI posting transactions",
			"Post through BAPI_ACC_DOCUMENT_POST or the journal entry API instead of batch input.", ""},
		{"SIMPL-FI-003", medium, `'POSTING_INTERFACE_DOCUMENT'`,
			"Classic FI posting interface",
			"Replace POSTING_INTERFACE_DOCUMENT with BAPI_ACC_DOCUMENT_POST.", ""},
		{"SIMPL-FI-004", high, `\bKNKK\b`,
			"FI-AR credit management data KNKK",
			"Credit limits live in SAP Credit Management (FSCM); read UKMBP_CMS_SGM.", ""},
		{"SIMPL-FI-005", high, `\bKNKA\b`,
			"FI-AR central credit data KNKA",
			"Central credit data lives in SAP Credit Management (FSCM); read UKMBP_CMS.", ""},
		{"SIMPL-FI-006", medium, `\bS06[67]\b`,
			"Credit management info structures S066/S067",
			"Open credit values are computed by SAP Credit Management; remove LIS reads.", ""},
		{"SIMPL-FI-007", medium, `\b(FDES|FDSB|FDSR)\b`,
			"Classic cash management tables",
			"Cash positions come from One Exposure (FQM_FLOW); rework cash management reads.", ""},
		{"SIMPL-FI-008", low, `\bT012K\b`,
			"House bank accounts read from T012K",
			"Bank accounts are maintained in Bank Account Management; verify T012K is still populated for your use.", ""},
	},
}

var universalJournalRules = table{
	category: "Universal Journal",
	impact:   "ACDOCA replaces the FI, CO, AA and ML line item and totals tables; the old tables survive only as compatibility views.",
	source: []entry{
		{"SIMPL-FIN-001", high, `\bBSEG\b([^-]|$)`,
			"BSEG table access superseded by ACDOCA",
			"Select from ACDOCA instead of BSEG.", "1976487"},
		{"SIMPL-FIN-002", high, `\bBSEG-(DMBTR|WRBTR|HKONT|KOSTL|BUKRS|GJAHR|BELNR|PRCTR|AUFNR|SHKZG)\b`,
			"BSEG field references",
			"Use the ACDOCA field names (HSL, WSL, RACCT, RCNTR, RBUKRS ...).", "1976487"},
		{"SIMPL-FIN-003", high, `\bBSIS\b`,
			"G/L open item index BSIS",
			"BSIS is a compatibility view; select from ACDOCA.", "1976487"},
		{"SIMPL-FIN-004", high, `\bBSAS\b`,
			"G/L cleared item index BSAS",
			"BSAS is a compatibility view; select from ACDOCA.", "1976487"},
		{"SIMPL-FIN-005", high, `\bBSID\b`,
			"Customer open item index BSID",
			"Read open customer items through I_OperationalAcctgDocItem.", "1976487"},
		{"SIMPL-FIN-006", high, `\bBSAD\b`,
			"Customer cleared item index BSAD",
			"Read cleared customer items through I_OperationalAcctgDocItem.", "1976487"},
		{"SIMPL-FIN-007", high, `\bBSIK\b`,
			"Vendor open item index BSIK",
			"Read open supplier items through I_OperationalAcctgDocItem.", "1976487"},
		{"SIMPL-FIN-008", high, `\bBSAK\b`,
			"Vendor cleared item index BSAK",
			"Read cleared supplier items through I_OperationalAcctgDocItem.", "1976487"},
		{"SIMPL-FIN-009", medium, `\bGLT0\b`,
			"Classic G/L totals GLT0",
			"Totals are aggregated on the fly from ACDOCA.", ""},
		{"SIMPL-FIN-010", medium, `\bFAGLFLEXT\b`,
			"New G/L totals FAGLFLEXT",
			"Totals are aggregated on the fly from ACDOCA.", ""},
		{"SIMPL-FIN-011", medium, `\bFAGLFLEXA\b`,
			"New G/L line items FAGLFLEXA",
			"Select ledger line items from ACDOCA.", ""},
		{"SIMPL-FIN-012", medium, `\bFAGLFLEXP\b`,
			"New G/L plan line items FAGLFLEXP",
			"Plan data is stored in ACDOCP.", ""},
		{"SIMPL-FIN-013", high, `\bANEP\b`,
			"Asset line items ANEP",
			"Asset postings are in ACDOCA; statistical items in FAAT_DOC_IT.", ""},
		{"SIMPL-FIN-014", medium, `\bANLP\b`,
			"Asset periodic values ANLP",
			"Planned depreciation values are in FAAT_PLAN_VALUES.", ""},
		{"SIMPL-FIN-015", medium, `\bANLC\b`,
			"Asset value fields ANLC",
			"Year-dependent depreciation amounts are in FAAT_YDDA.", ""},
		{"SIMPL-FIN-016", medium, `\bANEA\b`,
			"Asset line items for proportional values ANEA",
			"Proportional values are derived from ACDOCA; rework the read.", ""},
		{"SIMPL-FIN-017", medium, `\bGLT3\b`,
			"Consolidation preparation totals GLT3",
			"Consolidation staging reads ACDOCA; remove GLT3 access.", ""},
	},
}

var controllingRules = table{
	category: "Controlling",
	impact:   "CO actual postings are part of the Universal Journal and costing-based profitability analysis is being phased out.",
	source: []entry{
		{"SIMPL-CO-001", high, `\bCOEP\b`,
			"CO actual line items COEP",
			"Actual CO line items are in ACDOCA.", ""},
		{"SIMPL-CO-002", medium, `\bCOSP\b`,
			"CO primary cost totals COSP",
			"COSP is a compatibility view; aggregate from ACDOCA.", ""},
		{"SIMPL-CO-003", medium, `\bCOSS\b`,
			"CO secondary cost totals COSS",
			"COSS is a compatibility view; aggregate from ACDOCA.", ""},
		{"SIMPL-CO-004", high, `\bCE[1-4][A-Z0-9]{4}\b`,
			"Costing-based CO-PA tables",
			"Move to account-based profitability analysis on ACDOCA.", ""},
		{"SIMPL-CO-005", low, `\bCOBK\b`,
			"CO document header COBK",
			"Headers remain but their line items moved; verify joins with COEP.", ""},
		{"SIMPL-CO-006", medium, `\bCOVP\b`,
			"CO line item view COVP",
			"Replace COVP joins with ACDOCA selections.", ""},
		{"SIMPL-CO-007", high, `\b(COFIT|COFIP|COFIS)\b`,
			"Reconciliation ledger tables",
			"The reconciliation ledger is obsolete; FI and CO are reconciled in real time.", ""},
	},
}
