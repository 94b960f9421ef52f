package rules

var materialsRules = table{
	category: "Materials Management",
	impact:   "Inventory management writes a single material document table and stock aggregates are computed on read.",
	source: []entry{
		{"SIMPL-MM-001", critical, `\bMSEG\b([^-]|$)`,
			"Material document items MSEG",
			"Select from MATDOC instead of MSEG.", "2206980"},
		{"SIMPL-MM-002", high, `\bMKPF\b([^-]|$)`,
			"Material document headers MKPF",
			"Select from MATDOC instead of MKPF.", "2206980"},
		{"SIMPL-MM-003", high, `\b(MSEG|MKPF)-\w+`,
			"MSEG/MKPF field references",
			"Reference the same fields on MATDOC.", "2206980"},
		{"SIMPL-MM-004", critical, `^\s*(UPDATE|MODIFY|INSERT|DELETE)\s+(MARD|MCHB|MKOL|MSLB|MSKU|MSPR|MSKA|MARC)\b`,
			"Direct write to stock tables",
			"Stock quantities are derived from MATDOC; post goods movements through BAPI_GOODSMVT_CREATE.", "2206980"},
		{"SIMPL-MM-005", low, `\b(MARD|MCHB|MKOL|MSLB|MSKU|MSPR|MSKA)\b`,
			"Read of stock aggregate tables",
			"Reads go through proxy views (NSDM_V_*); check performance of mass reads.", "2206980"},
		{"SIMPL-MM-006", high, `matnr\w*(\(18\)|\s+TYPE\s+c\s+LENGTH\s+18\b)`,
			"Material number declared with 18 characters",
			"MATNR has 40 characters; declare it TYPE matnr or with length 40.", "2267140"},
		{"SIMPL-MM-007", medium, `'MB_CREATE_GOODS_MOVEMENT'`,
			"Unreleased goods movement function",
			"Use BAPI_GOODSMVT_CREATE.", ""},
		{"SIMPL-MM-008", medium, `CALL\s+TRANSACTION\s+'MB(01|02|03|04|05|0A|11|1A|1B|1C|31|ST)'`,
			"Batch input on MB transactions",
			"MB transactions are replaced by MIGO; post through BAPI_GOODSMVT_CREATE.", ""},
		{"SIMPL-MM-009", low, `\bS03[1-9]\b`,
			"Inventory controlling info structures",
			"LIS inventory structures are not updated; use embedded analytics.", ""},
		{"SIMPL-MM-010", medium, `'MATERIAL_MAINTAIN_DARK'`,
			"Unreleased material maintenance function",
			"Use BAPI_MATERIAL_SAVEDATA or the product master API.", ""},
		{"SIMPL-MM-011", low, `\b(MLHD|MLIT|MLCR)\b`,
			"Classic material ledger documents",
			"Material ledger values are in ACDOCA and MLDOC.", ""},
		{"SIMPL-MM-012", low, `\bMBEW\b`,
			"Material valuation read from MBEW",
			"Actual costing fields are maintained by the material ledger; verify the values read.", ""},
		{"SIMPL-MM-013", medium, `\b(MSSA|MSSL|MSSQ)\b`,
			"Special stock totals tables",
			"The totals are computed from MATDOC; read the replacement CDS views.", "2206980"},
	},
}

var salesRules = table{
	category: "Sales & Distribution",
	impact:   "The SD data model drops status tables and pricing conditions move to PRCD_ELEMENTS.",
	source: []entry{
		{"SIMPL-SD-001", high, `\bVBUK\b([^-]|$)`,
			"Sales document header status VBUK",
			"Header status fields are in VBAK, LIKP and VBRK.", "2198647"},
		{"SIMPL-SD-002", high, `\bVBUP\b([^-]|$)`,
			"Sales document item status VBUP",
			"Item status fields are in VBAP, LIPS and VBRP.", "2198647"},
		{"SIMPL-SD-003", high, `\b(VBUK|VBUP)-\w+`,
			"VBUK/VBUP field references",
			"Reference the status field on VBAK/VBAP.", "2198647"},
		{"SIMPL-SD-004", high, `\bKONV\b([^-]|$)`,
			"Pricing conditions KONV",
			"Pricing conditions are stored in PRCD_ELEMENTS.", "2220005"},
		{"SIMPL-SD-005", high, `\bKONV-\w+`,
			"KONV field references",
			"Reference the same fields on PRCD_ELEMENTS.", "2220005"},
		{"SIMPL-SD-006", medium, `\bVBFA\b`,
			"Document flow VBFA",
			"Status-only document flow entries are no longer written; check VBFA readers.", "2198647"},
		{"SIMPL-SD-007", medium, `\b(VAKGU|VAKPA|VAPMA|VLKPA|VLPMA|VRKPA|VRPMA)\b`,
			"SD index tables",
			"Index tables are removed; select from the document tables with secondary indexes.", "2198647"},
		{"SIMPL-SD-008", low, `\bS00[1-9]\b`,
			"Sales info structures",
			"LIS sales structures are not updated; use embedded analytics.", ""},
		{"SIMPL-SD-009", high, `\bKONA\b`,
			"SD rebate agreements",
			"SD rebate processing is replaced by settlement management (condition contracts).", ""},
		{"SIMPL-SD-010", medium, `\bVBOX\b`,
			"SD rebate index VBOX",
			"Settlement management does not use VBOX; remove the dependency.", ""},
		{"SIMPL-SD-011", medium, `CALL\s+TRANSACTION\s+'VA0[12]'`,
			"Batch input on sales order transactions",
			"Create and change sales orders through BAPI_SALESORDER_CREATEFROMDAT2 or the sales order API.", ""},
		{"SIMPL-SD-012", medium, `'SD_ORDER_CREDIT_CHECK'`,
			"SD credit check function",
			"Credit checks run in SAP Credit Management (UKM_*).", ""},
	},
}

var productionRules = table{
	category: "Production Planning",
	impact:   "MRP Live replaces classic MRP runs and its planning file.",
	source: []entry{
		{"SIMPL-PP-001", medium, `\b(MDKP|MDTB)\b`,
			"Classic MRP list tables",
			"MRP Live does not persist MRP lists by default; read requirements through MD_STOCK_REQUIREMENTS_LIST_API.", ""},
		{"SIMPL-PP-002", medium, `CALL\s+TRANSACTION\s+'MD0[1-3]'`,
			"Batch input on classic MRP transactions",
			"Schedule MRP Live (MD01N) instead.", ""},
		{"SIMPL-PP-003", low, `\b(S07[6-9]|S094)\b`,
			"Sales and operations planning info structures",
			"Classic SOP is not the target planning tool; evaluate IBP.", ""},
		{"SIMPL-PP-004", medium, `\bMDVM\b`,
			"Planning file entries MDVM",
			"The planning file is PPH_DBVM.", ""},
		{"SIMPL-PP-005", medium, `\bDBVM\b`,
			"Planning file entries DBVM",
			"The planning file is PPH_DBVM.", ""},
	},
}

var maintenanceRules = table{
	category: "Plant Maintenance",
	impact:   "Technical objects and maintenance orders must be changed through released APIs.",
	source: []entry{
		{"SIMPL-PM-001", high, `^\s*(UPDATE|MODIFY|INSERT|DELETE)\s+(EQUI|EQUZ|IFLOT|ILOA)\b`,
			"Direct write to technical object tables",
			"Change equipment and functional locations through BAPI_EQUI_CHANGE / BAPI_FUNCLOC_CHANGE.", ""},
		{"SIMPL-PM-002", medium, `CALL\s+TRANSACTION\s+'IW(21|31|32)'`,
			"Batch input on maintenance notifications and orders",
			"Use BAPI_ALM_ORDER_MAINTAIN and BAPI_ALM_NOTIF_CREATE.", ""},
		{"SIMPL-PM-003", low, `CALL\s+TRANSACTION\s+'IE0[12]'`,
			"Batch input on equipment master",
			"Use BAPI_EQUI_CREATE / BAPI_EQUI_CHANGE.", ""},
	},
}

var warehouseRules = table{
	category: "Extended Warehouse Management",
	impact:   "Classic WM (LE-WM) is not the target architecture; warehouses move to embedded EWM.",
	source: []entry{
		{"SIMPL-EWM-001", high, `\bLQUA\b`,
			"WM quants LQUA",
			"Stock in EWM is read through /SCWM/ quant APIs.", ""},
		{"SIMPL-EWM-002", high, `\b(LTAK|LTAP)\b`,
			"WM transfer orders",
			"Transfer orders become EWM warehouse tasks.", ""},
		{"SIMPL-EWM-003", medium, `\bLAGP\b`,
			"WM storage bins LAGP",
			"Storage bins are managed in EWM (/SCWM/LAGP).", ""},
		{"SIMPL-EWM-004", medium, `'L_TO_CREATE_SINGLE'`,
			"WM transfer order creation",
			"Create warehouse tasks through the EWM warehouse task API.", ""},
		{"SIMPL-EWM-005", medium, `'L_TO_CONFIRM'`,
			"WM transfer order confirmation",
			"Confirm warehouse tasks through the EWM warehouse task API.", ""},
		{"SIMPL-EWM-006", medium, `CALL\s+TRANSACTION\s+'LT0[1-3]'`,
			"Batch input on WM transfer orders",
			"Use EWM warehouse task processing.", ""},
		{"SIMPL-EWM-007", low, `\bLEIN\b`,
			"WM storage units LEIN",
			"Storage units become EWM handling units.", ""},
	},
}

var plmRules = table{
	category: "Product Lifecycle Management",
	impact:   "Some classic PLM tools are removed and master data must be changed through APIs.",
	source: []entry{
		{"SIMPL-PLM-001", low, `\bCFX_\w+`,
			"cFolders integration",
			"cFolders is not available; move collaboration to SAP PLM or cloud collaboration.", ""},
		{"SIMPL-PLM-002", high, `^\s*(UPDATE|MODIFY|INSERT|DELETE)\s+(STKO|STPO|MAST)\b`,
			"Direct write to BOM tables",
			"Maintain BOMs through CSAP_MAT_BOM_MAINTAIN.", ""},
		{"SIMPL-PLM-003", medium, `CALL\s+TRANSACTION\s+'CS0[12]'`,
			"Batch input on BOM transactions",
			"Create and change BOMs through CSAP_MAT_BOM_CREATE / CSAP_MAT_BOM_MAINTAIN.", ""},
		{"SIMPL-PLM-004", medium, `CALL\s+TRANSACTION\s+'CV0[12]N'`,
			"Batch input on document info records",
			"Use BAPI_DOCUMENT_CREATE2 / BAPI_DOCUMENT_CHANGE2.", ""},
	},
}
