package transform

// Notes attached to flagged constructs
const (
	noteBatchInput   = "batch input on a changed or removed transaction; switch to the released API"
	noteDirectWrite  = "direct write to an SAP standard table; use a released API"
	noteCompatView   = "table is a read-only compatibility view; move the read to the successor CDS view"
	noteEnhancement  = "enhancement must be re-verified against the S/4HANA version of the code"
	noteHANAOrdering = "relies on implicit result order; SAP HANA does not sort without ORDER BY"
)

func builtins() []Transform {
	var all []Transform
	all = append(all, tableRenames()...)
	all = append(all, fieldRewrites()...)
	all = append(all, modernizations()...)
	all = append(all, deprecatedCalls()...)
	all = append(all, flags()...)
	return all
}

func tableRenames() []Transform {
	return []Transform{
		rename("SIMPL-FIN-001", "BSEG", "ACDOCA"),
		rename("SIMPL-FIN-003", "BSIS", "ACDOCA"),
		rename("SIMPL-FIN-004", "BSAS", "ACDOCA"),
		rename("SIMPL-FIN-009", "GLT0", "ACDOCA"),
		rename("SIMPL-FIN-010", "FAGLFLEXT", "ACDOCA"),
		rename("SIMPL-FIN-011", "FAGLFLEXA", "ACDOCA"),
		rename("SIMPL-FIN-012", "FAGLFLEXP", "ACDOCP"),
		rename("SIMPL-FIN-013", "ANEP", "FAAT_DOC_IT"),
		rename("SIMPL-FIN-014", "ANLP", "FAAT_PLAN_VALUES"),
		rename("SIMPL-FIN-015", "ANLC", "FAAT_YDDA"),
		rename("SIMPL-FI-004", "KNKK", "UKMBP_CMS_SGM"),
		rename("SIMPL-FI-005", "KNKA", "UKMBP_CMS"),
		rename("SIMPL-CO-001", "COEP", "ACDOCA"),
		rename("SIMPL-MM-001", "MSEG", "MATDOC"),
		rename("SIMPL-MM-002", "MKPF", "MATDOC"),
		rename("SIMPL-SD-001", "VBUK", "VBAK"),
		rename("SIMPL-SD-002", "VBUP", "VBAP"),
		rename("SIMPL-SD-004", "KONV", "PRCD_ELEMENTS"),
		rename("SIMPL-PP-004", "MDVM", "PPH_DBVM"),
		rename("SIMPL-PP-005", "DBVM", "PPH_DBVM"),
	}
}

func fieldRewrites() []Transform {
	return []Transform{
		fieldRefs("SIMPL-FIN-002",
			map[string]string{"BSEG": "ACDOCA"},
			map[string]string{
				"DMBTR": "HSL",
				"WRBTR": "WSL",
				"HKONT": "RACCT",
				"KOSTL": "RCNTR",
				"BUKRS": "RBUKRS",
				"GJAHR": "GJAHR",
				"BELNR": "BELNR",
				"PRCTR": "PRCTR",
				"AUFNR": "AUFNR",
				"SHKZG": "DRCRK",
			}),
		fieldRefs("SIMPL-MM-003",
			map[string]string{"MSEG": "MATDOC", "MKPF": "MATDOC"}, nil),
		fieldRefs("SIMPL-SD-003",
			map[string]string{"VBUK": "VBAK", "VBUP": "VBAP"}, nil),
		fieldRefs("SIMPL-SD-005",
			map[string]string{"KONV": "PRCD_ELEMENTS"}, nil),
	}
}

func deprecatedCalls() []Transform {
	return []Transform{
		deprecated("SIMPL-FI-003", "POSTING_INTERFACE_DOCUMENT", "BAPI_ACC_DOCUMENT_POST"),
		deprecated("SIMPL-MM-007", "MB_CREATE_GOODS_MOVEMENT", "BAPI_GOODSMVT_CREATE"),
		deprecated("SIMPL-MM-010", "MATERIAL_MAINTAIN_DARK", "BAPI_MATERIAL_SAVEDATA"),
		deprecated("SIMPL-SD-012", "SD_ORDER_CREDIT_CHECK", "the SAP Credit Management API (UKM_*)"),
		deprecated("SIMPL-BP-006", "BAPI_CUSTOMER_CREATEFROMDATA1", "CMD_EI_API=>MAINTAIN_BAPI"),
		deprecated("SIMPL-BP-007", "BAPI_VENDOR_CREATE", "VMD_EI_API=>MAINTAIN_BAPI"),
		deprecated("SIMPL-BP-008", "SD_CUSTOMER_MAINTAIN_ALL", "CMD_EI_API=>MAINTAIN_BAPI"),
		deprecated("SIMPL-BP-009", "VENDOR_INSERT", "VMD_EI_API=>MAINTAIN_BAPI"),
		deprecated("SIMPL-HR-002", "HR_READ_INFOTYPE", "the Employee Central API"),
		deprecated("SIMPL-HR-006", "HR_INFOTYPE_OPERATION", "the Employee Central API"),
		deprecated("SIMPL-EWM-004", "L_TO_CREATE_SINGLE", "the EWM warehouse task API"),
		deprecated("SIMPL-EWM-005", "L_TO_CONFIRM", "the EWM warehouse task API"),
		deprecated("SIMPL-RMV-003", "SO_NEW_DOCUMENT_SEND_API1", "CL_BCS"),
		deprecated("SIMPL-RMV-004", "WS_DOWNLOAD", "CL_GUI_FRONTEND_SERVICES=>GUI_DOWNLOAD"),
		deprecated("SIMPL-RMV-005", "WS_UPLOAD", "CL_GUI_FRONTEND_SERVICES=>GUI_UPLOAD"),
		deprecated("SIMPL-RMV-006", "POPUP_TO_CONFIRM_STEP", "POPUP_TO_CONFIRM"),
		deprecated("SIMPL-RMV-007", "POPUP_TO_DECIDE", "POPUP_TO_CONFIRM"),
		deprecated("SIMPL-RMV-008", "REUSE_ALV_GRID_DISPLAY", "CL_SALV_TABLE"),
		deprecated("SIMPL-RMV-009", "HELP_VALUES_GET_WITH_TABLE", "F4IF_INT_TABLE_VALUE_REQUEST"),
		deprecated("SIMPL-RMV-010", "WS_EXECUTE", "CL_GUI_FRONTEND_SERVICES=>EXECUTE"),
		deprecated("SIMPL-RMV-011", "WS_FILENAME_GET", "CL_GUI_FRONTEND_SERVICES=>FILE_OPEN_DIALOG"),
		deprecated("SIMPL-RMV-012", "WS_QUERY", "CL_GUI_FRONTEND_SERVICES"),
		deprecated("SIMPL-RMV-013", "POPUP_TO_CONFIRM_WITH_MESSAGE", "POPUP_TO_CONFIRM"),
		deprecated("SIMPL-RMV-014", "POPUP_TO_CONFIRM_LOSS_OF_DATA", "POPUP_TO_CONFIRM"),
		deprecated("SIMPL-RMV-015", "POPUP_TO_DECIDE_WITH_MESSAGE", "POPUP_TO_CONFIRM"),
		deprecated("SIMPL-RMV-016", "CLPB_EXPORT", "CL_GUI_FRONTEND_SERVICES=>CLIPBOARD_EXPORT"),
		deprecated("SIMPL-RMV-017", "CLPB_IMPORT", "CL_GUI_FRONTEND_SERVICES=>CLIPBOARD_IMPORT"),
		deprecated("SIMPL-RMV-018", "SO_OBJECT_SEND", "CL_BCS"),
		deprecated("SIMPL-RMV-019", "SO_DOCUMENT_SEND_API1", "CL_BCS"),
		deprecated("SIMPL-RMV-020", "REUSE_ALV_LIST_DISPLAY", "CL_SALV_TABLE"),
		deprecated("SIMPL-RMV-021", "REUSE_ALV_HIERSEQ_LIST_DISPLAY", "CL_SALV_HIERSEQ_TABLE"),
		deprecated("SIMPL-RMV-022", "UPLOAD", "CL_GUI_FRONTEND_SERVICES=>GUI_UPLOAD"),
		deprecated("SIMPL-RMV-023", "DOWNLOAD", "CL_GUI_FRONTEND_SERVICES=>GUI_DOWNLOAD"),
	}
}

func flags() []Transform {
	return []Transform{
		flag("SIMPL-FI-002", noteBatchInput),
		flag("SIMPL-FIN-005", noteCompatView),
		flag("SIMPL-FIN-006", noteCompatView),
		flag("SIMPL-FIN-007", noteCompatView),
		flag("SIMPL-FIN-008", noteCompatView),
		flag("SIMPL-CO-004", "costing-based CO-PA table; redesign on account-based CO-PA"),
		flag("SIMPL-CO-007", "reconciliation ledger is obsolete; remove the dependency"),
		flag("SIMPL-MM-004", noteDirectWrite),
		flag("SIMPL-MM-008", noteBatchInput),
		flag("SIMPL-SD-007", "SD index table removed; select from the document tables"),
		flag("SIMPL-SD-009", "SD rebates are replaced by settlement management"),
		flag("SIMPL-SD-011", noteBatchInput),
		flag("SIMPL-BP-005", noteBatchInput),
		flag("SIMPL-HR-003", "logical database event; replace with explicit selection"),
		flag("SIMPL-PP-002", noteBatchInput),
		flag("SIMPL-PM-001", noteDirectWrite),
		flag("SIMPL-PM-002", noteBatchInput),
		flag("SIMPL-ABAP-002", "header line must be replaced by an explicit work area"),
		flag("SIMPL-ABAP-011", "native SQL must be rewritten in Open SQL or AMDP"),
		flag("SIMPL-ABAP-012", noteHANAOrdering),
		flag("SIMPL-ABAP-013", noteHANAOrdering),
		flag("SIMPL-ABAP-015", "CLIENT SPECIFIED must become USING CLIENT with an explicit client"),
		flag("SIMPL-ABAP-027", "convert to TRY ... CATCH with exception classes"),
		flag("SIMPL-ABAP-029", "OLE automation does not run outside SAP GUI for Windows"),
		flag("SIMPL-ENH-002", noteEnhancement),
		flag("SIMPL-ENH-003", noteEnhancement),
		flag("SIMPL-ENH-004", noteEnhancement),
		flag("SIMPL-ENH-005", noteEnhancement),
		flag("SIMPL-ENH-007", "classic BAdI; migrate to GET BADI"),
		flag("SIMPL-ENH-010", noteEnhancement),
		flag("SIMPL-DM-004", noteDirectWrite),
		flag("SIMPL-RMV-001", noteBatchInput),
		flag("SIMPL-RMV-002", noteBatchInput),
		flag("SIMPL-EWM-006", noteBatchInput),
		flag("SIMPL-PLM-002", noteDirectWrite),
		flag("SIMPL-CFG-001", noteDirectWrite),
	}
}
