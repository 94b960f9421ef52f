package rules

var businessPartnerRules = table{
	category: "Business Partner",
	impact:   "Customers and vendors are maintained as business partners through Customer/Vendor Integration (CVI).",
	source: []entry{
		{"SIMPL-BP-001", high, `\bKNA1\b`,
			"Customer master general data KNA1",
			"Read and maintain customers as business partners (BUT000 and CVI).", "2265093"},
		{"SIMPL-BP-002", high, `\bLFA1\b`,
			"Vendor master general data LFA1",
			"Read and maintain suppliers as business partners (BUT000 and CVI).", "2265093"},
		{"SIMPL-BP-003", medium, `\b(KNB1|LFB1)\b`,
			"Company code data of customers and vendors",
			"Company code data is maintained through the BP roles FLCU00 / FLVN00.", "2265093"},
		{"SIMPL-BP-004", medium, `\bKNVV\b`,
			"Customer sales area data KNVV",
			"Sales area data is maintained through the BP role FLCU01.", "2265093"},
		{"SIMPL-BP-005", high, `CALL\s+TRANSACTION\s+'(XD0[1-3]|VD0[1-3]|FD0[1-3]|XK0[1-3]|MK0[1-3]|FK0[1-3])'`,
			"Batch input on customer or vendor transactions",
			"The classic transactions redirect to BP; use the business partner API.", "2265093"},
		{"SIMPL-BP-006", high, `'BAPI_CUSTOMER_CREATEFROMDATA1'`,
			"Classic customer creation BAPI",
			"Create customers through CMD_EI_API or the business partner API.", "2265093"},
		{"SIMPL-BP-007", high, `'BAPI_VENDOR_CREATE'`,
			"Classic vendor creation BAPI",
			"Create suppliers through VMD_EI_API or the business partner API.", "2265093"},
		{"SIMPL-BP-008", high, `'SD_CUSTOMER_MAINTAIN_ALL'`,
			"Unreleased customer maintenance function",
			"Maintain customers through CMD_EI_API=>MAINTAIN_BAPI.", "2265093"},
		{"SIMPL-BP-009", high, `'VENDOR_INSERT'`,
			"Unreleased vendor maintenance function",
			"Maintain suppliers through VMD_EI_API=>MAINTAIN_BAPI.", "2265093"},
		{"SIMPL-BP-010", medium, `\bKNVK\b`,
			"Customer contact persons KNVK",
			"Contact persons are BP relationships (BUT050).", "2265093"},
	},
}

var hrRules = table{
	category: "Human Resources",
	impact:   "HCM runs in S/4HANA only through the compatibility pack or SAP SuccessFactors.",
	source: []entry{
		{"SIMPL-HR-001", medium, `\bPA\d{4}\b`,
			"Direct access to personnel infotype tables",
			"Plan the move to SuccessFactors Employee Central or H4S4; isolate infotype access.", ""},
		{"SIMPL-HR-002", medium, `'HR_READ_INFOTYPE'`,
			"Classic infotype read function",
			"Read employee data through the Employee Central APIs or CL_HRPA_* classes.", ""},
		{"SIMPL-HR-003", medium, `\bGET\s+PERNR\b`,
			"Logical database PNP event GET PERNR",
			"Replace logical database processing with explicit selections.", ""},
		{"SIMPL-HR-004", low, `^\s*INFOTYPES\s*:?\s*\d{4}`,
			"INFOTYPES declaration",
			"Declare infotype structures explicitly.", ""},
		{"SIMPL-HR-005", medium, `\bPCL[1-4]\b`,
			"HR cluster tables",
			"Cluster data (payroll, time) has no counterpart outside H4S4; plan the data migration.", ""},
		{"SIMPL-HR-006", high, `'HR_INFOTYPE_OPERATION'`,
			"Classic infotype write function",
			"Write employee data through the Employee Central APIs.", ""},
		{"SIMPL-HR-007", medium, `\bHRP1\d{3}\b`,
			"Organizational management tables",
			"Org structures move to Employee Central; isolate HRP access.", ""},
		{"SIMPL-HR-008", low, `\bPNPCE\b`,
			"Logical database PNPCE",
			"Replace logical database processing with explicit selections.", ""},
	},
}
