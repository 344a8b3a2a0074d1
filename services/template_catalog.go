package services

func strPtr(s string) *string { return &s }

// builtinTemplates is the construction template library shipped with the
// command center.
func builtinTemplates() []Template {
	return []Template{
		{
			ID:          "residential-proposal",
			Name:        "Residential Construction Proposal",
			Category:    CategoryProposal,
			Description: "Fixed-price proposal for residential new builds and remodels.",
			Tags:        []string{"residential", "bid", "fixed-price"},
			Version:     "1.2",
			Variables: []VariableSpec{
				{Key: "CLIENT_NAME", Label: "Client Name", Type: VariableText, Required: true, Placeholder: "Jane Smith"},
				{Key: "PROJECT_ADDRESS", Label: "Project Address", Type: VariableText, Required: true, Placeholder: "123 Main St, Orlando, FL"},
				{Key: "PROJECT_SCOPE", Label: "Scope of Work", Type: VariableText, Required: true},
				{Key: "CONTRACT_AMOUNT", Label: "Contract Amount", Type: VariableCurrency, Required: true, Placeholder: "250000"},
				{Key: "START_DATE", Label: "Start Date", Type: VariableDate},
				{Key: "DURATION_WEEKS", Label: "Duration (weeks)", Type: VariableNumber, DefaultValue: strPtr("16")},
				{Key: "COMPANY_NAME", Label: "Contractor", Type: VariableText, DefaultValue: strPtr("Construct IQ Builders")},
				{Key: "PAYMENT_SCHEDULE", Label: "Payment Schedule", Type: VariableSelect, DefaultValue: strPtr("Progress billing (monthly)"),
					Options: []string{"Progress billing (monthly)", "Milestone billing", "50% deposit / 50% completion"}},
			},
			Sections: []Section{
				{ID: "intro", Title: "Proposal", Body: "Prepared for {{CLIENT_NAME}} by {{COMPANY_NAME}}.\nProject location: {{PROJECT_ADDRESS}}.", Variables: []string{"CLIENT_NAME", "COMPANY_NAME", "PROJECT_ADDRESS"}},
				{ID: "scope", Title: "Scope of Work", Body: "{{PROJECT_SCOPE}}", Variables: []string{"PROJECT_SCOPE"}},
				{ID: "price", Title: "Price & Schedule", Body: "Contract amount: ${{CONTRACT_AMOUNT}}.\nWork begins {{START_DATE}} and runs approximately {{DURATION_WEEKS}} weeks.\nPayment: {{PAYMENT_SCHEDULE}}.", Variables: []string{"CONTRACT_AMOUNT", "START_DATE", "DURATION_WEEKS", "PAYMENT_SCHEDULE"}},
				{ID: "accept", Title: "Acceptance", Body: "This proposal is valid for 30 days. Signature below authorizes {{COMPANY_NAME}} to proceed.\n\nClient: ______________________  Date: __________", Variables: []string{"COMPANY_NAME"}},
			},
		},
		{
			ID:          "subcontract-agreement",
			Name:        "Subcontractor Agreement",
			Category:    CategoryContract,
			Description: "Standard subcontract with retainage, insurance and lien terms.",
			Tags:        []string{"subcontractor", "legal", "retainage"},
			Version:     "2.0",
			Variables: []VariableSpec{
				{Key: "CONTRACTOR", Label: "General Contractor", Type: VariableText, Required: true},
				{Key: "SUBCONTRACTOR", Label: "Subcontractor", Type: VariableText, Required: true},
				{Key: "SUB_TRADE", Label: "Trade", Type: VariableSelect, Required: true,
					Options: []string{"Electrical", "Plumbing", "HVAC", "Framing", "Concrete", "Roofing", "Drywall"}},
				{Key: "SUBCONTRACT_AMOUNT", Label: "Subcontract Amount", Type: VariableCurrency, Required: true},
				{Key: "RETAINAGE", Label: "Retainage %", Type: VariableNumber, DefaultValue: strPtr("10")},
				{Key: "PROJECT_NAME", Label: "Project", Type: VariableText, Required: true},
			},
			Sections: []Section{
				{ID: "parties", Title: "Parties", Body: "This agreement is between {{CONTRACTOR}} (\"Contractor\") and {{SUBCONTRACTOR}} (\"Subcontractor\") for {{SUB_TRADE}} work on {{PROJECT_NAME}}.", Variables: []string{"CONTRACTOR", "SUBCONTRACTOR", "SUB_TRADE", "PROJECT_NAME"}},
				{ID: "price", Title: "Subcontract Sum", Body: "Contractor shall pay Subcontractor ${{SUBCONTRACT_AMOUNT}}, less {{RETAINAGE}}% retainage held until final completion.", Variables: []string{"SUBCONTRACT_AMOUNT", "RETAINAGE"}},
				{ID: "insurance", Title: "Insurance", Body: "Subcontractor shall maintain general liability and workers' compensation coverage naming {{CONTRACTOR}} as additional insured.", Variables: []string{"CONTRACTOR"}},
				{ID: "liens", Title: "Lien Waivers", Body: "Each payment application shall include a conditional lien waiver; final payment requires an unconditional final waiver."},
			},
		},
		{
			ID:          "preconstruction-checklist",
			Name:        "Pre-Construction Checklist",
			Category:    CategoryChecklist,
			Description: "Permits, utilities, safety and site readiness before mobilization.",
			Tags:        []string{"safety", "permits", "site"},
			Version:     "1.0",
			Variables: []VariableSpec{
				{Key: "PROJECT_NAME", Label: "Project", Type: VariableText, Required: true},
				{Key: "SUPERINTENDENT", Label: "Superintendent", Type: VariableText},
				{Key: "MOBILIZATION_DATE", Label: "Mobilization Date", Type: VariableDate, Required: true},
			},
			Sections: []Section{
				{ID: "header", Title: "Project", Body: "{{PROJECT_NAME}}, mobilizing {{MOBILIZATION_DATE}}. Superintendent: {{SUPERINTENDENT}}.", Variables: []string{"PROJECT_NAME", "MOBILIZATION_DATE", "SUPERINTENDENT"}},
				{ID: "permits", Title: "Permits", Body: "- [ ] Building permit posted\n- [ ] Right-of-way permit (if required)\n- [ ] Notice of Commencement recorded"},
				{ID: "site", Title: "Site Readiness", Body: "- [ ] Utility locates (811) complete\n- [ ] Silt fence and erosion control installed\n- [ ] Temporary power and sanitation on site"},
				{ID: "safety", Title: "Safety", Body: "- [ ] Site-specific safety plan reviewed\n- [ ] First aid kit and fire extinguishers staged\n- [ ] Emergency contacts posted"},
			},
		},
		{
			ID:          "daily-operations-runbook",
			Name:        "Daily Field Operations Runbook",
			Category:    CategoryRunbook,
			Description: "Start-of-day, inspection and end-of-day procedures for field crews.",
			Tags:        []string{"operations", "field", "daily-log"},
			Version:     "1.1",
			Variables: []VariableSpec{
				{Key: "CREW_LEAD", Label: "Crew Lead", Type: VariableText, Required: true},
				{Key: "SHIFT_START", Label: "Shift Start", Type: VariableText, DefaultValue: strPtr("7:00 AM")},
				{Key: "WEATHER_CALL", Label: "Weather Hold Threshold", Type: VariableSelect, DefaultValue: strPtr("Lightning within 10 miles"),
					Options: []string{"Lightning within 10 miles", "Sustained wind over 25 mph", "Rain over 0.5 in/hr"}},
			},
			Sections: []Section{
				{ID: "start", Title: "Start of Day", Body: "Crew assembles at {{SHIFT_START}}. {{CREW_LEAD}} runs the toolbox talk and reviews the day's plan.", Variables: []string{"SHIFT_START", "CREW_LEAD"}},
				{ID: "weather", Title: "Weather Holds", Body: "Stop exterior work when: {{WEATHER_CALL}}.", Variables: []string{"WEATHER_CALL"}},
				{ID: "end", Title: "End of Day", Body: "Secure materials, complete the daily log with photos, and report hours by 5:00 PM."},
			},
		},
		{
			ID:          "commercial-blueprint-spec",
			Name:        "Commercial Blueprint Specification",
			Category:    CategoryBlueprint,
			Description: "Outline specification sheet to accompany commercial drawing sets.",
			Tags:        []string{"commercial", "specifications", "CSI"},
			Version:     "1.0",
			Variables: []VariableSpec{
				{Key: "BUILDING_TYPE", Label: "Building Type", Type: VariableSelect, Required: true,
					Options: []string{"Office", "Retail", "Warehouse", "Multifamily", "Mixed-use"}},
				{Key: "SQUARE_FEET", Label: "Gross Square Feet", Type: VariableNumber, Required: true},
				{Key: "STORIES", Label: "Stories", Type: VariableNumber, DefaultValue: strPtr("1")},
				{Key: "ARCHITECT", Label: "Architect of Record", Type: VariableText},
			},
			Sections: []Section{
				{ID: "summary", Title: "Building Summary", Body: "{{BUILDING_TYPE}} building, {{SQUARE_FEET}} SF over {{STORIES}} stories. Architect of record: {{ARCHITECT}}.", Variables: []string{"BUILDING_TYPE", "SQUARE_FEET", "STORIES", "ARCHITECT"}},
				{ID: "div03", Title: "Division 03 - Concrete", Body: "Slab on grade 4,000 psi with vapor retarder; footings per structural drawings."},
				{ID: "div09", Title: "Division 09 - Finishes", Body: "Gypsum board partitions, acoustical ceilings in offices, sealed concrete in service areas."},
			},
		},
		{
			ID:          "change-order",
			Name:        "Change Order",
			Category:    CategoryChangeOrder,
			Description: "Owner-approved change to contract scope, price or time.",
			Tags:        []string{"change", "scope", "pricing"},
			Version:     "1.3",
			Variables: []VariableSpec{
				{Key: "CO_NUMBER", Label: "Change Order #", Type: VariableText, Required: true, Placeholder: "CO-001"},
				{Key: "PROJECT_NAME", Label: "Project", Type: VariableText, Required: true},
				{Key: "CHANGE_DESCRIPTION", Label: "Description of Change", Type: VariableText, Required: true},
				{Key: "CHANGE_AMOUNT", Label: "Change Amount", Type: VariableCurrency, Required: true},
				{Key: "TIME_EXTENSION", Label: "Time Extension (days)", Type: VariableNumber, DefaultValue: strPtr("0")},
				{Key: "CO_DATE", Label: "Date", Type: VariableDate},
			},
			Sections: []Section{
				{ID: "header", Title: "Change Order", Body: "Change order: {{CO_NUMBER}}\nProject: {{PROJECT_NAME}}\nDate: {{CO_DATE}}", Variables: []string{"CO_NUMBER", "PROJECT_NAME", "CO_DATE"}},
				{ID: "change", Title: "Description", Body: "{{CHANGE_DESCRIPTION}}", Variables: []string{"CHANGE_DESCRIPTION"}},
				{ID: "impact", Title: "Contract Impact", Body: "Contract sum adjusted by ${{CHANGE_AMOUNT}}. Contract time extended by {{TIME_EXTENSION}} days.", Variables: []string{"CHANGE_AMOUNT", "TIME_EXTENSION"}},
			},
		},
		{
			ID:          "conditional-lien-waiver",
			Name:        "Conditional Waiver on Progress Payment",
			Category:    CategoryLienWaiver,
			Description: "Conditional lien waiver released upon receipt of a progress payment.",
			Tags:        []string{"lien", "payment", "legal"},
			Version:     "1.0",
			Variables: []VariableSpec{
				{Key: "CLAIMANT", Label: "Claimant", Type: VariableText, Required: true},
				{Key: "CUSTOMER", Label: "Customer", Type: VariableText, Required: true},
				{Key: "JOB_LOCATION", Label: "Job Location", Type: VariableText, Required: true},
				{Key: "PAYMENT_AMOUNT", Label: "Payment Amount", Type: VariableCurrency, Required: true},
				{Key: "THROUGH_DATE", Label: "Work Through Date", Type: VariableDate, Required: true},
			},
			Sections: []Section{
				{ID: "waiver", Title: "Waiver", Body: "Upon receipt of ${{PAYMENT_AMOUNT}} from {{CUSTOMER}}, {{CLAIMANT}} waives lien rights for labor and materials furnished at {{JOB_LOCATION}} through {{THROUGH_DATE}}.", Variables: []string{"PAYMENT_AMOUNT", "CUSTOMER", "CLAIMANT", "JOB_LOCATION", "THROUGH_DATE"}},
				{ID: "exceptions", Title: "Exceptions", Body: "This waiver does not cover retainage, pending change orders or disputed claims."},
			},
		},
	}
}
