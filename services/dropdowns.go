package services

// UnitOptions are the units of measure offered on invoice line items.
var UnitOptions = []string{
	"LS",
	"EA",
	"SF",
	"SY",
	"LF",
	"CY",
	"TON",
	"HR",
	"DAY",
	"WK",
	"MO",
	"GAL",
	"ALLOW",
}

// ProjectTypeOptions are the project types offered on the lead form.
var ProjectTypeOptions = []string{
	"Commercial Retail",
	"Office",
	"Tenant Improvement",
	"Healthcare",
	"Hospitality",
	"Industrial",
	"Institutional",
	"Multifamily",
	"Single Family",
	"Mixed Use",
}

// LeadSourceOptions are the lead sources offered on the lead form.
var LeadSourceOptions = []string{
	"Referral",
	"Website",
	"Bid Board",
	"Public Bid",
	"Trade Show",
	"Cold Call",
	"Repeat Client",
}

// PaymentTermsOptions are the payment terms offered on the invoice form.
var PaymentTermsOptions = []string{"Due on Receipt", "Net 15", "Net 30", "Net 45", "Net 60"}

// RetainageOptions are the usual retainage percentages.
var RetainageOptions = []float64{0, 5, 10}
