package catalog

// Option sets shared by several fields
var (
	yesNo          = []string{"Yes", "No"}
	internetAddOns = []string{"No", "Yes", "No internet service"}
)

// Churn is the field table of the telco churn model, in training feature order.
// To add a feature, add one entry here.
var Churn = MustNew(
	// Profile
	Choice("gender", SectionProfile, WidgetDropdown, "Female", "Female", "Male"),
	Flag("SeniorCitizen", SectionProfile, true),
	Choice("Partner", SectionProfile, WidgetRadio, "No", yesNo...),
	Choice("Dependents", SectionProfile, WidgetRadio, "No", yesNo...),
	Range("tenure", SectionProfile, 0, 72, 1),
	Choice("PhoneService", SectionProfile, WidgetRadio, "Yes", yesNo...),
	Choice("MultipleLines", SectionProfile, WidgetDropdown, "No", "No phone service", "No", "Yes"),

	// Services
	Choice("InternetService", SectionServices, WidgetDropdown, "Fiber optic", "DSL", "Fiber optic", "No"),
	Choice("OnlineSecurity", SectionServices, WidgetDropdown, "No", internetAddOns...),
	Choice("OnlineBackup", SectionServices, WidgetDropdown, "No", internetAddOns...),
	Choice("DeviceProtection", SectionServices, WidgetDropdown, "No", internetAddOns...),
	Choice("TechSupport", SectionServices, WidgetDropdown, "No", internetAddOns...),
	Choice("StreamingTV", SectionServices, WidgetDropdown, "Yes", internetAddOns...),
	Choice("StreamingMovies", SectionServices, WidgetDropdown, "Yes", internetAddOns...),

	// Billing
	Choice("Contract", SectionBilling, WidgetDropdown, "Month-to-month", "Month-to-month", "One year", "Two year"),
	Choice("PaperlessBilling", SectionBilling, WidgetRadio, "Yes", yesNo...),
	Choice("PaymentMethod", SectionBilling, WidgetDropdown, "Electronic check",
		"Electronic check", "Mailed check", "Bank transfer (automatic)", "Credit card (automatic)"),
	Number("MonthlyCharges", SectionBilling, Bound{Value: 0, Exclusive: true}, 105.65),
	Number("TotalCharges", SectionBilling, Bound{Value: 0}, 105.65),
)
