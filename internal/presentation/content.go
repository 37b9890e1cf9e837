// Package presentation holds the copy shown by the web and terminal forms.
package presentation

import "github.com/liamcoop/churn/catalog"

// Title is the page and window title
const Title = "Telco Churn Dashboard"

// Overview introduces the predictor above the form
const Overview = `# Churn Probability Predictor
This service predicts the likelihood of customer churn (service cancellation) using a machine learning model.
By adjusting inputs such as contract type, internet service, and monthly charges, you can see how each influences churn
risk. The fields are pre-populated with a customer profile that indicates high churn probability.

The model scores risk on 19 factors. These are the **Top 5** most important ones:
1.  **Contract Type**: Month-to-month users are 5 times more likely to churn than those on long-term contracts.
2.  **InternetService**: Fiber optic customers are more likely to cancel service than other internet service users.
3.  **TechSupport**: Users with no tech support.
4.  **OnlineSecurity**: Users with no online security.
5.  **TotalCharges**: Customers with higher charges are more likely to churn.

For technical details see the "How it works?" tab.
`

// Technical is the "How it works?" panel
const Technical = `## Overview
High-recall churn prediction service with a validated HTTP endpoint and an interactive form.

## Architecture
- Go HTTP service for input validation and orchestration
- Pre-trained classifier loaded once at startup, from a local artifact or a remote inference sidecar
- Schema enforcement and business rule checks before every prediction

## Model
- Binary classifier tuned for recall to minimize missed churners.
- 19 features capturing contract, services, and billing behavior.

## Data Validation
- Strict per-field checks on types, allowed values and ranges.
- Business constraint on monetary fields: TotalCharges may not be less than MonthlyCharges.

## Feature Importance
Top drivers include contract type, internet service, support availability, and total charges.

## Dataset
Trained on the Telco Customer Churn dataset:
<https://www.kaggle.com/datasets/blastchar/telco-customer-churn/data>
`

// InterpretationGuide explains the risk tiers next to the result
const InterpretationGuide = `**Interpretation Guide:**
* 🟢 **Low Risk:** < 50%
* 🔴 **High Risk:** > 50%
`

// ResultLabel captions the result box
const ResultLabel = "Churn Risk Prediction"

// AnalyzeLabel is the text of the run button
const AnalyzeLabel = "RUN ANALYSIS"

// HowItWorksTab names the technical panel
const HowItWorksTab = "⚙️ How it works?"

// SectionText is the tab label and heading of one form section
type SectionText struct {
	Tab     string
	Heading string
}

var sections = map[catalog.Section]SectionText{
	catalog.SectionProfile:  {Tab: "👤 Profile", Heading: "Demographic Details"},
	catalog.SectionServices: {Tab: "📡 Services", Heading: "Subscribed Services"},
	catalog.SectionBilling:  {Tab: "💳 Billing", Heading: "Contract & Payment"},
}

// Section returns the labels for s, falling back to its name
func Section(s catalog.Section) SectionText {
	if t, ok := sections[s]; ok {
		return t
	}
	return SectionText{Tab: string(s), Heading: string(s)}
}
