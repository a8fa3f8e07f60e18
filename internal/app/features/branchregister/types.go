// internal/app/features/branchregister/types.go
package branchregister

// Option is one entry in a select control.
type Option struct {
	Value string
	Label string
}

var (
	industryOptions = []Option{
		{Value: "technology", Label: "Technology"},
		{Value: "finance", Label: "Finance"},
		{Value: "healthcare", Label: "Healthcare"},
		{Value: "retail", Label: "Retail"},
	}
	stateOptions = []Option{
		{Value: "california", Label: "California"},
		{Value: "texas", Label: "Texas"},
		{Value: "new_york", Label: "New York"},
		{Value: "florida", Label: "Florida"},
	}
	timeZoneOptions = []Option{
		{Value: "gmt+5.5", Label: "GMT+5:30 (India)"},
		{Value: "gmt-5", Label: "GMT-5 (EST)"},
		{Value: "gmt+0", Label: "GMT+0 (London)"},
		{Value: "gmt+3", Label: "GMT+3"},
	}
	currencyOptions = []Option{
		{Value: "usd", Label: "USD ($)"},
		{Value: "eur", Label: "EUR (€)"},
		{Value: "gbp", Label: "GBP (£)"},
		{Value: "inr", Label: "INR (₹)"},
	}
	languageOptions = []Option{
		{Value: "english", Label: "English"},
		{Value: "spanish", Label: "Spanish"},
		{Value: "french", Label: "French"},
		{Value: "german", Label: "German"},
	}
)

func optionValues(opts []Option) map[string]bool {
	m := make(map[string]bool, len(opts))
	for _, o := range opts {
		m[o.Value] = true
	}
	return m
}

var (
	validIndustries = optionValues(industryOptions)
	validStates     = optionValues(stateOptions)
	validTimeZones  = optionValues(timeZoneOptions)
	validCurrencies = optionValues(currencyOptions)
	validLanguages  = optionValues(languageOptions)
)
