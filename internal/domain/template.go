package domain

import "sort"

type TemplateField struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// Template pre-fills class, category and billing cycle for common item kinds.
type Template struct {
	Key          string          `json:"key"`
	Name         string          `json:"name"`
	Class        ItemClass       `json:"itemClass"`
	Category     string          `json:"category"`
	BillingCycle *BillingCycle   `json:"billingCycle,omitempty"`
	Fields       []TemplateField `json:"fields"`
}

func cycle(b BillingCycle) *BillingCycle {
	return &b
}

var templates = map[string]Template{
	"passport": {
		Key: "passport", Name: "Passport", Class: ItemClassDocument, Category: "Identity",
		Fields: []TemplateField{
			{Key: "number", Label: "Passport number", Required: true},
			{Key: "country", Label: "Issuing country", Required: true},
		},
	},
	"national_id": {
		Key: "national_id", Name: "National ID card", Class: ItemClassDocument, Category: "Identity",
		Fields: []TemplateField{
			{Key: "number", Label: "Card number", Required: true},
		},
	},
	"drivers_license": {
		Key: "drivers_license", Name: "Driver's license", Class: ItemClassDocument, Category: "Identity",
		Fields: []TemplateField{
			{Key: "number", Label: "License number", Required: true},
			{Key: "categories", Label: "Vehicle categories"},
		},
	},
	"insurance": {
		Key: "insurance", Name: "Insurance policy", Class: ItemClassDocument, Category: "Insurance",
		Fields: []TemplateField{
			{Key: "provider", Label: "Provider", Required: true},
			{Key: "policy_number", Label: "Policy number"},
		},
	},
	"streaming": {
		Key: "streaming", Name: "Streaming service", Class: ItemClassSubscription, Category: "Entertainment",
		BillingCycle: cycle(BillingCycleMonthly),
		Fields: []TemplateField{
			{Key: "provider", Label: "Provider", Required: true},
			{Key: "plan", Label: "Plan"},
		},
	},
	"software": {
		Key: "software", Name: "Software license", Class: ItemClassSubscription, Category: "Software",
		BillingCycle: cycle(BillingCycleYearly),
		Fields: []TemplateField{
			{Key: "vendor", Label: "Vendor", Required: true},
			{Key: "seats", Label: "Seats"},
		},
	},
	"gym": {
		Key: "gym", Name: "Gym membership", Class: ItemClassSubscription, Category: "Health",
		BillingCycle: cycle(BillingCycleMonthly),
		Fields: []TemplateField{
			{Key: "club", Label: "Club", Required: true},
		},
	},
	"domain_name": {
		Key: "domain_name", Name: "Domain name", Class: ItemClassSubscription, Category: "Internet",
		BillingCycle: cycle(BillingCycleYearly),
		Fields: []TemplateField{
			{Key: "domain", Label: "Domain", Required: true},
			{Key: "registrar", Label: "Registrar"},
		},
	},
}

func LookupTemplate(key string) (Template, error) {
	t, ok := templates[key]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return t, nil
}

// Templates returns the catalog ordered by key.
func Templates() []Template {
	list := make([]Template, 0, len(templates))
	for _, t := range templates {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Key < list[j].Key
	})
	return list
}
