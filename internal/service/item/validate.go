package item

import (
	"fmt"
	"math"
	"strings"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

const (
	maxNameLength  = 200
	maxNotesLength = 4000
)

// normalize applies template defaults and trims user input in place, then validates the result.
func normalize(item *domain.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	item.TemplateKey = strings.TrimSpace(item.TemplateKey)
	item.Currency = strings.ToUpper(strings.TrimSpace(item.Currency))

	if item.Category != nil {
		trimmed := strings.TrimSpace(*item.Category)
		if trimmed == "" {
			item.Category = nil
		} else {
			item.Category = &trimmed
		}
	}

	if item.Class != "" {
		class, err := domain.ParseItemClass(item.Class.String())
		if err != nil {
			return err
		}
		item.Class = class
	}

	if item.TemplateKey != "" {
		tmpl, err := domain.LookupTemplate(item.TemplateKey)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
		}
		applyTemplate(item, tmpl)
		if err := checkTemplateFields(item, tmpl); err != nil {
			return err
		}
	}

	if item.Class == "" {
		item.Class = domain.ItemClassDocument
	}

	if item.ExpirationDate != nil {
		utc := item.ExpirationDate.UTC()
		item.ExpirationDate = &utc
	}
	if item.RenewalDate != nil {
		utc := item.RenewalDate.UTC()
		item.RenewalDate = &utc
	}

	return validate(item)
}

func applyTemplate(item *domain.Item, tmpl domain.Template) {
	if item.Class == "" {
		item.Class = tmpl.Class
	}
	if item.Category == nil && tmpl.Category != "" {
		category := tmpl.Category
		item.Category = &category
	}
	if item.BillingCycle == nil && tmpl.BillingCycle != nil && item.Class == tmpl.Class {
		cycle := *tmpl.BillingCycle
		item.BillingCycle = &cycle
	}
}

func checkTemplateFields(item *domain.Item, tmpl domain.Template) error {
	var missing []string
	for _, f := range tmpl.Fields {
		if f.Required && strings.TrimSpace(item.Fields[f.Key]) == "" {
			missing = append(missing, f.Key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: template %s requires fields %s", domain.ErrInvalidItem, tmpl.Key, strings.Join(missing, ", "))
	}
	return nil
}

func validate(item *domain.Item) error {
	var problems []string

	switch {
	case item.Name == "":
		problems = append(problems, "name is required")
	case len(item.Name) > maxNameLength:
		problems = append(problems, fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}

	if len(item.Notes) > maxNotesLength {
		problems = append(problems, fmt.Sprintf("notes must be at most %d characters", maxNotesLength))
	}

	if item.ExpirationDate != nil && item.ExpirationDate.IsZero() {
		problems = append(problems, "expirationDate is invalid")
	}
	if item.RenewalDate != nil && item.RenewalDate.IsZero() {
		problems = append(problems, "renewalDate is invalid")
	}

	if item.Price != nil {
		price := *item.Price
		switch {
		case !item.Class.IsSubscription():
			problems = append(problems, "price is only allowed on subscriptions")
		case math.IsNaN(price) || math.IsInf(price, 0):
			problems = append(problems, "price must be a finite number")
		case price < 0:
			problems = append(problems, "price must not be negative")
		}
	}

	if item.BillingCycle != nil && !item.Class.IsSubscription() {
		problems = append(problems, "billingCycle is only allowed on subscriptions")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidItem, strings.Join(problems, "; "))
	}

	return nil
}
