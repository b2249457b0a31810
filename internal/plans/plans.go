package plans

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	BillingOneOff  = "one_off"
	BillingMonthly = "monthly"
)

//go:embed plans.yaml
var plansYAML []byte

type Plan struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	PriceCents  int      `yaml:"price_cents" json:"price_cents"`
	Currency    string   `yaml:"currency" json:"currency"`
	Billing     string   `yaml:"billing" json:"billing"`
	StartingAt  bool     `yaml:"starting_at" json:"starting_at"`
	Popular     bool     `yaml:"popular" json:"popular"`
	Description string   `yaml:"description" json:"description"`
	PriceID     string   `yaml:"price_id" json:"price_id"`
	Features    []string `yaml:"features" json:"features"`
}

// ContactOnly reports whether the plan is sold through the contact form.
func (p Plan) ContactOnly() bool {
	return p.PriceID == "contact_us"
}

type catalog struct {
	Plans []Plan `yaml:"plans"`
}

// Load parses the embedded plan catalog.
func Load() ([]Plan, error) {
	return Parse(plansYAML)
}

func Parse(data []byte) ([]Plan, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse plans: %w", err)
	}
	for _, p := range c.Plans {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("plan without id or name")
		}
		if p.Billing != BillingOneOff && p.Billing != BillingMonthly {
			return nil, fmt.Errorf("plan %s: unknown billing %q", p.ID, p.Billing)
		}
	}
	return c.Plans, nil
}
