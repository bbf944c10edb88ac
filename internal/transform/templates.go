package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in coverage templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []CoverageTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with common what-if plan changes
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "out_of_network",
		Description: "See the same providers out of network",
		Transforms:  []CoverageTransform{&SetNetwork{InNetwork: false}},
	})

	registry.Register(Template{
		Name:        "in_network",
		Description: "Switch to in-network providers",
		Transforms:  []CoverageTransform{&SetNetwork{InNetwork: true}},
	})

	registry.Register(Template{
		Name:        "uninsured",
		Description: "Drop insurance and pay cash",
		Transforms:  []CoverageTransform{&SetInsurance{Insured: false}},
	})

	registry.Register(Template{
		Name:        "deductible_met",
		Description: "Visits later in the year, deductible already met",
		Transforms:  []CoverageTransform{&MeetDeductible{}},
	})

	registry.Register(Template{
		Name:        "high_deductible",
		Description: "High-deductible plan: $5,000 deductible, 30% coinsurance, $7,500 cap, no copay",
		Transforms: []CoverageTransform{
			&SetInsurance{Insured: true},
			&SetAmount{Field: FieldDeductible, Amount: decimal.NewFromInt(5000)},
			&SetAmount{Field: FieldDeductibleMet, Amount: decimal.Zero},
			&SetCoinsurance{Percent: decimal.NewFromInt(30)},
			&SetAmount{Field: FieldCopay, Amount: decimal.Zero},
			&SetAmount{Field: FieldOutOfPocketMax, Amount: decimal.NewFromInt(7500)},
		},
	})

	registry.Register(Template{
		Name:        "copay_plan",
		Description: "Copay plan: $500 deductible met, $30 copay, 20% coinsurance, $4,000 cap",
		Transforms: []CoverageTransform{
			&SetInsurance{Insured: true},
			&SetAmount{Field: FieldDeductible, Amount: decimal.NewFromInt(500)},
			&MeetDeductible{},
			&SetAmount{Field: FieldCopay, Amount: decimal.NewFromInt(30)},
			&SetCoinsurance{Percent: decimal.NewFromInt(20)},
			&SetAmount{Field: FieldOutOfPocketMax, Amount: decimal.NewFromInt(4000)},
		},
	})

	return registry
}

// ApplyTemplate applies every transform of a template to a scenario
func ApplyTemplate(base *domain.Configuration, template Template) (*domain.Configuration, error) {
	result, err := ApplyTransforms(base, template.Transforms)
	if err != nil {
		return nil, fmt.Errorf("failed to apply template %s: %w", template.Name, err)
	}
	return result, nil
}
