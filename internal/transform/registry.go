package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (CoverageTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_network", createSetNetwork)
	registry.Register("set_insurance", createSetInsurance)
	registry.Register("set_deductible", amountFactory(FieldDeductible))
	registry.Register("set_deductible_met", amountFactory(FieldDeductibleMet))
	registry.Register("set_copay", amountFactory(FieldCopay))
	registry.Register("set_out_of_pocket_max", amountFactory(FieldOutOfPocketMax))
	registry.Register("set_coinsurance", createSetCoinsurance)
	registry.Register("meet_deductible", func(map[string]string) (CoverageTransform, error) {
		return &MeetDeductible{}, nil
	})

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (CoverageTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec builds a transform from its command-line form.
// Format: "transform_name:param1=value1,param2=value2"; the colon may be
// omitted for transforms without parameters.
// Example: "set_deductible:amount=3000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (CoverageTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

func createSetNetwork(params map[string]string) (CoverageTransform, error) {
	raw, ok := params["in_network"]
	if !ok {
		return nil, fmt.Errorf("set_network requires 'in_network' parameter")
	}
	inNetwork, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid in_network value: %w", err)
	}
	return &SetNetwork{InNetwork: inNetwork}, nil
}

func createSetInsurance(params map[string]string) (CoverageTransform, error) {
	raw, ok := params["insured"]
	if !ok {
		return nil, fmt.Errorf("set_insurance requires 'insured' parameter")
	}
	insured, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid insured value: %w", err)
	}
	return &SetInsurance{Insured: insured}, nil
}

func amountFactory(field AmountField) TransformFactory {
	return func(params map[string]string) (CoverageTransform, error) {
		raw, ok := params["amount"]
		if !ok {
			return nil, fmt.Errorf("set_%s requires 'amount' parameter", field)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid amount value: %w", err)
		}
		return &SetAmount{Field: field, Amount: amount}, nil
	}
}

func createSetCoinsurance(params map[string]string) (CoverageTransform, error) {
	raw, ok := params["percent"]
	if !ok {
		return nil, fmt.Errorf("set_coinsurance requires 'percent' parameter")
	}
	percent, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid percent value: %w", err)
	}
	return &SetCoinsurance{Percent: percent}, nil
}
