package compare

import (
	"context"
	"fmt"

	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // built-in template names
	Transforms []string // ad-hoc transform specs, each run as its own alternative
}

// Compare runs the base scenario and one alternative per template or transform spec
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is nil")
	}
	if len(options.Templates) == 0 && len(options.Transforms) == 0 {
		return nil, fmt.Errorf("at least one template or transform is required")
	}

	baseName := config.Name
	if baseName == "" {
		baseName = "base"
	}

	baseReport, err := ce.CalcEngine.RunScenario(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseReport)

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(config, template)
		if err != nil {
			return nil, err
		}
		modified.Name = baseName + "_" + template.Name

		alt, err := ce.runAlternative(ctx, modified, template.Description, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		alternatives = append(alternatives, alt)
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(config, []transform.CoverageTransform{tr})
		if err != nil {
			return nil, err
		}
		modified.Name = baseName + "_" + tr.Name()

		alt, err := ce.runAlternative(ctx, modified, tr.Description(), baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", spec, err)
		}
		alternatives = append(alternatives, alt)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) runAlternative(ctx context.Context, cfg *domain.Configuration, description string, base ComparisonResult) (ComparisonResult, error) {
	report, err := ce.CalcEngine.RunScenario(ctx, cfg)
	if err != nil {
		return ComparisonResult{}, err
	}
	result := ce.MetricsCalculator.CalculateMetrics(cfg.Name, report)
	result.Description = description
	return ce.MetricsCalculator.CalculateComparison(result, base), nil
}
