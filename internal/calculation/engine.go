package calculation

import (
	"context"
	"fmt"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/reference"
	"github.com/shopspring/decimal"
)

// Engine runs the calculators against one set of reference tables
type Engine struct {
	Tables *reference.Tables
	Logger Logger
}

// NewEngine creates an engine over the embedded reference data
func NewEngine() *Engine {
	return NewEngineWithTables(reference.DefaultTables())
}

// NewEngineWithTables creates an engine over the given reference tables
func NewEngineWithTables(tables *reference.Tables) *Engine {
	if tables == nil {
		tables = reference.DefaultTables()
	}
	return &Engine{Tables: tables, Logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil installs a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Rates exposes the engine tables through the rate-provider contract
func (e *Engine) Rates() reference.RateProvider {
	return e.Tables
}

func (e *Engine) SimulateVisitPayment(visit domain.VisitType, coverage domain.CoverageParameters) domain.VisitPaymentResult {
	result := SimulateVisitPayment(e.Tables, visit, coverage)
	e.Logger.Debugf("visit %s: billed=%s allowed=%s plan=%s patient=%s",
		visit, result.BilledAmount, result.AllowedAmount, result.PlanPaid, result.PatientPaid)
	return result
}

func (e *Engine) EstimateAnnualSpend(usage domain.AnnualUsage) domain.AnnualSpendResult {
	return EstimateAnnualSpend(e.Tables, usage)
}

func (e *Engine) InsuranceLikelihood(in domain.LikelihoodInput) domain.LikelihoodResult {
	result := InsuranceLikelihood(e.Tables, in)
	if result.UsedFallback {
		e.Logger.Warnf("no uninsured rate for state %q, using national average %s%%", in.State, result.UninsuredRate)
	}
	return result
}

func (e *Engine) AssessHealthProfile(in domain.HealthProfileInput) (domain.HealthProfileResult, error) {
	return AssessHealthProfile(in)
}

func (e *Engine) LookupSymptom(name string) (domain.Symptom, error) {
	return e.Tables.Symptom(name)
}

func (e *Engine) ServiceCostSummary(name string) (domain.ServiceCostSummary, error) {
	return ServiceCostSummary(e.Tables, name)
}

// ServiceCostSummaries summarizes every service in display order
func (e *Engine) ServiceCostSummaries() []domain.ServiceCostSummary {
	services := e.Tables.Services()
	out := make([]domain.ServiceCostSummary, len(services))
	for i, s := range services {
		out[i] = SummarizeService(s)
	}
	return out
}

func (e *Engine) SearchProcedures(query, setting string) []domain.Procedure {
	return SearchProcedures(e.Tables.Procedures(), query, setting)
}

func (e *Engine) ProcedureSettings() []string {
	return Settings(e.Tables.Procedures())
}

// RunScenario prices every planned visit of a scenario and, when the
// scenario carries them, the annual estimate and insurance likelihood.
// Each visit is simulated against the same coverage snapshot; the
// deductible does not accumulate across visits.
func (e *Engine) RunScenario(ctx context.Context, cfg *domain.Configuration) (*domain.EstimateReport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	tables, err := reference.Apply(e.Tables, cfg.Reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	if len(cfg.Rates) > 0 {
		tables = tables.WithBilledOverrides(cfg.Rates)
	}

	e.Logger.Infof("running scenario %q with %d visit entries", cfg.Name, len(cfg.Visits))

	report := &domain.EstimateReport{
		Name:     cfg.Name,
		Coverage: cfg.Coverage,
		Visits:   make([]domain.VisitLine, 0, len(cfg.Visits)),
	}

	for _, planned := range cfg.Visits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vt, known := domain.ParseVisitType(string(planned.Type))
		if !known {
			if _, ok := tables.BilledAmount(vt); !ok {
				e.Logger.Warnf("unknown visit type %q, using default billed amount %s", planned.Type, reference.DefaultBilledAmount)
				report.Notes = append(report.Notes, fmt.Sprintf(
					"%s: unknown visit type, priced at the default $%s", planned.Type, reference.DefaultBilledAmount.StringFixed(2)))
			}
		}

		result := SimulateVisitPayment(tables, vt, cfg.Coverage)
		line := domain.VisitLine{VisitPaymentResult: result, Count: planned.Times()}
		report.Visits = append(report.Visits, line)

		n := decimal.NewFromInt(int64(line.Count))
		report.Totals.Billed = report.Totals.Billed.Add(result.BilledAmount.Mul(n))
		report.Totals.Allowed = report.Totals.Allowed.Add(result.AllowedAmount.Mul(n))
		report.Totals.PlanPaid = report.Totals.PlanPaid.Add(result.PlanPaid.Mul(n))
		report.Totals.PatientPaid = report.Totals.PatientPaid.Add(result.PatientPaid.Mul(n))

		if result.CapApplied {
			report.Notes = append(report.Notes, fmt.Sprintf(
				"%s: out-of-pocket maximum capped the patient share; $%s of the allowed amount is not allocated",
				vt.Label(), result.Unallocated().StringFixed(2)))
		}
	}

	if cfg.Usage != nil {
		annual := EstimateAnnualSpend(tables, *cfg.Usage)
		report.Annual = &annual
	}

	if cfg.Person != nil {
		likelihood := InsuranceLikelihood(tables, *cfg.Person)
		if likelihood.UsedFallback {
			e.Logger.Warnf("no uninsured rate for state %q, using national average", cfg.Person.State)
			report.Notes = append(report.Notes, fmt.Sprintf(
				"%s: state not found, national uninsured rate of %s%% used", cfg.Person.State, reference.NationalUninsuredRate))
		}
		report.Likelihood = &likelihood
	}

	e.Logger.Debugf("scenario %q patient total %s", cfg.Name, report.Totals.PatientPaid)
	return report, nil
}
