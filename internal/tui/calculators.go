package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/domain"
	"github.com/hanvion/healthcost/internal/output"
	"github.com/hanvion/healthcost/internal/tui/components"
	"github.com/hanvion/healthcost/internal/tui/tuistyles"
)

// Result is what a calculator screen shows under its form
type Result struct {
	Cards []*components.MetricCard
	Lines []string
}

type computeFunc func(e *calculation.Engine, v components.Values) (*Result, error)

type calculator struct {
	scene   Scene
	summary string
	fields  []components.Field
	compute computeFunc
}

func visitTypeOptions() []string {
	opts := make([]string, len(domain.AllVisitTypes))
	for i, vt := range domain.AllVisitTypes {
		opts[i] = string(vt)
	}
	return opts
}

var calculators = []calculator{
	{
		scene:   SceneVisit,
		summary: "Split one visit between plan and patient",
		fields: []components.Field{
			{Key: "visit", Label: "Visit type", Kind: components.FieldChoice, Default: string(domain.VisitPrimaryCare), Options: visitTypeOptions()},
			{Key: "insured", Label: "Has insurance", Kind: components.FieldBool, Default: "yes"},
			{Key: "in_network", Label: "In network", Kind: components.FieldBool, Default: "yes"},
			{Key: "deductible", Label: "Deductible ($)", Kind: components.FieldNumber, Default: "1500"},
			{Key: "deductible_met", Label: "Deductible met ($)", Kind: components.FieldNumber, Default: "0"},
			{Key: "coinsurance", Label: "Coinsurance (%)", Kind: components.FieldNumber, Default: "20"},
			{Key: "copay", Label: "Copay ($)", Kind: components.FieldNumber, Default: "0"},
			{Key: "oop_max", Label: "Out-of-pocket max ($)", Kind: components.FieldNumber, Default: "6000"},
		},
		compute: computeVisit,
	},
	{
		scene:   SceneAnnual,
		summary: "Compare a year of self-pay care with an insured estimate",
		fields: []components.Field{
			{Key: "primary", Label: "Primary care visits", Kind: components.FieldInteger, Default: "2"},
			{Key: "urgent", Label: "Urgent care visits", Kind: components.FieldInteger, Default: "1"},
			{Key: "er", Label: "ER visits", Kind: components.FieldInteger, Default: "0"},
			{Key: "prescriptions", Label: "Monthly prescriptions", Kind: components.FieldInteger, Default: "1"},
			{Key: "insured", Label: "Has insurance", Kind: components.FieldBool, Default: "yes"},
		},
		compute: computeAnnual,
	},
	{
		scene:   SceneLikelihood,
		summary: "Estimate the chance of holding health insurance",
		fields: []components.Field{
			{Key: "age", Label: "Age", Kind: components.FieldInteger, Default: "35"},
			{Key: "sex", Label: "Sex", Kind: components.FieldChoice, Default: "Female", Options: []string{"Female", "Male", "Other"}},
			{Key: "state", Label: "State", Kind: components.FieldText, Default: "TX"},
		},
		compute: computeLikelihood,
	},
	{
		scene:   SceneProfile,
		summary: "BMI, lifestyle score and prevention tips",
		fields: []components.Field{
			{Key: "age", Label: "Age", Kind: components.FieldInteger, Default: "35"},
			{Key: "sex", Label: "Sex", Kind: components.FieldChoice, Default: "Female", Options: []string{"Female", "Male", "Other"}},
			{Key: "height", Label: "Height (cm)", Kind: components.FieldNumber, Default: "170"},
			{Key: "weight", Label: "Weight (kg)", Kind: components.FieldNumber, Default: "70"},
			{Key: "sleep", Label: "Sleep (hours/night)", Kind: components.FieldNumber, Default: "7"},
			{Key: "activity", Label: "Active days/week", Kind: components.FieldInteger, Default: "3"},
			{Key: "stress", Label: "Stress", Kind: components.FieldChoice, Default: "Medium", Options: []string{"Low", "Medium", "High"}},
			{Key: "smoking", Label: "Smoker", Kind: components.FieldBool, Default: "no"},
			{Key: "alcohol", Label: "Alcohol", Kind: components.FieldChoice, Default: "Occasional", Options: []string{"None", "Occasional", "Frequent"}},
		},
		compute: computeProfile,
	},
	{
		scene:   SceneSymptoms,
		summary: "Look up the body system and guidance for a symptom",
		fields: []components.Field{
			{Key: "name", Label: "Symptom", Kind: components.FieldText},
		},
		compute: computeSymptom,
	},
	{
		scene:   SceneServices,
		summary: "Cash versus insurer-allowed prices for common services",
		fields: []components.Field{
			{Key: "name", Label: "Service (blank for all)", Kind: components.FieldText},
		},
		compute: computeServices,
	},
	{
		scene:   SceneMedications,
		summary: "Cash, discount card and copay prices for a drug",
		fields: []components.Field{
			{Key: "name", Label: "Drug (blank to list)", Kind: components.FieldText},
		},
		compute: computeMedication,
	},
	{
		scene:   SceneProcedures,
		summary: "Benchmark procedure prices by setting",
		fields: []components.Field{
			{Key: "query", Label: "Code or description", Kind: components.FieldText},
			{Key: "setting", Label: "Setting", Kind: components.FieldText, Default: calculation.AllSettings},
		},
		compute: computeProcedures,
	},
}

func calculatorFor(scene Scene) (calculator, bool) {
	for _, c := range calculators {
		if c.scene == scene {
			return c, true
		}
	}
	return calculator{}, false
}

func computeVisit(e *calculation.Engine, v components.Values) (*Result, error) {
	visit, err := v.Choice("visit")
	if err != nil {
		return nil, err
	}
	var cov domain.CoverageParameters
	if cov.HasInsurance, err = v.Bool("insured"); err != nil {
		return nil, err
	}
	if cov.InNetwork, err = v.Bool("in_network"); err != nil {
		return nil, err
	}
	if cov.Deductible, err = v.Decimal("deductible"); err != nil {
		return nil, err
	}
	if cov.DeductibleMet, err = v.Decimal("deductible_met"); err != nil {
		return nil, err
	}
	if cov.CoinsurancePercent, err = v.Decimal("coinsurance"); err != nil {
		return nil, err
	}
	if cov.Copay, err = v.Decimal("copay"); err != nil {
		return nil, err
	}
	if cov.OutOfPocketMax, err = v.Decimal("oop_max"); err != nil {
		return nil, err
	}

	r := e.SimulateVisitPayment(domain.VisitType(visit), cov)
	res := &Result{Cards: []*components.MetricCard{
		components.NewMetricCard("Billed", output.FormatCurrency(r.BilledAmount)),
		components.NewMetricCard("Allowed", output.FormatCurrency(r.AllowedAmount)),
		components.NewMetricCard("Plan pays", output.FormatCurrency(r.PlanPaid)).WithTone(tuistyles.TonePositive),
		components.NewMetricCard("You pay", output.FormatCurrency(r.PatientPaid)).WithTone(tuistyles.ToneNegative),
	}}
	if r.CapApplied {
		res.Lines = append(res.Lines, fmt.Sprintf("Out-of-pocket maximum reached; %s of the allowed amount is not allocated.",
			output.FormatCurrency(r.Unallocated())))
	}
	return res, nil
}

func computeAnnual(e *calculation.Engine, v components.Values) (*Result, error) {
	var (
		u   domain.AnnualUsage
		err error
	)
	if u.PrimaryCareVisits, err = v.Int("primary"); err != nil {
		return nil, err
	}
	if u.UrgentCareVisits, err = v.Int("urgent"); err != nil {
		return nil, err
	}
	if u.ERVisits, err = v.Int("er"); err != nil {
		return nil, err
	}
	if u.MonthlyPrescriptions, err = v.Int("prescriptions"); err != nil {
		return nil, err
	}
	if u.HasInsurance, err = v.Bool("insured"); err != nil {
		return nil, err
	}

	r := e.EstimateAnnualSpend(u)
	res := &Result{Cards: []*components.MetricCard{
		components.NewMetricCard("Self-pay total", output.FormatCurrency(r.SelfPayTotal)).WithTone(tuistyles.ToneNegative),
	}}
	if r.InsuredTotal != nil {
		res.Cards = append(res.Cards,
			components.NewMetricCard("Insured estimate", output.FormatCurrency(*r.InsuredTotal)),
			components.NewMetricCard("Savings", output.FormatCurrency(r.Savings())).WithTone(tuistyles.TonePositive),
		)
	} else {
		res.Lines = append(res.Lines, "No insured estimate without insurance.")
	}
	return res, nil
}

func computeLikelihood(e *calculation.Engine, v components.Values) (*Result, error) {
	age, err := v.Int("age")
	if err != nil {
		return nil, err
	}
	sex, err := v.Choice("sex")
	if err != nil {
		return nil, err
	}

	r := e.InsuranceLikelihood(domain.LikelihoodInput{Age: age, Sex: sex, State: v.String("state")})
	res := &Result{Cards: []*components.MetricCard{
		components.NewMetricCard("Likelihood insured", output.FormatPercentage(r.Likelihood)).WithTone(tuistyles.TonePositive),
		components.NewMetricCard("State uninsured rate", output.FormatPercentage(r.UninsuredRate)).WithNote(r.State),
	}}
	if r.UsedFallback {
		res.Lines = append(res.Lines, "State not found; the national uninsured rate was used.")
	}
	return res, nil
}

func computeProfile(e *calculation.Engine, v components.Values) (*Result, error) {
	var (
		in  domain.HealthProfileInput
		err error
	)
	if in.Age, err = v.Int("age"); err != nil {
		return nil, err
	}
	if in.Sex, err = v.Choice("sex"); err != nil {
		return nil, err
	}
	if in.HeightCm, err = v.Float("height"); err != nil {
		return nil, err
	}
	if in.WeightKg, err = v.Float("weight"); err != nil {
		return nil, err
	}
	if in.SleepHours, err = v.Float("sleep"); err != nil {
		return nil, err
	}
	if in.ActivityDays, err = v.Int("activity"); err != nil {
		return nil, err
	}
	if in.Stress, err = v.Choice("stress"); err != nil {
		return nil, err
	}
	if in.Smoking, err = v.Bool("smoking"); err != nil {
		return nil, err
	}
	if in.Alcohol, err = v.Choice("alcohol"); err != nil {
		return nil, err
	}

	r, err := e.AssessHealthProfile(in)
	if err != nil {
		return nil, err
	}

	scoreTone := tuistyles.TonePositive
	if r.LifestyleScore < 60 {
		scoreTone = tuistyles.ToneWarning
	}
	res := &Result{Cards: []*components.MetricCard{
		components.NewMetricCard("BMI", strconv.FormatFloat(r.BMI, 'f', 1, 64)).WithNote(string(r.Category)),
		components.NewMetricCard("Lifestyle score", strconv.Itoa(r.LifestyleScore)+"/100").WithTone(scoreTone),
	}}
	if len(r.Recommendations) == 0 {
		res.Lines = append(res.Lines, calculation.HealthyBalanceMessage)
	}
	for _, rec := range r.Recommendations {
		res.Lines = append(res.Lines, "- "+rec)
	}
	return res, nil
}

func computeSymptom(e *calculation.Engine, v components.Values) (*Result, error) {
	name := v.String("name")
	if name == "" {
		symptoms := e.Tables.Symptoms()
		names := make([]string, len(symptoms))
		for i, s := range symptoms {
			names[i] = s.Name
		}
		return &Result{Lines: []string{"Known symptoms: " + strings.Join(names, ", ")}}, nil
	}

	s, err := e.LookupSymptom(name)
	if err != nil {
		return nil, err
	}
	careTone, care := tuistyles.TonePositive, "Self-care"
	if s.SeekCare {
		careTone, care = tuistyles.ToneNegative, "Seek care"
	}
	res := &Result{
		Cards: []*components.MetricCard{
			components.NewMetricCard("Body system", s.System),
			components.NewMetricCard("Guidance", care).WithTone(careTone),
		},
		Lines: []string{"Possible causes: " + strings.Join(s.PossibleCauses, ", ")},
	}
	if s.Notes != "" {
		res.Lines = append(res.Lines, s.Notes)
	}
	return res, nil
}

func computeServices(e *calculation.Engine, v components.Values) (*Result, error) {
	var summaries []domain.ServiceCostSummary
	if name := v.String("name"); name != "" {
		s, err := e.ServiceCostSummary(name)
		if err != nil {
			return nil, err
		}
		summaries = []domain.ServiceCostSummary{s}
	} else {
		summaries = e.ServiceCostSummaries()
	}

	if len(summaries) == 1 {
		s := summaries[0]
		return &Result{Cards: []*components.MetricCard{
			components.NewMetricCard("Average cash", output.FormatCurrency(s.AverageCash)).
				WithNote(output.FormatCurrency(s.Cash.Low) + " - " + output.FormatCurrency(s.Cash.High)),
			components.NewMetricCard("Average allowed", output.FormatCurrency(s.AverageAllowed)).
				WithNote(output.FormatCurrency(s.Allowed.Low) + " - " + output.FormatCurrency(s.Allowed.High)),
			components.NewMetricCard("Est. savings", output.FormatCurrency(s.EstimatedSavings)).WithTone(tuistyles.TonePositive),
		}}, nil
	}

	res := &Result{Lines: []string{fmt.Sprintf("%-32s %12s %12s %12s", "Service", "Avg cash", "Avg allowed", "Savings")}}
	for _, s := range summaries {
		res.Lines = append(res.Lines, fmt.Sprintf("%-32s %12s %12s %12s", s.Name,
			output.FormatCurrency(s.AverageCash), output.FormatCurrency(s.AverageAllowed), output.FormatCurrency(s.EstimatedSavings)))
	}
	return res, nil
}

func computeMedication(e *calculation.Engine, v components.Values) (*Result, error) {
	name := v.String("name")
	if name == "" {
		return &Result{Lines: []string{"Available: " + strings.Join(e.Tables.Medications(), ", ")}}, nil
	}

	m, err := e.Tables.Medication(name)
	if err != nil {
		return nil, err
	}
	return &Result{
		Cards: []*components.MetricCard{
			components.NewMetricCard("Cash price", output.FormatCurrency(m.Cash.Low)+" - "+output.FormatCurrency(m.Cash.High)),
			components.NewMetricCard("Discount card", output.FormatCurrency(m.Discount.Low)+" - "+output.FormatCurrency(m.Discount.High)).
				WithTone(tuistyles.TonePositive),
			components.NewMetricCard("Typical copay", output.FormatCurrency(m.Copay)),
		},
		Lines: []string{m.Drug + " " + m.Strength},
	}, nil
}

func computeProcedures(e *calculation.Engine, v components.Values) (*Result, error) {
	procs := e.SearchProcedures(v.String("query"), v.String("setting"))
	if len(procs) == 0 {
		return &Result{Lines: []string{"No procedures match. Settings: " + strings.Join(e.ProcedureSettings(), ", ")}}, nil
	}

	res := &Result{Lines: []string{fmt.Sprintf("%-7s %-30s %-18s %10s %8s", "Code", "Description", "Setting", "Median", "Spread")}}
	for _, p := range procs {
		res.Lines = append(res.Lines, fmt.Sprintf("%-7s %-30s %-18s %10s %7sx",
			p.Code, truncate(p.Description, 30), truncate(p.Setting, 18), output.FormatCurrency(p.MedianPrice), p.VariationRatio().StringFixed(1)))
	}
	return res, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
