package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hanvion/healthcost/internal/domain"
)

// ConsoleFormatter renders the detailed text report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.EstimateReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "HEALTHCARE COST ESTIMATE")
	if report.Name != "" {
		fmt.Fprintf(&buf, "Scenario: %s\n", report.Name)
	}
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeCoverage(&buf, report.Coverage)

	if len(report.Visits) > 0 {
		fmt.Fprintln(&buf, "VISITS")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "%-20s %5s %12s %12s %12s %12s\n", "Visit", "Count", "Billed", "Allowed", "Plan Pays", "You Pay")
		for _, v := range report.Visits {
			marker := ""
			if v.CapApplied {
				marker = " *"
			}
			fmt.Fprintf(&buf, "%-20s %5d %12s %12s %12s %12s%s\n",
				v.VisitType.Label(), v.Count,
				FormatCurrency(v.BilledAmount), FormatCurrency(v.AllowedAmount),
				FormatCurrency(v.PlanPaid), FormatCurrency(v.PatientPaid), marker)
		}
		fmt.Fprintln(&buf, strings.Repeat("-", 78))
		fmt.Fprintf(&buf, "%-20s %5s %12s %12s %12s %12s\n", "TOTAL", "",
			FormatCurrency(report.Totals.Billed), FormatCurrency(report.Totals.Allowed),
			FormatCurrency(report.Totals.PlanPaid), FormatCurrency(report.Totals.PatientPaid))
		fmt.Fprintln(&buf)
	}

	if report.Annual != nil {
		fmt.Fprintln(&buf, "ANNUAL SPEND ESTIMATE")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Self-pay total:        %s\n", FormatCurrency(report.Annual.SelfPayTotal))
		if report.Annual.InsuredTotal != nil {
			fmt.Fprintf(&buf, "Insured estimate:      %s\n", FormatCurrency(*report.Annual.InsuredTotal))
			fmt.Fprintf(&buf, "Estimated savings:     %s\n", FormatCurrency(report.Annual.Savings()))
		} else {
			fmt.Fprintln(&buf, "Insured estimate:      n/a (no insurance)")
		}
		fmt.Fprintln(&buf)
	}

	if l := report.Likelihood; l != nil {
		fmt.Fprintln(&buf, "INSURANCE LIKELIHOOD")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "State:                 %s\n", l.State)
		fmt.Fprintf(&buf, "Likelihood of coverage: %s\n", FormatPercentage(l.Likelihood))
		fmt.Fprintf(&buf, "State uninsured rate:  %s\n", FormatPercentage(l.UninsuredRate))
		fmt.Fprintln(&buf)
	}

	if len(report.Notes) > 0 {
		fmt.Fprintln(&buf, "NOTES")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		for _, n := range report.Notes {
			fmt.Fprintf(&buf, "* %s\n", n)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "All amounts are illustrative estimates, not billing-accurate figures.")
	return buf.Bytes(), nil
}

func writeCoverage(buf *bytes.Buffer, c domain.CoverageParameters) {
	fmt.Fprintln(buf, "COVERAGE")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	if !c.HasInsurance {
		fmt.Fprintln(buf, "Uninsured (cash pay)")
		fmt.Fprintln(buf)
		return
	}
	network := "Out-of-network"
	if c.InNetwork {
		network = "In-network"
	}
	fmt.Fprintf(buf, "Network:               %s\n", network)
	fmt.Fprintf(buf, "Deductible:            %s (met %s)\n", FormatCurrency(c.Deductible), FormatCurrency(c.DeductibleMet))
	fmt.Fprintf(buf, "Coinsurance:           %s\n", FormatPercentage(c.CoinsurancePercent))
	fmt.Fprintf(buf, "Copay:                 %s\n", FormatCurrency(c.Copay))
	if c.OutOfPocketMax.IsPositive() {
		fmt.Fprintf(buf, "Out-of-pocket max:     %s\n", FormatCurrency(c.OutOfPocketMax))
	} else {
		fmt.Fprintln(buf, "Out-of-pocket max:     none")
	}
	fmt.Fprintln(buf)
}

// ConsoleLiteFormatter prints a short summary
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.EstimateReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "HEALTHCARE COST SUMMARY")
	fmt.Fprintln(&buf, "=======================")
	if report.Name != "" {
		fmt.Fprintf(&buf, "%s\n", report.Name)
	}
	fmt.Fprintf(&buf, "Visits: %d  Billed: %s  You pay: %s  Plan pays: %s\n",
		visitCount(report), FormatCurrency(report.Totals.Billed),
		FormatCurrency(report.Totals.PatientPaid), FormatCurrency(report.Totals.PlanPaid))
	if report.Annual != nil {
		line := fmt.Sprintf("Annual self-pay: %s", FormatCurrency(report.Annual.SelfPayTotal))
		if report.Annual.InsuredTotal != nil {
			line += fmt.Sprintf("  insured: %s", FormatCurrency(*report.Annual.InsuredTotal))
		}
		fmt.Fprintln(&buf, line)
	}
	if report.Likelihood != nil {
		fmt.Fprintf(&buf, "Coverage likelihood: %s\n", FormatPercentage(report.Likelihood.Likelihood))
	}
	return buf.Bytes(), nil
}

func visitCount(report *domain.EstimateReport) int {
	n := 0
	for _, v := range report.Visits {
		n += v.Count
	}
	return n
}
