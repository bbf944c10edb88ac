package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs
var DefaultAssumptions = []string{
	"In-network allowed amount: 60% of the billed amount",
	"Out-of-network allowed amount: the full billed amount",
	"Each visit is priced against the same deductible progress",
	"Out-of-pocket maximum caps the patient share only; the plan share is not raised",
	"Insured annual estimate: 35% of the self-pay total, rounded to whole dollars",
	"Prescriptions: $40 per monthly fill at cash prices",
}
