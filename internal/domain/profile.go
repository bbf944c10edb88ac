package domain

import "github.com/shopspring/decimal"

// BMICategory is the weight class derived from a BMI value
type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObesity     BMICategory = "Obesity"
)

// HealthProfileInput is what the health profile form collects
type HealthProfileInput struct {
	Age          int     `yaml:"age" json:"age"`
	Sex          string  `yaml:"sex" json:"sex"`
	HeightCm     float64 `yaml:"height_cm" json:"heightCm"`
	WeightKg     float64 `yaml:"weight_kg" json:"weightKg"`
	SleepHours   float64 `yaml:"sleep_hours" json:"sleepHours"`
	ActivityDays int     `yaml:"activity_days" json:"activityDays"`
	Stress       string  `yaml:"stress" json:"stress"`   // Low | Medium | High
	Smoking      bool    `yaml:"smoking" json:"smoking"`
	Alcohol      string  `yaml:"alcohol" json:"alcohol"` // None | Occasional | Frequent
}

// HealthProfileResult bundles BMI, lifestyle score and recommendations
type HealthProfileResult struct {
	BMI             float64     `json:"bmi"`
	Category        BMICategory `json:"category"`
	LifestyleScore  int         `json:"lifestyleScore"`
	Recommendations []string    `json:"recommendations"`
}

// LikelihoodInput identifies the person for the coverage likelihood estimate
type LikelihoodInput struct {
	Age   int    `yaml:"age" json:"age"`
	Sex   string `yaml:"sex" json:"sex"`
	State string `yaml:"state" json:"state"`
}

// LikelihoodResult is the estimated chance of holding insurance
type LikelihoodResult struct {
	State         string          `json:"state"`
	Likelihood    decimal.Decimal `json:"likelihood"`    // percent, 25-98
	UninsuredRate decimal.Decimal `json:"uninsuredRate"` // percent used in the estimate
	InsuredRate   decimal.Decimal `json:"insuredRate"`
	UsedFallback  bool            `json:"usedFallback"`
}
