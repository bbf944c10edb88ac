package calculation

import (
	"errors"
	"math"
	"strings"

	"github.com/hanvion/healthcost/internal/domain"
)

// ErrInvalidHeight is returned when BMI is requested for a non-positive height
var ErrInvalidHeight = errors.New("height must be greater than zero")

// CalculateBMI returns the body-mass index rounded to one decimal and its
// category. The category is taken from the unrounded value.
func CalculateBMI(weightKg, heightCm float64) (float64, domain.BMICategory, error) {
	if heightCm <= 0 {
		return 0, "", ErrInvalidHeight
	}
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	var category domain.BMICategory
	switch {
	case bmi < 18.5:
		category = domain.BMIUnderweight
	case bmi < 24.9:
		category = domain.BMINormal
	case bmi < 29.9:
		category = domain.BMIOverweight
	default:
		category = domain.BMIObesity
	}
	return math.Round(bmi*10) / 10, category, nil
}

// LifestyleScore starts at 100 and deducts points for short sleep, low
// activity, high stress, smoking and frequent drinking. Never below zero.
func LifestyleScore(sleepHours float64, activityDays int, stress string, smoking bool, alcohol string) int {
	score := 100
	if sleepHours < 6 {
		score -= 15
	}
	if activityDays < 3 {
		score -= 20
	}
	if strings.EqualFold(strings.TrimSpace(stress), "high") {
		score -= 15
	}
	if smoking {
		score -= 25
	}
	if strings.EqualFold(strings.TrimSpace(alcohol), "frequent") {
		score -= 10
	}
	if score < 0 {
		return 0
	}
	return score
}

// HealthyBalanceMessage is shown when there is nothing to recommend
const HealthyBalanceMessage = "You seem to have a healthy balance. Maintain your current habits."

// PreventionRecommendations returns canned advice for a lifestyle score and BMI category
func PreventionRecommendations(score int, category domain.BMICategory) []string {
	recs := []string{}

	switch category {
	case domain.BMIOverweight, domain.BMIObesity:
		recs = append(recs,
			"Focus on moderate calorie reduction and daily walking.",
			"Try to include vegetables, fruits, and lean proteins in meals.")
	case domain.BMIUnderweight:
		recs = append(recs, "Increase healthy calorie intake and check for nutritional deficiencies.")
	}

	if score < 70 {
		recs = append(recs,
			"Increase weekly physical activity to maintain a healthy lifestyle.",
			"Aim for at least 6–8 hours of sleep daily.",
			"Focus on building consistent daily habits.")
	}
	if score < 40 {
		recs = append(recs, "Consider speaking with a healthcare provider about stress or lifestyle concerns.")
	}
	return recs
}

// AssessHealthProfile runs BMI, lifestyle scoring and recommendations together
func AssessHealthProfile(in domain.HealthProfileInput) (domain.HealthProfileResult, error) {
	bmi, category, err := CalculateBMI(in.WeightKg, in.HeightCm)
	if err != nil {
		return domain.HealthProfileResult{}, err
	}
	score := LifestyleScore(in.SleepHours, in.ActivityDays, in.Stress, in.Smoking, in.Alcohol)
	return domain.HealthProfileResult{
		BMI:             bmi,
		Category:        category,
		LifestyleScore:  score,
		Recommendations: PreventionRecommendations(score, category),
	}, nil
}
