package report

// RiskLevel classifies a probability × consequence score
type RiskLevel int

const (
	RiskUnassessed RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
)

// Scale bounds for probability and consequence
const (
	riskScaleMin = 1
	riskScaleMax = 5

	mediumRiskScore = 6
	highRiskScore   = 15
)

// RiskScore multiplies probability and consequence on the 1-5 scale. Either
// factor outside the scale gives 0.
func RiskScore(probability, consequence int) int {
	if !onScale(probability) || !onScale(consequence) {
		return 0
	}
	return probability * consequence
}

func onScale(v int) bool {
	return v >= riskScaleMin && v <= riskScaleMax
}

// LevelOf maps a risk score to its level: 1-5 low, 6-12 medium, 15-25 high
func LevelOf(score int) RiskLevel {
	switch {
	case score <= 0:
		return RiskUnassessed
	case score >= highRiskScore:
		return RiskHigh
	case score >= mediumRiskScore:
		return RiskMedium
	default:
		return RiskLow
	}
}

func (l RiskLevel) label(lb Labels) string {
	switch l {
	case RiskLow:
		return lb.LowRisk
	case RiskMedium:
		return lb.MediumRisk
	case RiskHigh:
		return lb.HighRisk
	default:
		return lb.Unassessed
	}
}
