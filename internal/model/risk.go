package model

import "fmt"

// RiskScore is the upstream severity label of an invoice. Zero means the
// invoice carries no score.
type RiskScore int

// Risk score values.
const (
	RiskNone   RiskScore = 0
	RiskLow    RiskScore = 1
	RiskMedium RiskScore = 2
	RiskHigh   RiskScore = 3
)

// RiskScores lists the valid scores in ascending order.
var RiskScores = []RiskScore{RiskLow, RiskMedium, RiskHigh}

// Valid reports whether the score is one of 1, 2 or 3.
func (r RiskScore) Valid() bool {
	return r >= RiskLow && r <= RiskHigh
}

// Label returns the display label used by the risk list selector.
func (r RiskScore) Label() string {
	switch r {
	case RiskLow:
		return "Low Risk (Score 1)"
	case RiskMedium:
		return "Medium Risk (Score 2)"
	case RiskHigh:
		return "High Risk (Score 3)"
	default:
		return "No Score"
	}
}

func (r RiskScore) String() string {
	if !r.Valid() {
		return ""
	}
	return fmt.Sprintf("%d", int(r))
}
