package cost

// Severity is a classification band. The compute and payload-size classifiers
// use Optimal/Monitor/Critical; the message-size classifier uses
// Safe/Warning/Critical.
type Severity string

const (
	Optimal  Severity = "optimal"
	Monitor  Severity = "monitor"
	Safe     Severity = "safe"
	Warning  Severity = "warning"
	Critical Severity = "critical"
)

// Every classifier uses the same boundary convention: the middle band is
// closed on both ends, so a value exactly on a boundary is never Critical
// and never Optimal/Safe.

// ClassifyBudgetUsage bands compute usage: below 70% of budget is Optimal,
// 70-90% inclusive is Monitor, above 90% is Critical. Integer arithmetic
// keeps the boundaries exact.
func ClassifyBudgetUsage(consumed, budget uint64) Severity {
	if budget == 0 {
		if consumed == 0 {
			return Optimal
		}
		return Critical
	}
	switch {
	case consumed*100 < budget*70:
		return Optimal
	case consumed*100 <= budget*90:
		return Monitor
	default:
		return Critical
	}
}

// ClassifyPayloadSize bands the proof+witness payload: below 500 bytes is
// Optimal, 500-1000 inclusive is Monitor, above 1000 is Critical.
func ClassifyPayloadSize(totalProofWitnessSize int) Severity {
	switch {
	case totalProofWitnessSize < 500:
		return Optimal
	case totalProofWitnessSize <= 1000:
		return Monitor
	default:
		return Critical
	}
}

// ClassifyMessageSize bands the message against the wire ceiling: below 1000
// bytes is Safe, 1000 up to the 1232-byte ceiling is Warning, and anything
// beyond the ceiling is Critical (the transaction will be rejected).
func ClassifyMessageSize(messageSize int) Severity {
	switch {
	case messageSize < 1000:
		return Safe
	case messageSize <= MessageSizeCeiling:
		return Warning
	default:
		return Critical
	}
}
