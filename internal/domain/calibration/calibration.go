package calibration

import "math"

// Signals are the derived numbers for one (evaluation, feedback) pair.
// ScoreDifference feeds the average-error metric; AccuracyContribution
// feeds the running-accuracy series. They are independent statistics and
// both get reported.
type Signals struct {
	ScoreDifference      float64
	IsCorrect            bool
	AccuracyContribution float64
}

// Derive computes the calibration signals for an AI score and its teacher
// correction. The teacher's is_correct verdict is authoritative: it is
// never inferred from the numeric gap between the two scores.
func Derive(aiScore, teacherScore float64, isCorrect bool) Signals {
	s := Signals{
		ScoreDifference: math.Abs(aiScore - teacherScore),
		IsCorrect:       isCorrect,
	}
	if isCorrect {
		s.AccuracyContribution = 1.0
	}
	return s
}
