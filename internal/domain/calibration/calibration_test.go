package calibration_test

import (
	"testing"

	"github.com/gradelens/backend/internal/domain/calibration"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name         string
		aiScore      float64
		teacherScore float64
		isCorrect    bool
		wantDiff     float64
		wantContrib  float64
	}{
		{"teacher raises the score", 72.0, 80.0, true, 8.0, 1.0},
		{"teacher lowers the score", 60.0, 50.0, false, 10.0, 0.0},
		{"identical scores marked incorrect", 50.0, 50.0, false, 0.0, 0.0},
		{"identical scores marked correct", 88.5, 88.5, true, 0.0, 1.0},
		{"large gap marked correct", 91.0, 40.0, true, 51.0, 1.0},
		{"zero scores", 0.0, 0.0, true, 0.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := calibration.Derive(tt.aiScore, tt.teacherScore, tt.isCorrect)

			if s.ScoreDifference != tt.wantDiff {
				t.Errorf("expected score difference %v, got %v", tt.wantDiff, s.ScoreDifference)
			}
			if s.AccuracyContribution != tt.wantContrib {
				t.Errorf("expected accuracy contribution %v, got %v", tt.wantContrib, s.AccuracyContribution)
			}
			if s.IsCorrect != tt.isCorrect {
				t.Errorf("expected is_correct %v, got %v", tt.isCorrect, s.IsCorrect)
			}
		})
	}
}

func TestDeriveDifferenceIsSymmetric(t *testing.T) {
	a := calibration.Derive(72.0, 80.0, true)
	b := calibration.Derive(80.0, 72.0, true)

	if a.ScoreDifference != b.ScoreDifference {
		t.Errorf("expected symmetric difference, got %v and %v", a.ScoreDifference, b.ScoreDifference)
	}
}
