package commands

import (
	"testing"

	"github.com/promptly-sh/promptly/internal/doctor"
)

func TestValidateDoctorFlags(t *testing.T) {
	reset := func() {
		doctorJSON = false
		doctorQuiet = false
		doctorVerbose = false
	}
	reset()
	t.Cleanup(reset)

	if err := validateDoctorFlags(nil, nil); err != nil {
		t.Errorf("no flags should be valid: %v", err)
	}

	doctorJSON = true
	if err := validateDoctorFlags(nil, nil); err != nil {
		t.Errorf("single flag should be valid: %v", err)
	}

	doctorQuiet = true
	if err := validateDoctorFlags(nil, nil); err == nil {
		t.Error("expected error for combined output flags")
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status doctor.Severity
		want   string
	}{
		{doctor.SeverityPass, "✓"},
		{doctor.SeverityInfo, "ℹ"},
		{doctor.SeverityWarning, "⚠"},
		{doctor.SeverityError, "✗"},
	}

	for _, tt := range tests {
		if got := statusIcon(tt.status); got != tt.want {
			t.Errorf("statusIcon(%v) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
