package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"81234567", "98765432"}
	invalid := []string{"71234567", "8123456", "812345678", "8123456a", ""}

	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q): got false, want true", p)
		}
	}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q): got true, want false", p)
		}
	}
}

func TestValidateServiceNumber(t *testing.T) {
	valid := []string{"T0012345A", "ADMIN001", "REC1"}
	invalid := []string{"t0012345a", "AB", "WAY-TOO-LONG-123", "WITH SPACE"}

	for _, sn := range valid {
		if !ValidateServiceNumber(sn) {
			t.Errorf("ValidateServiceNumber(%q): got false, want true", sn)
		}
	}
	for _, sn := range invalid {
		if ValidateServiceNumber(sn) {
			t.Errorf("ValidateServiceNumber(%q): got true, want false", sn)
		}
	}
}

func TestValidateVehicleNo(t *testing.T) {
	valid := []string{"MID1234", "MID 12345", "MID-123456"}
	invalid := []string{"mid1234", "MID123", "CIV1234", "MID12345678"}

	for _, no := range valid {
		if !ValidateVehicleNo(no) {
			t.Errorf("ValidateVehicleNo(%q): got false, want true", no)
		}
	}
	for _, no := range invalid {
		if ValidateVehicleNo(no) {
			t.Errorf("ValidateVehicleNo(%q): got true, want false", no)
		}
	}
}
