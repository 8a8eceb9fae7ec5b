package utils

import (
	"regexp"
)

var (
	phoneRe     = regexp.MustCompile(`^[89]\d{7}$`)
	serviceNoRe = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)
	vehicleNoRe = regexp.MustCompile(`^MID[ -]?\d{4,6}$`)
)

// ValidatePhone checks a local 8-digit mobile number.
func ValidatePhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// ValidateServiceNumber checks a service number (uppercase alphanumeric).
func ValidateServiceNumber(sn string) bool {
	return serviceNoRe.MatchString(sn)
}

// ValidateVehicleNo checks a military vehicle plate (MID series).
func ValidateVehicleNo(no string) bool {
	return vehicleNoRe.MatchString(no)
}
