package server

import (
	"regexp"
	"strconv"
	"strings"

	"bloodnet/pkg/types"
)

var (
	phoneReg = regexp.MustCompile(`^\d{10}$`)
	emailReg = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// validateDonorForm applies the only client-side defenses this app has:
// required fields, a 10-digit phone check, an email format check and an age
// range check. Everything else (email uniqueness, blood group membership) is
// enforced by the backing service.
func validateDonorForm(f types.DonorForm) map[string]string {
	errs := map[string]string{}

	if !required(f.Name) {
		errs["name"] = "Full name is required."
	}

	if !required(f.Email) {
		errs["email"] = "Email is required."
	} else if !emailReg.MatchString(strings.TrimSpace(f.Email)) {
		errs["email"] = "Enter a valid email address."
	}

	if !required(f.ContactNumber) {
		errs["contactNumber"] = "Contact number is required."
	} else if !phoneReg.MatchString(strings.TrimSpace(f.ContactNumber)) {
		errs["contactNumber"] = "Contact number must be exactly 10 digits."
	}

	if !required(f.BloodGroup) {
		errs["bloodGroup"] = "Blood group is required."
	} else if !types.ValidBloodGroup(f.BloodGroup) {
		errs["bloodGroup"] = "Select a valid blood group."
	}

	if !required(f.City) {
		errs["city"] = "City is required."
	}

	if required(f.Age) {
		age, err := strconv.Atoi(strings.TrimSpace(f.Age))
		if err != nil || age < 18 || age > 65 {
			errs["age"] = "Age must be between 18 and 65."
		}
	}

	return errs
}

func validateRequestForm(f types.RequestForm) map[string]string {
	errs := map[string]string{}

	if !required(f.PatientName) {
		errs["patientName"] = "Patient name is required."
	}

	if !required(f.BloodGroup) {
		errs["bloodGroup"] = "Blood group is required."
	} else if !types.ValidBloodGroup(f.BloodGroup) {
		errs["bloodGroup"] = "Select a valid blood group."
	}

	if !required(f.Hospital) {
		errs["hospital"] = "Hospital is required."
	}

	if !required(f.City) {
		errs["city"] = "City is required."
	}

	if !required(f.ContactPhone) {
		errs["contactPhone"] = "Contact phone is required."
	}

	if !required(f.ContactEmail) {
		errs["contactEmail"] = "Contact email is required."
	} else if !emailReg.MatchString(strings.TrimSpace(f.ContactEmail)) {
		errs["contactEmail"] = "Enter a valid email address."
	}

	return errs
}

// donorFromForm converts a validated form into the wire record.
func donorFromForm(f types.DonorForm) *types.Donor {
	donor := &types.Donor{
		Name:          strings.TrimSpace(f.Name),
		Email:         strings.TrimSpace(f.Email),
		ContactNumber: strings.TrimSpace(f.ContactNumber),
		BloodGroup:    f.BloodGroup,
		City:          strings.TrimSpace(f.City),
	}

	if required(f.Age) {
		if age, err := strconv.Atoi(strings.TrimSpace(f.Age)); err == nil {
			donor.Age = &age
		}
	}

	return donor
}

func requestFromForm(f types.RequestForm) *types.BloodRequest {
	return &types.BloodRequest{
		PatientName:  strings.TrimSpace(f.PatientName),
		BloodGroup:   f.BloodGroup,
		Hospital:     strings.TrimSpace(f.Hospital),
		City:         strings.TrimSpace(f.City),
		ContactPhone: strings.TrimSpace(f.ContactPhone),
		ContactEmail: strings.TrimSpace(f.ContactEmail),
		Urgent:       f.Urgent,
		NeededBy:     f.NeededBy,
	}
}
