package types

// Donor mirrors the backing service's donor record. JSON names match the wire
// format, which uses lowerCamelCase.
type Donor struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	BloodGroup    string `json:"bloodGroup"`
	City          string `json:"city"`
	Age           *int   `json:"age,omitempty"`
}

// BloodGroups is the fixed ABO/Rh set the backing service accepts.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

func ValidBloodGroup(bg string) bool {
	for _, g := range BloodGroups {
		if g == bg {
			return true
		}
	}
	return false
}
