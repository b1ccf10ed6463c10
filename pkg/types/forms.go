package types

// Form structs are decoded from POST bodies with go-playground/form. All
// values stay strings until validated so the entered text can be re-rendered
// untouched when validation fails.

type DonorForm struct {
	Name          string `form:"name"`
	Email         string `form:"email"`
	ContactNumber string `form:"contactNumber"`
	BloodGroup    string `form:"bloodGroup"`
	City          string `form:"city"`
	Age           string `form:"age"`
}

type RequestForm struct {
	PatientName  string `form:"patientName"`
	BloodGroup   string `form:"bloodGroup"`
	Hospital     string `form:"hospital"`
	City         string `form:"city"`
	ContactPhone string `form:"contactPhone"`
	ContactEmail string `form:"contactEmail"`
	Urgent       bool   `form:"urgent"`
	NeededBy     string `form:"neededBy"`
}

type NotifyForm struct {
	Subject string `form:"subject"`
	Message string `form:"message"`
}

type AdminRequestForm struct {
	PatientName  string `form:"patientName"`
	BloodGroup   string `form:"bloodGroup"`
	Hospital     string `form:"hospital"`
	City         string `form:"city"`
	ContactPhone string `form:"contactPhone"`
	ContactEmail string `form:"contactEmail"`
	Urgent       bool   `form:"urgent"`
	NeededBy     string `form:"neededBy"`
	Status       string `form:"status"`
}
