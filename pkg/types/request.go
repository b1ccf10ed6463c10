package types

// BloodRequest mirrors the backing service's request record. AcceptedDonors is
// append-only on the server side; this app only reads and counts it.
type BloodRequest struct {
	ID             int64    `json:"id"`
	PatientName    string   `json:"patientName"`
	BloodGroup     string   `json:"bloodGroup"`
	Hospital       string   `json:"hospital"`
	City           string   `json:"city"`
	ContactPhone   string   `json:"contactPhone"`
	ContactEmail   string   `json:"contactEmail"`
	Urgent         bool     `json:"urgent"`
	NeededBy       string   `json:"neededBy,omitempty"`
	Status         string   `json:"status,omitempty"`
	AcceptedDonors []string `json:"acceptedDonors,omitempty"`
}

// Summary holds the aggregate counts computed server-side by the backing
// service.
type Summary struct {
	TotalDonors   int `json:"totalDonors"`
	TotalRequests int `json:"totalRequests"`
	UrgentOpen    int `json:"urgentOpen"`
	AcceptedTotal int `json:"acceptedTotal"`
}
