package types

type NavbarData struct {
	IsAdmin    bool
	AdminEmail string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

// BasePageData carries what every page needs: the title, the navbar state and
// the flash slots filled from notice/error query params after a redirect.
type BasePageData struct {
	Title  string
	Navbar NavbarData
	Notice string
	Error  string
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type HomePageData struct {
	BasePageData
}

type DonorsPageData struct {
	BasePageData
	Donors           []*Donor
	FilterCity       string
	FilterBloodGroup string
	BloodGroups      []string
}

type RegisterDonorPageData struct {
	BasePageData
	Form        DonorForm
	FieldErrors map[string]string
	BloodGroups []string
}

type NotifyDonorPageData struct {
	BasePageData
	DonorID     int64
	DonorName   string
	Form        NotifyForm
	FieldErrors map[string]string
}

type RequestsPageData struct {
	BasePageData
	Requests []*BloodRequest
	Filter   string
}

type RequestDetailPageData struct {
	BasePageData
	Request *BloodRequest
}

type NewRequestPageData struct {
	BasePageData
	Form        RequestForm
	FieldErrors map[string]string
	BloodGroups []string

	// Filled after a successful submission
	Created    bool
	DonorCount int
	City       string
	BloodGroup string
	DonorsLink string
}

type AcceptPageData struct {
	BasePageData
	State   string // processing, success, error, invalid
	Message string
}

type AdminLoginPageData struct {
	BasePageData
	Email string
}

type AdminPanelPageData struct {
	BasePageData
	Tab          string
	Donors       []*Donor
	Requests     []*BloodRequest
	Summary      *Summary
	EditID       int64
	ModalRequest *BloodRequest
	BloodGroups  []string
}

type BarDatum struct {
	Label   string
	Value   int
	Percent int
}

type PieSlice struct {
	Label   string
	Value   int
	Percent int
	Path    string
	Color   string
}

type DashboardPageData struct {
	BasePageData
	Summary *Summary
	Bars    []BarDatum
	Slices  []PieSlice
}

type NotFoundPageData struct {
	BasePageData
}
