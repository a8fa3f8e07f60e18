package gateway

/*──────────────────────────── wire types ────────────────────────────*/

// User is the identity block the auth endpoints return inside their
// result envelope.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Gender    string `json:"gender,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// AuthResult is what Login and RegisterUser hand back on success. The
// token is the bearer credential for every later call.
type AuthResult struct {
	User  User
	Token string
}

// RegistrationForm carries the signup fields. The API expects them as
// multipart form data even though no file part is ever sent.
type RegistrationForm struct {
	FirstName            string
	LastName             string
	Email                string
	Gender               string
	Password             string
	PasswordConfirmation string
}

// BranchRegistration is the branch payload. CompanyID comes from the
// session, never from the form. When IsVATRegistered is false the two
// tax fields are forced to empty strings before serialization, so
// stale values from a prior toggle-on state never reach the wire.
type BranchRegistration struct {
	CompanyID             string `json:"company_id"`
	Name                  string `json:"name"`
	Industry              string `json:"industry"`
	State                 string `json:"state"`
	BuildingNumber        string `json:"building_number"`
	Street                string `json:"street"`
	ZipCode               string `json:"zip_code"`
	District              string `json:"district"`
	City                  string `json:"city"`
	Currency              string `json:"currency"`
	Language              string `json:"language"`
	TimeZone              string `json:"time_zone"`
	IsVATRegistered       bool   `json:"is_vat_registered"`
	TaxRegistrationNumber string `json:"tax_registration_number"`
	VATRegisteredNumber   string `json:"vat_registered_number"`
}

// normalized returns a copy safe to serialize: tax fields blanked
// whenever the VAT flag is off.
func (b BranchRegistration) normalized() BranchRegistration {
	if !b.IsVATRegistered {
		b.TaxRegistrationNumber = ""
		b.VATRegisteredNumber = ""
	}
	return b
}

/*──────────────────────────── response envelopes ────────────────────────────*/

// successMarker is the literal the API places in the msg field of a
// successful mutation response. A 2xx status alone is not success.
const successMarker = "success"

type authEnvelope struct {
	Msg    string `json:"msg"`
	Result struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	} `json:"result"`
}

type companyEnvelope struct {
	Msg    string `json:"msg"`
	Result struct {
		Company struct {
			ID string `json:"id"`
		} `json:"company"`
	} `json:"result"`
}

type branchEnvelope struct {
	Msg     string `json:"msg"`
	Message string `json:"message,omitempty"`
}
