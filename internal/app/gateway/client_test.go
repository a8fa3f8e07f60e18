package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/gateway"
)

func newClient(t *testing.T, handler http.Handler) (*gateway.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gateway.NewClient(srv.URL, 5*time.Second, zap.NewNop()), srv
}

func TestLogin_Success(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "a@b.com" || body["password"] != "longenough1" {
			t.Errorf("unexpected credentials: %v", body)
		}

		io.WriteString(w, `{"result":{"user":{"id":"u1","first_name":"Ada","last_name":"Byron","email":"a@b.com"},"token":"t1"}}`)
	}))

	res, err := client.Login(context.Background(), "a@b.com", "longenough1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.User.ID != "u1" || res.Token != "t1" {
		t.Errorf("Login() = %+v", res)
	}
	if res.User.FirstName != "Ada" {
		t.Errorf("FirstName = %q", res.User.FirstName)
	}
}

func TestLogin_Rejected(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "a@b.com", "wrongpassword")
	if !errors.Is(err, gateway.ErrAuth) {
		t.Errorf("Login() error = %v, want ErrAuth", err)
	}
}

func TestLogin_MissingToken(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"result":{"user":{"id":"u1"},"token":""}}`)
	}))

	_, err := client.Login(context.Background(), "a@b.com", "longenough1")
	if !errors.Is(err, gateway.ErrAuth) {
		t.Errorf("Login() error = %v, want ErrAuth", err)
	}
}

func TestLogin_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := gateway.NewClient(srv.URL, time.Second, zap.NewNop())
	srv.Close()

	_, err := client.Login(context.Background(), "a@b.com", "longenough1")
	if !errors.Is(err, gateway.ErrNetwork) {
		t.Errorf("Login() error = %v, want ErrNetwork", err)
	}
}

func TestRegisterUser_Success(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/register" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart form: %v", err)
		}
		if got := r.FormValue("first_name"); got != "Ada" {
			t.Errorf("first_name = %q", got)
		}
		if got := r.FormValue("password_confirmation"); got != "longenough1" {
			t.Errorf("password_confirmation = %q", got)
		}
		if _, ok := r.MultipartForm.Value["gender"]; ok {
			t.Error("empty gender should be omitted from the form")
		}

		io.WriteString(w, `{"result":{"user":{"id":"u2","first_name":"Ada","last_name":"Byron","email":"a@b.com"},"token":"t2"}}`)
	}))

	res, err := client.RegisterUser(context.Background(), gateway.RegistrationForm{
		FirstName:            "Ada",
		LastName:             "Byron",
		Email:                "a@b.com",
		Password:             "longenough1",
		PasswordConfirmation: "longenough1",
	})
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	if res.User.ID != "u2" || res.Token != "t2" {
		t.Errorf("RegisterUser() = %+v", res)
	}
}

func TestRegisterUser_Rejected(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email taken", http.StatusUnprocessableEntity)
	}))

	_, err := client.RegisterUser(context.Background(), gateway.RegistrationForm{
		FirstName: "Ada", LastName: "Byron", Email: "a@b.com",
		Password: "longenough1", PasswordConfirmation: "longenough1",
	})
	if !errors.Is(err, gateway.ErrRegistration) {
		t.Errorf("RegisterUser() error = %v, want ErrRegistration", err)
	}
}

func TestRegisterCompany_Success(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/company/register" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer t1" {
			t.Errorf("Authorization = %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["company_name"] != "Acme" || body["user_id"] != "u1" {
			t.Errorf("unexpected body: %v", body)
		}

		io.WriteString(w, `{"msg":"success","result":{"company":{"id":"c1"}}}`)
	}))

	id, err := client.RegisterCompany(context.Background(), "Acme", "u1", "t1")
	if err != nil {
		t.Fatalf("RegisterCompany() error = %v", err)
	}
	if id != "c1" {
		t.Errorf("company id = %q, want c1", id)
	}
}

func TestRegisterCompany_MissingToken(t *testing.T) {
	called := false
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.RegisterCompany(context.Background(), "Acme", "u1", "")
	if !errors.Is(err, gateway.ErrAuth) {
		t.Errorf("RegisterCompany() error = %v, want ErrAuth", err)
	}
	if called {
		t.Error("request should not reach the API without a token")
	}
}

func TestRegisterCompany_TokenRejected(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	}))

	_, err := client.RegisterCompany(context.Background(), "Acme", "u1", "stale")
	if !errors.Is(err, gateway.ErrAuth) {
		t.Errorf("RegisterCompany() error = %v, want ErrAuth", err)
	}
}

func TestRegisterCompany_FailureBody(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"msg":"failure"}`)
	}))

	_, err := client.RegisterCompany(context.Background(), "Acme", "u1", "t1")
	if !errors.Is(err, gateway.ErrRegistration) {
		t.Errorf("RegisterCompany() error = %v, want ErrRegistration", err)
	}
}

func TestRegisterCompany_MissingID(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"msg":"success","result":{}}`)
	}))

	_, err := client.RegisterCompany(context.Background(), "Acme", "u1", "t1")
	if !errors.Is(err, gateway.ErrRegistration) {
		t.Errorf("RegisterCompany() error = %v, want ErrRegistration", err)
	}
}

func TestRegisterBranch_Success(t *testing.T) {
	var got gateway.BranchRegistration
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/branches" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		io.WriteString(w, `{"msg":"success"}`)
	}))

	err := client.RegisterBranch(context.Background(), gateway.BranchRegistration{
		CompanyID:      "c1",
		Name:           "Headquarters",
		Industry:       "technology",
		State:          "california",
		BuildingNumber: "Unit 101",
		Street:         "123 Main Street",
		ZipCode:        "10001",
		District:       "Downtown",
		City:           "Springfield",
		Currency:       "usd",
		Language:       "english",
		TimeZone:       "gmt-5",
	}, "t1")
	if err != nil {
		t.Fatalf("RegisterBranch() error = %v", err)
	}
	if got.CompanyID != "c1" || got.Name != "Headquarters" {
		t.Errorf("payload = %+v", got)
	}
}

func TestRegisterBranch_StaleVATFieldsCleared(t *testing.T) {
	// Values captured while the VAT toggle was on must not survive a
	// toggle-off submit.
	var raw map[string]any
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		io.WriteString(w, `{"msg":"success"}`)
	}))

	err := client.RegisterBranch(context.Background(), gateway.BranchRegistration{
		CompanyID:             "c1",
		Name:                  "Headquarters",
		IsVATRegistered:       false,
		TaxRegistrationNumber: "TAX-123",
		VATRegisteredNumber:   "VAT-456",
	}, "t1")
	if err != nil {
		t.Fatalf("RegisterBranch() error = %v", err)
	}
	if raw["tax_registration_number"] != "" || raw["vat_registered_number"] != "" {
		t.Errorf("stale VAT fields reached the wire: %v", raw)
	}
	if raw["is_vat_registered"] != false {
		t.Errorf("is_vat_registered = %v", raw["is_vat_registered"])
	}
}

func TestRegisterBranch_FailureBodyOn200(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"msg":"failure","message":"duplicate branch"}`)
	}))

	err := client.RegisterBranch(context.Background(), gateway.BranchRegistration{CompanyID: "c1", Name: "HQ"}, "t1")
	if !errors.Is(err, gateway.ErrBranchRegistration) {
		t.Errorf("RegisterBranch() error = %v, want ErrBranchRegistration", err)
	}
}

func TestRegisterBranch_ServerError(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	err := client.RegisterBranch(context.Background(), gateway.BranchRegistration{CompanyID: "c1", Name: "HQ"}, "t1")
	if !errors.Is(err, gateway.ErrBranchRegistration) {
		t.Errorf("RegisterBranch() error = %v, want ErrBranchRegistration", err)
	}
}
