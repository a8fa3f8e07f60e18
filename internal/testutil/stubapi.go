package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/gateway"
)

// StubAPI is an in-process stand-in for the remote ERP API. Each
// endpoint succeeds by default; tests flip the Fail* switches or swap
// in a custom handler to exercise failure paths.
type StubAPI struct {
	Server *httptest.Server

	UserID    string
	Token     string
	CompanyID string

	FailLogin    bool
	FailRegister bool
	FailCompany  bool

	// BranchMsg is the msg field returned by the branch endpoint.
	// Set to something other than "success" to simulate a 200
	// response with a failure body.
	BranchMsg string

	// LastBranchPayload captures what the branch endpoint received.
	LastBranchPayload map[string]any
}

// NewStubAPI starts a stub API server and registers its shutdown with
// the test cleanup.
func NewStubAPI(t *testing.T) *StubAPI {
	t.Helper()

	s := &StubAPI{
		UserID:    "u1",
		Token:     "t1",
		CompanyID: "c1",
		BranchMsg: "success",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if s.FailLogin {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		s.writeAuth(w)
	})
	mux.HandleFunc("POST /api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		if s.FailRegister {
			http.Error(w, "email taken", http.StatusUnprocessableEntity)
			return
		}
		s.writeAuth(w)
	})
	mux.HandleFunc("POST /api/v1/company/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		if s.FailCompany {
			http.Error(w, "rejected", http.StatusUnprocessableEntity)
			return
		}
		fmt.Fprintf(w, `{"msg":"success","result":{"company":{"id":%q}}}`, s.CompanyID)
	})
	mux.HandleFunc("POST /api/v1/branches", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		s.LastBranchPayload = payload
		fmt.Fprintf(w, `{"msg":%q,"message":"stub"}`, s.BranchMsg)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Server.Close)
	return s
}

// Client returns a gateway client pointed at the stub.
func (s *StubAPI) Client() *gateway.Client {
	return gateway.NewClient(s.Server.URL, 5*time.Second, zap.NewNop())
}

func (s *StubAPI) writeAuth(w http.ResponseWriter) {
	fmt.Fprintf(w,
		`{"result":{"user":{"id":%q,"first_name":"Test","last_name":"User","email":"user@test.com"},"token":%q}}`,
		s.UserID, s.Token)
}
