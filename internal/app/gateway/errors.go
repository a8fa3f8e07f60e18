package gateway

import "errors"

/*──────────────────────────── error taxonomy ────────────────────────────*/

// Terminology:
//   auth failure      – the API refused credentials or a bearer token.
//   rejection         – the API accepted the request transport but refused
//                       the submitted data (signup or branch payload).
//   network failure   – the request never produced an HTTP response.
//
// Callers compare with errors.Is; every error returned by Client wraps
// exactly one of these sentinels.
var (
	// ErrAuth covers rejected logins and rejected or missing bearer
	// tokens on authorized calls.
	ErrAuth = errors.New("authentication rejected")

	// ErrRegistration covers a refused user signup or a refused
	// company registration.
	ErrRegistration = errors.New("registration rejected")

	// ErrBranchRegistration covers a refused branch payload, including
	// a 2xx response whose body lacks the success marker.
	ErrBranchRegistration = errors.New("branch registration rejected")

	// ErrNetwork covers transport failures where no HTTP response
	// arrived at all.
	ErrNetwork = errors.New("api unreachable")
)
