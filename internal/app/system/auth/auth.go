package auth

// Terminology: Identity
//   - UserID / userID / user_id: The ERP API's identifier for a user record
//   - Bearer token: opaque credential returned by login/registration and
//     attached to authorized API calls
//
// The session cookie is the durable client-side store for the bearer
// token and the in-progress onboarding state (the analog of the original
// front end's single localStorage key). Identity and token are written
// together and cleared together; there is no partial identity.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & errors                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey     = "is_authenticated"
	userIDKey     = "user_id"
	firstNameKey  = "first_name"
	lastNameKey   = "last_name"
	emailKey      = "email"
	tokenKey      = "bearer_token"
	companyIDKey  = "company_id"
	branchDoneKey = "branch_done"
)

// ErrNoIdentity is returned when an onboarding mutation is attempted on a
// session that holds no authenticated identity.
var ErrNoIdentity = errors.New("auth: session has no identity")

// ErrPartialIdentity is returned when SetIdentity is called with an empty
// user id or token. Identity and token are all-or-nothing.
var ErrPartialIdentity = errors.New("auth: user id and token must both be set")

// Policy decides what happens to the local session when the remote API
// rejects the bearer token (expired or invalid).
type Policy string

const (
	// PolicyKeep leaves the session in place; the user sees the error and
	// the token is retried on the next submit. This matches the original
	// front end's behavior.
	PolicyKeep Policy = "keep"
	// PolicyLogout clears the session so the user is sent back to login.
	PolicyLogout Policy = "logout"
)

// ParsePolicy maps a config string to a Policy, defaulting to PolicyKeep.
func ParsePolicy(s string) Policy {
	if strings.EqualFold(strings.TrimSpace(s), string(PolicyLogout)) {
		return PolicyLogout
	}
	return PolicyKeep
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionUser                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Token      string
	CompanyID  string
	BranchDone bool
}

// Name returns the display name for the user.
func (u *SessionUser) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager wraps the cookie store with the typed session operations
// the screen handlers and router guards use. Only SetIdentity and Clear
// may change authentication state.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	policy Policy
	log    *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true), cookies are Secure + SameSite=None so they
// survive cross-site redirects over HTTPS. In local dev over
// http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, policy Policy, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.String("auth_failure_policy", string(policy)))

	return &SessionManager{
		store:  store,
		name:   sessionName,
		policy: policy,
		log:    logger,
	}, nil
}

// GetSession returns the request's session, decoding the cookie if present.
// A decode error still yields a usable fresh session.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// logSessionErr records a failed session load. A cookie that fails to
// decode (tampered, truncated, or signed with an old key) is routine
// and logged at Warn; any other store error is not.
func (sm *SessionManager) logSessionErr(op string, err error) {
	if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
		sm.log.Warn("session cookie invalid, using fresh session",
			zap.String("op", op), zap.Error(err))
		return
	}
	sm.log.Error("session store error, using fresh session",
		zap.String("op", op), zap.Error(err))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Typed session mutations                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// SetIdentity records the authenticated identity and bearer token in the
// session, replacing any in-progress onboarding state from a previous
// identity. Both login and registration go through here; registration
// implicitly logs the new user in.
func (sm *SessionManager) SetIdentity(w http.ResponseWriter, r *http.Request, u SessionUser, token string) error {
	if u.ID == "" || token == "" {
		return ErrPartialIdentity
	}

	sess, err := sm.GetSession(r)
	if err != nil {
		sm.logSessionErr("set identity", err)
	}

	// A new identity starts onboarding from scratch.
	delete(sess.Values, companyIDKey)
	delete(sess.Values, branchDoneKey)

	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[firstNameKey] = u.FirstName
	sess.Values[lastNameKey] = u.LastName
	sess.Values[emailKey] = u.Email
	sess.Values[tokenKey] = token

	return sess.Save(r, w)
}

// SetCompanyID records the organization id returned by company
// registration. It fails with ErrNoIdentity when the session is not
// authenticated: identity precedes organization.
func (sm *SessionManager) SetCompanyID(w http.ResponseWriter, r *http.Request, id string) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.logSessionErr("set company id", err)
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return ErrNoIdentity
	}
	if id == "" {
		return errors.New("auth: empty company id")
	}

	sess.Values[companyIDKey] = id
	return sess.Save(r, w)
}

// MarkBranchRegistered records that branch registration succeeded for
// this session, completing onboarding.
func (sm *SessionManager) MarkBranchRegistered(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.logSessionErr("mark branch registered", err)
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return ErrNoIdentity
	}

	sess.Values[branchDoneKey] = true
	return sess.Save(r, w)
}

// Clear expires the session cookie, discarding identity, token, and
// onboarding progress unconditionally.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.logSessionErr("clear", err)
	}

	// Ensure the deletion-cookie matches the original store settings.
	if opts := sm.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1 // delete immediately

	return sess.Save(r, w)
}

// HandleRemoteAuthFailure applies the configured policy after the remote
// API rejected the session's bearer token. It reports whether the session
// was cleared (callers should then redirect to login).
func (sm *SessionManager) HandleRemoteAuthFailure(w http.ResponseWriter, r *http.Request) bool {
	if sm.policy != PolicyLogout {
		return false
	}
	if err := sm.Clear(w, r); err != nil {
		sm.log.Error("clear session after auth failure", zap.Error(err))
	}
	return true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser injects the user into context if they are logged in.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			// An undecodable cookie is an anonymous visitor, not an error
			// page; the fresh session below carries no identity.
			sm.logSessionErr("load session user", err)
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:        getString(sess, userIDKey),
				FirstName: getString(sess, firstNameKey),
				LastName:  getString(sess, lastNameKey),
				Email:     getString(sess, emailKey),
				Token:     getString(sess, tokenKey),
				CompanyID: getString(sess, companyIDKey),
			}
			u.BranchDone, _ = sess.Values[branchDoneKey].(bool)

			// No partial identity: a session with a missing token or id
			// is treated as unauthenticated.
			if u.ID != "" && u.Token != "" {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTML: 303 redirect to /?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			ret := url.QueryEscape(currentURI(r))
			http.Redirect(w, r, "/?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// WithTestUser injects a user into the request context.
// Only for use in handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || accept == ""
}

func currentURI(r *http.Request) string {
	// Preserve path + query as a return param.
	u := *r.URL
	return u.RequestURI()
}
