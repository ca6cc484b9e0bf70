package instadb

import (
	"github.com/autom8ter/instadb/errors"
	"github.com/tidwall/sjson"
)

// Request header names. Authorization and App-Id are reserved for the auth
// context and cannot be overridden per request.
const (
	HeaderAuthorization = "Authorization"
	HeaderAppID         = "App-Id"
	HeaderImpersonate   = "X-Instant-As"
	HeaderDryRun        = "X-Instant-Dry-Run"
	HeaderRequestID     = "X-Request-Id"
)

// Impersonation attaches an end-user or guest identity to an otherwise
// admin-credentialed request. Exactly one mode is active per descriptor.
type Impersonation struct {
	email string
	token string
	guest bool
}

// NewImpersonation builds an impersonation descriptor - exactly one of email,
// token, or guest may be set
func NewImpersonation(email, token string, guest bool) (Impersonation, error) {
	var set int
	if email != "" {
		set++
	}
	if token != "" {
		set++
	}
	if guest {
		set++
	}
	if set != 1 {
		return Impersonation{}, errors.New(errors.Validation, "impersonation: exactly one of email, token, or guest must be set")
	}
	return Impersonation{email: email, token: token, guest: guest}, nil
}

// ImpersonateEmail impersonates the user with the given email
func ImpersonateEmail(email string) (Impersonation, error) {
	return NewImpersonation(email, "", false)
}

// ImpersonateToken impersonates the user holding the given refresh token
func ImpersonateToken(token string) (Impersonation, error) {
	return NewImpersonation("", token, false)
}

// ImpersonateGuest impersonates an unauthenticated guest
func ImpersonateGuest() Impersonation {
	return Impersonation{guest: true}
}

// headerValue encodes the descriptor as the small json object carried on the
// impersonation header
func (i Impersonation) headerValue() string {
	switch {
	case i.email != "":
		raw, _ := sjson.Set("{}", "email", i.email)
		return raw
	case i.token != "":
		raw, _ := sjson.Set("{}", "token", i.token)
		return raw
	default:
		raw, _ := sjson.Set("{}", "guest", true)
		return raw
	}
}

// AuthContext is the immutable credential carrier for outbound requests. The
// admin token is the base credential and stays authoritative server-side;
// impersonation is layered on as an additional header and never replaces it.
type AuthContext struct {
	appID      string
	adminToken string
	imp        *Impersonation
}

// NewAuthContext returns an admin-mode auth context
func NewAuthContext(appID, adminToken string) (AuthContext, error) {
	if appID == "" {
		return AuthContext{}, errors.New(errors.Validation, "auth: empty app id")
	}
	if adminToken == "" {
		return AuthContext{}, errors.New(errors.Validation, "auth: empty admin token")
	}
	return AuthContext{appID: appID, adminToken: adminToken}, nil
}

// WithImpersonation derives a new auth context carrying the given identity.
// The receiver is untouched - derived contexts share app id and admin token.
func (a AuthContext) WithImpersonation(imp Impersonation) AuthContext {
	a.imp = &imp
	return a
}

// Impersonated returns true if an impersonation mode is active
func (a AuthContext) Impersonated() bool {
	return a.imp != nil
}

// AppID returns the app id the context is bound to
func (a AuthContext) AppID() string {
	return a.appID
}

// Headers derives the credential headers for one request. Admin-mode requests
// carry the bearer token only; impersonated requests additionally carry the
// impersonation header.
func (a AuthContext) Headers() map[string]string {
	headers := map[string]string{
		HeaderAuthorization: "Bearer " + a.adminToken,
		HeaderAppID:         a.appID,
	}
	if a.imp != nil {
		headers[HeaderImpersonate] = a.imp.headerValue()
	}
	return headers
}
