package audit

import "strings"

// Principal describes the authenticated party bound to a request, if any.
type Principal struct {
	ID       int64
	Email    string
	Username string
	FullName string
	Name     string
}

// Request carries the slice of HTTP request state the audit engine needs. It is
// assembled once per inbound request by middleware and passed down the call
// chain, so resolved values never outlive the request that produced them.
type Request struct {
	Principal    *Principal
	SessionID    string
	ForwardedFor string
	RemoteAddr   string
	UserAgent    string
	Referrer     string
}

// Authenticated reports whether the request carries an authenticated principal.
func (r Request) Authenticated() bool {
	return r.Principal != nil
}

// ClientIP returns the originating client address, preferring the first entry
// of X-Forwarded-For over the direct connection address.
func (r Request) ClientIP() string {
	if r.ForwardedFor != "" {
		first, _, _ := strings.Cut(r.ForwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return r.RemoteAddr
}
