package audit

// ActorType classifies the party behind a logged action.
type ActorType string

const (
	ActorUser  ActorType = "user"
	ActorGuest ActorType = "guest"
)

const (
	// AnonymousGuestID is the final identifier fallback for guests that carry
	// no email, phone, session or client address.
	AnonymousGuestID = "anonymous_guest"
	// AnonymousGuestName is the display name for unidentified guests.
	AnonymousGuestName = "Anonymous Guest"
	// UnknownUserID covers authenticated principals missing both email and
	// username, so actor_identifier is never empty.
	UnknownUserID = "unknown_user"
)

// GuestHint is caller-supplied identification for anonymous visitors, for
// example fields from a submitted enquiry form.
type GuestHint struct {
	Name  string
	Email string
	Phone string

	// Free-form tracking context, stored in actor metadata when present.
	Device   string
	Browser  string
	Platform string
	Source   string
	Campaign string
	Locale   string
}

// ActorInfo is the normalised identity attached to an activity log record.
type ActorInfo struct {
	Type       ActorType
	UserID     *int64
	Identifier string
	Name       string
	Metadata   map[string]any
}

// ResolveActor normalises the acting party for a request. Authenticated
// principals resolve to a user actor; everything else resolves through the
// guest fallback chain. The result is a pure function of its inputs.
func ResolveActor(req Request, hint *GuestHint) ActorInfo {
	if req.Authenticated() {
		return resolveUser(req.Principal)
	}
	return resolveGuest(req, hint)
}

func resolveUser(p *Principal) ActorInfo {
	identifier := p.Email
	if identifier == "" {
		identifier = p.Username
	}
	if identifier == "" {
		identifier = UnknownUserID
	}

	name := p.FullName
	if name == "" {
		name = p.Name
	}
	if name == "" {
		name = p.Username
	}

	userID := p.ID
	var ref *int64
	if userID > 0 {
		ref = &userID
	}

	return ActorInfo{
		Type:       ActorUser,
		UserID:     ref,
		Identifier: identifier,
		Name:       name,
	}
}

// resolveGuest picks the identifier by fixed priority: email, phone, session,
// client IP, then the anonymous sentinel. Downstream deduplication depends on
// this exact order.
func resolveGuest(req Request, hint *GuestHint) ActorInfo {
	var h GuestHint
	if hint != nil {
		h = *hint
	}

	identifier := firstNonEmpty(h.Email, h.Phone, req.SessionID, req.ClientIP(), AnonymousGuestID)

	name := h.Name
	if name == "" {
		name = AnonymousGuestName
	}

	metadata := map[string]any{}
	putNonEmpty(metadata, "email", h.Email)
	putNonEmpty(metadata, "phone", h.Phone)
	putNonEmpty(metadata, "session_id", req.SessionID)
	putNonEmpty(metadata, "device", h.Device)
	putNonEmpty(metadata, "browser", h.Browser)
	putNonEmpty(metadata, "platform", h.Platform)
	putNonEmpty(metadata, "source", h.Source)
	putNonEmpty(metadata, "campaign", h.Campaign)
	putNonEmpty(metadata, "referrer", req.Referrer)
	putNonEmpty(metadata, "locale", h.Locale)
	if len(metadata) == 0 {
		metadata = nil
	}

	return ActorInfo{
		Type:       ActorGuest,
		Identifier: identifier,
		Name:       name,
		Metadata:   metadata,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func putNonEmpty(target map[string]any, key, value string) {
	if value != "" {
		target[key] = value
	}
}
