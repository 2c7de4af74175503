package audit

import "strings"

// Action is the closed set of operation kinds an activity log record can carry.
type Action string

const (
	// Core CRUD operations.
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionView     Action = "view"
	ActionNoChange Action = "no_change"

	// Authentication.
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"

	// File operations.
	ActionUpload   Action = "upload"
	ActionDownload Action = "download"

	// Status changes.
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
	ActionPublish    Action = "publish"
	ActionUnpublish  Action = "unpublish"

	// Approval workflow.
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionSubmit  Action = "submit"

	// Communication.
	ActionSend    Action = "send"
	ActionReceive Action = "receive"

	// Other common actions.
	ActionExport Action = "export"
	ActionImport Action = "import"
	ActionSearch Action = "search"
	ActionFilter Action = "filter"
)

var knownActions = map[Action]struct{}{
	ActionCreate: {}, ActionUpdate: {}, ActionDelete: {}, ActionView: {}, ActionNoChange: {},
	ActionLogin: {}, ActionLogout: {},
	ActionUpload: {}, ActionDownload: {},
	ActionActivate: {}, ActionDeactivate: {}, ActionPublish: {}, ActionUnpublish: {},
	ActionApprove: {}, ActionReject: {}, ActionSubmit: {},
	ActionSend: {}, ActionReceive: {},
	ActionExport: {}, ActionImport: {}, ActionSearch: {}, ActionFilter: {},
}

// Valid reports whether the action is a recognised enumerant.
func (a Action) Valid() bool {
	_, ok := knownActions[a]
	return ok
}

func (a Action) String() string {
	return string(a)
}

var actionVerbs = map[Action]string{
	ActionCreate: "Created",
	ActionUpdate: "Updated",
	ActionDelete: "Deleted",
	ActionView:   "Viewed",
	ActionLogin:  "Logged in",
	ActionLogout: "Logged out",
}

// Verb returns the past-tense verb used in auto-generated descriptions. Actions
// without a dedicated verb fall back to their title-cased name.
func (a Action) Verb() string {
	if verb, ok := actionVerbs[a]; ok {
		return verb
	}
	value := strings.ReplaceAll(string(a), "_", " ")
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
