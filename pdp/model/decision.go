package model

// Decision is the final access outcome for one request. Deny carries no
// status code of its own: the response layer picks 401 or 403 from the
// presence of identity evidence, without feeding that back into the
// decision logic.
type Decision struct {
	Allowed bool        `json:"allowed"`
	Public  bool        `json:"public"`
	Site    SiteContext `json:"site"`
	Reason  string      `json:"reason,omitempty"`
}

// Allow/deny reasons recorded for the audit trail.
const (
	ReasonPublic           = "no protection group applies"
	ReasonCommunity        = "entire-community group, authenticated principal"
	ReasonNoPrincipal      = "entire-community group, no principal"
	ReasonRuleNotFound     = "no rule for protection group"
	ReasonStoreUnavailable = "rule store unavailable"
	ReasonPolicyAllowed    = "allowed by group rule"
	ReasonPolicyDenied     = "denied by group rule"
)
