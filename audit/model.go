// audit/model.go
package audit

import "time"

type AuditLog struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	Principal   string    `json:"principal"`
	ClientIP    string    `json:"client_ip,omitempty"`
	Domain      string    `json:"domain"`
	Site        string    `json:"site,omitempty"`
	Group       string    `json:"group,omitempty"`
	Path        string    `json:"path"`
	Allowed     bool      `json:"allowed"`
	Public      bool      `json:"public"`
	Reason      string    `json:"reason,omitempty"`
	DerivedKey  string    `json:"derived_key,omitempty"`
	OriginalKey string    `json:"original_key,omitempty"`
}
