package shared

// SyncWarning describes a derived-record operation that failed or matched an
// unexpected number of rows while the primary mutation succeeded.
type SyncWarning struct {
	Record  string `json:"record"`  // which derived record: "production", "transport"
	Op      string `json:"op"`      // "update" or "delete"
	Message string `json:"message"`
}

// SyncReport is the outcome of a mutation that also touches derived records.
// The primary mutation either succeeded or the whole call errored; sibling
// failures never fail the call and are reported here so callers can choose to
// surface or ignore them.
type SyncReport struct {
	PrimaryOK bool          `json:"primary_ok"`
	Warnings  []SyncWarning `json:"warnings,omitempty"`
}

// Warn appends a warning to the report
func (r *SyncReport) Warn(record, op, message string) {
	r.Warnings = append(r.Warnings, SyncWarning{Record: record, Op: op, Message: message})
}

// Clean reports whether the primary succeeded with no sibling warnings
func (r *SyncReport) Clean() bool {
	return r.PrimaryOK && len(r.Warnings) == 0
}
