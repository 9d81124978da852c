package models

// ApprovalStatus is the informational status recorded in an approval
// document's frontmatter. Folder location is authoritative for
// lifecycle; this field is not rewritten on resolution.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Decision is a human resolution applied to a pending approval.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Approval is a generated record requesting human sign-off for one
// action item. It lives in Pending_Approval until resolved.
type Approval struct {
	ID         string   `json:"id"`
	Filename   string   `json:"filename"`
	Action     string   `json:"action"`
	SourceFile string   `json:"source_file"`
	Created    string   `json:"created"`
	Expires    string   `json:"expires"`
	Status     string   `json:"status"`
	Priority   Priority `json:"priority"`
	Subject    string   `json:"subject"`
	Reason     string   `json:"reason"`
}

// ResolveResult reports the outcome of an approve/reject operation,
// including the best-effort cascade onto the source item.
type ResolveResult struct {
	ApprovalFile string `json:"approval_file"`
	SourceFile   string `json:"source_file,omitempty"`
	SourceMoved  bool   `json:"source_moved"`
	// Warning is set when the approval resolved but the paired source
	// file was absent from its expected folder.
	Warning string `json:"warning,omitempty"`
}
