package models

// PlanStatus is the lifecycle status recorded in a plan document.
type PlanStatus string

const (
	PlanPending         PlanStatus = "pending"
	PlanActive          PlanStatus = "active"
	PlanPendingApproval PlanStatus = "pending_approval"
)

// Plan is the generated record of the decision taken for one item.
// Plans are historical: they are written once and never relocated.
type Plan struct {
	Filename         string     `json:"filename"`
	SourceFile       string     `json:"source_file"`
	Subject          string     `json:"subject"`
	Priority         Priority   `json:"priority"`
	Created          string     `json:"created"`
	Status           PlanStatus `json:"status"`
	RequiresApproval bool       `json:"requires_approval"`
}
