package models

// ItemType classifies the origin of an inbound action item.
type ItemType string

const (
	ItemEmail      ItemType = "email"
	ItemPayment    ItemType = "payment"
	ItemWhatsApp   ItemType = "whatsapp"
	ItemFileIntake ItemType = "file_intake"
	ItemUnknown    ItemType = "unknown"
)

// ParseItemType maps an arbitrary metadata value onto a known ItemType.
// Unrecognized values collapse to ItemUnknown.
func ParseItemType(s string) ItemType {
	switch ItemType(s) {
	case ItemEmail, ItemPayment, ItemWhatsApp, ItemFileIntake:
		return ItemType(s)
	default:
		return ItemUnknown
	}
}

// Priority represents the routing urgency of an item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Rank returns the sort position of a priority; high sorts first.
// Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// ItemState is the processing state of an action item. The state is
// inferred from folder membership at read time; folder placement is a
// projection of this enum, not a separate source of truth.
type ItemState string

const (
	StatePending          ItemState = "pending"
	StateAwaitingApproval ItemState = "awaiting_approval"
	StateDone             ItemState = "done"
	StateUnknown          ItemState = "unknown"
)

// ActionItem is one unit of inbound work parsed from a markdown document
// in the Needs_Action folder. Fields the engine branches on are typed;
// unrecognized metadata keys are preserved in Extra.
type ActionItem struct {
	ID       string            `json:"id"`
	Filename string            `json:"filename"`
	Type     ItemType          `json:"type"`
	Sender   string            `json:"sender"`
	Subject  string            `json:"subject"`
	Priority Priority          `json:"priority"`
	Received string            `json:"received"`
	Status   string            `json:"status"`
	Snippet  string            `json:"snippet,omitempty"`
	Body     string            `json:"-"`
	Extra    map[string]string `json:"-"`
}

// ProcessResult reports the outcome of a batch processing run.
type ProcessResult struct {
	Processed int      `json:"processed"`
	Actions   []string `json:"actions"`
}
