package models

// Metrics is the dashboard-facing snapshot derived from current vault
// folder contents. It carries no cached state; every field is recomputed
// on demand.
type Metrics struct {
	NeedsAction     int      `json:"needs_action"`
	PendingApproval int      `json:"pending_approval"`
	DoneToday       int      `json:"done_today"`
	ActivePlans     int      `json:"active_plans"`
	MTDRevenue      string   `json:"mtd_revenue"`
	MonthlyTarget   string   `json:"monthly_target"`
	Alerts          []string `json:"alerts"`
	RecentActivity  []string `json:"recent_activity"`
	AgentHealth     string   `json:"agent_health"`
}
