package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/triagevault/internal/vault"
)

// Dashboard panel indices.
const (
	panelQueue = iota
	panelMetrics
	panelAlerts
	panelActivity
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	folderCounts map[string]int
	metricsData  *metricsSnapshot
	alerts       []alertSnapshot
	activity     []string

	// State.
	loading bool
	err     error
}

type metricsSnapshot struct {
	needsAction     int
	pendingApproval int
	doneToday       int
	activePlans     int
	mtdRevenue      string
	monthlyTarget   string
	agentHealth     string
}

type alertSnapshot struct {
	severity string
	message  string
	time     string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	folderCounts map[string]int
	metrics      *metricsSnapshot
	alerts       []alertSnapshot
	activity     []string
	err          error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	folderNeedsAction = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	folderInProgress  = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	folderApproval    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	folderDone        = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	folderRejected    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	folderNeutral     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	severityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	severityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// queueFolders are the state folders shown in the queue panel, in
// lifecycle order.
var queueFolders = []string{
	vault.FolderNeedsAction,
	vault.FolderInProgress,
	vault.FolderPendingApproval,
	vault.FolderApproved,
	vault.FolderRejected,
	vault.FolderDone,
}

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel:  panelQueue,
		loading:      true,
		folderCounts: make(map[string]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.folderCounts = msg.folderCounts
		m.metricsData = msg.metrics
		m.alerts = msg.alerts
		m.activity = msg.activity
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Triage Vault Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	queuePanel := m.renderQueuePanel()
	metricsPanel := m.renderMetricsPanel()
	alertsPanel := m.renderAlertsPanel()
	activityPanel := m.renderActivityPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Two columns of two panels each.
		colWidth := availableWidth / 2
		queuePanel = m.applyPanelStyle(panelQueue, queuePanel, colWidth-4)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, colWidth-4)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, colWidth-4)
		activityPanel = m.applyPanelStyle(panelActivity, activityPanel, colWidth-4)
		left := lipgloss.JoinVertical(lipgloss.Left, queuePanel, alertsPanel)
		right := lipgloss.JoinVertical(lipgloss.Left, metricsPanel, activityPanel)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		queuePanel = m.applyPanelStyle(panelQueue, queuePanel, panelWidth)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, panelWidth)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, panelWidth)
		activityPanel = m.applyPanelStyle(panelActivity, activityPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, queuePanel, metricsPanel, alertsPanel, activityPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderQueuePanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Queue"))
	b.WriteString("\n")

	total := 0
	for _, folder := range queueFolders {
		count := m.folderCounts[folder]
		total += count
		label := fmt.Sprintf("  %-18s %d", folder, count)
		b.WriteString(styleForFolder(folder).Render(label))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d", total))

	return b.String()
}

func (m dashboardModel) renderMetricsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Metrics"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	b.WriteString(fmt.Sprintf("  %-18s %d\n", "Pending", md.needsAction))
	b.WriteString(fmt.Sprintf("  %-18s %d\n", "Awaiting approval", md.pendingApproval))
	b.WriteString(fmt.Sprintf("  %-18s %d\n", "Done today", md.doneToday))
	b.WriteString(fmt.Sprintf("  %-18s %d\n", "Active plans", md.activePlans))
	b.WriteString(fmt.Sprintf("  %-18s %s\n", "MTD revenue", md.mtdRevenue))
	b.WriteString(fmt.Sprintf("  %-18s %s\n", "Monthly target", md.monthlyTarget))
	b.WriteString(fmt.Sprintf("  %-18s %s\n", "Agent health", md.agentHealth))

	return b.String()
}

func (m dashboardModel) renderAlertsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Alerts"))
	b.WriteString("\n")

	if len(m.alerts) == 0 {
		b.WriteString("  No active alerts.")
		return b.String()
	}

	for _, a := range m.alerts {
		sev := styleForSeverity(a.severity).Render(fmt.Sprintf("[%s]", strings.ToUpper(a.severity)))
		b.WriteString(fmt.Sprintf("  %s %s\n", sev, a.message))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d alert(s)", len(m.alerts)))

	return b.String()
}

func (m dashboardModel) renderActivityPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Recent Activity"))
	b.WriteString("\n")

	if len(m.activity) == 0 {
		b.WriteString("  No activity yet.")
		return b.String()
	}

	for _, entry := range m.activity {
		b.WriteString(fmt.Sprintf("  %s\n", entry))
	}

	return b.String()
}

func styleForFolder(folder string) lipgloss.Style {
	switch folder {
	case vault.FolderNeedsAction:
		return folderNeedsAction
	case vault.FolderInProgress:
		return folderInProgress
	case vault.FolderPendingApproval:
		return folderApproval
	case vault.FolderDone, vault.FolderApproved:
		return folderDone
	case vault.FolderRejected:
		return folderRejected
	default:
		return folderNeutral
	}
}

func styleForSeverity(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	case "low":
		return severityLow
	default:
		return lipgloss.NewStyle()
	}
}

func loadData() tea.Msg {
	result := dataLoadedMsg{
		folderCounts: make(map[string]int),
	}

	if Vault != nil {
		for _, folder := range queueFolders {
			result.folderCounts[folder] = Vault.CountMarkdown(folder)
		}
	}

	if Metrics != nil {
		metrics, err := Metrics.Compute()
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.metrics = &metricsSnapshot{
			needsAction:     metrics.NeedsAction,
			pendingApproval: metrics.PendingApproval,
			doneToday:       metrics.DoneToday,
			activePlans:     metrics.ActivePlans,
			mtdRevenue:      metrics.MTDRevenue,
			monthlyTarget:   metrics.MonthlyTarget,
			agentHealth:     metrics.AgentHealth,
		}
		result.activity = metrics.RecentActivity
	}

	if AlertEngine != nil {
		alerts, err := AlertEngine.Evaluate()
		if err != nil {
			result.err = fmt.Errorf("loading alerts: %w", err)
			return result
		}
		result.alerts = make([]alertSnapshot, 0, len(alerts))

		// Sort alerts by severity: high first, then medium, then low.
		sort.Slice(alerts, func(i, j int) bool {
			return severityRank(string(alerts[i].Severity)) < severityRank(string(alerts[j].Severity))
		})

		for _, a := range alerts {
			result.alerts = append(result.alerts, alertSnapshot{
				severity: string(a.Severity),
				message:  a.Message,
				time:     a.TriggeredAt.Format("2006-01-02 15:04 UTC"),
			})
		}
	}

	return result
}

func severityRank(s string) int {
	switch s {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for queue metrics and alerts",
	Long: `Launch an interactive terminal dashboard showing folder counts,
metrics, alerts, and recent activity in a live view.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Metrics == nil {
			return fmt.Errorf("metrics aggregator not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
