package vault

import (
	"strings"
	"time"
)

// timestampFormat matches the human-readable timestamps written into
// vault documents.
const timestampFormat = "2006-01-02 15:04:05 UTC"

// Timestamp returns the current UTC time in the vault document format.
func Timestamp() string {
	return time.Now().UTC().Format(timestampFormat)
}

const dashboardTemplate = `---
type: dashboard
last_updated: {{TIMESTAMP}}
---

# Triage Dashboard - {{BUSINESS}}

## Status

| Metric | Value |
|--------|-------|
| Last updated | {{TIMESTAMP}} |
| Pending actions | 0 |
| Awaiting approval | 0 |
| Completed today | 0 |
| MTD Revenue | $0.00 |
| Agent health | Online |

## Alerts

No alerts. All clear.

## Recent Activity

No activity yet.
`

const handbookTemplate = `---
type: handbook
owner: {{OWNER}}
business: {{BUSINESS}}
last_updated: {{TIMESTAMP}}
---

# Company Handbook - {{BUSINESS}}

This handbook defines how the triage assistant operates on behalf of {{OWNER}}.

---

## 1. Identity

- **Owner**: {{OWNER}}
- **Business**: {{BUSINESS}}
- **Role**: Autonomous inbox triage assistant
- **Created**: {{TIMESTAMP}}

---

## 2. Communication Rules

- Always reply professionally and courteously.
- Use the business name in email signatures.
- Do not share internal data with external contacts.
- WhatsApp messages should be brief but professional.

---

## 3. Financial Rules

- **Auto-approve threshold**: $100.00
- **Requires owner approval**: Any amount above $100.00
- Invoices above threshold must be routed to Pending_Approval.
- Always log financial transactions in the Accounting folder.

---

## 4. Autonomy Thresholds

| Action | Auto-Approve | Requires Approval |
|--------|-------------|-------------------|
| Reply to email | Yes | No |
| Schedule meeting | Yes | No |
| Send payment | No | Yes |
| Delete files | No | Yes |
| Change handbook | No | Yes |

---

## 5. Priority Keywords

The following keywords trigger high-priority routing:

- **Urgent**: urgent, asap, immediately, emergency
- **Financial**: invoice, payment, overdue, refund
- **Complaint**: complaint, unhappy, cancel

---

## 6. Business Hours

- **Monday - Friday**: 9:00 AM - 6:00 PM
- **Saturday**: 10:00 AM - 2:00 PM
- **Sunday**: Closed
- **After-hours behavior**: Queue non-urgent items, escalate urgent items.

---

## 7. Privacy Rules

- Never share customer personal data externally.
- Redact sensitive information from logs.
- All data stays within the vault unless explicitly authorized.

---

## 8. Escalation Path

When uncertain or when an error occurs:

1. **Check handbook** for relevant rules.
2. **Log the issue** in the Logs folder with full details.
3. **Create approval request** if action requires owner sign-off.
4. **Do not proceed** with the action until approved.
`

const goalsTemplate = `---
type: goals
owner: {{OWNER}}
business: {{BUSINESS}}
last_updated: {{TIMESTAMP}}
---

# Business Goals - {{BUSINESS}}

## Revenue Targets

| Period | Target | Actual | Status |
|--------|--------|--------|--------|
| This Month | $5,000.00 | $0.00 | In Progress |
| This Quarter | $15,000.00 | $0.00 | In Progress |
| This Year | $60,000.00 | $0.00 | In Progress |

## Active Goals

1. **Set up triage operations** - Configure all vault folders and routing rules.
2. **Process first batch of emails** - Demonstrate processing and routing.
3. **Establish approval workflow** - Route high-value actions through sign-off.

## Notes

Initial setup. Update this file as business goals evolve.
`

const gitignoreTemplate = `# OS files
.DS_Store
Thumbs.db

# Editor files
*.swp
*.swo
*~

# Sensitive data
*.env
credentials.*
secrets.*

# Temporary files
*.tmp
*.bak
`

// renderTemplate substitutes the owner, business, and timestamp
// placeholders in a core file template.
func renderTemplate(tmpl, owner, business string) string {
	ts := Timestamp()
	out := strings.ReplaceAll(tmpl, "{{OWNER}}", owner)
	out = strings.ReplaceAll(out, "{{BUSINESS}}", business)
	return strings.ReplaceAll(out, "{{TIMESTAMP}}", ts)
}
