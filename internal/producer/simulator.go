package producer

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valter-silva-au/triagevault/internal/document"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// emailTemplate is one entry in the simulator's template pool. Subject
// and body may contain {var} placeholders resolved per render.
type emailTemplate struct {
	sender   string
	subject  string
	body     string
	itemType models.ItemType
	priority models.Priority
	vars     map[string]func(r *rand.Rand) string
}

func randInt(r *rand.Rand, lo, hi int) string {
	return fmt.Sprintf("%d", lo+r.Intn(hi-lo+1))
}

func randAmount(r *rand.Rand, lo, hi int) string {
	return fmt.Sprintf("%d.00", lo+r.Intn(hi-lo+1))
}

func randChoice(r *rand.Rand, options ...string) string {
	return options[r.Intn(len(options))]
}

// emailTemplates is the fixed pool of realistic inbound emails used by
// batch simulation.
var emailTemplates = []emailTemplate{
	{
		sender:   "accounts@vendorsupply.com",
		subject:  "Invoice #{inv_num} - Amount Due ${amount}",
		body:     "Please find attached invoice #{inv_num} for ${amount}. Payment is due within 30 days. If you have any questions regarding this invoice, please contact our billing department.",
		itemType: models.ItemPayment,
		priority: models.PriorityNormal,
		vars: map[string]func(r *rand.Rand) string{
			"inv_num": func(r *rand.Rand) string { return randInt(r, 10000, 99999) },
			"amount":  func(r *rand.Rand) string { return randAmount(r, 50, 5000) },
		},
	},
	{
		sender:   "angry.customer@email.com",
		subject:  "Complaint: Terrible service experience",
		body:     "I am extremely unhappy with the service I received. My order was delayed by two weeks and nobody responded to my emails. I want a full refund or I will escalate this further. This is unacceptable.",
		itemType: models.ItemEmail,
		priority: models.PriorityHigh,
	},
	{
		sender:   "john.smith@partnercorp.com",
		subject:  "Meeting Request: Q{quarter} Partnership Review",
		body:     "Hi, I would like to schedule a meeting to discuss our partnership progress for Q{quarter}. Could we find a time next week? I have availability on Tuesday and Thursday afternoons.",
		itemType: models.ItemEmail,
		priority: models.PriorityNormal,
		vars: map[string]func(r *rand.Rand) string{
			"quarter": func(r *rand.Rand) string { return randInt(r, 1, 4) },
		},
	},
	{
		sender:   "payments@stripe.com",
		subject:  "Payment Confirmation - ${amount} received",
		body:     "We have successfully processed a payment of ${amount} from client #{client_id}. The funds will be available in your account within 2 business days. Transaction reference: TXN-{txn_ref}.",
		itemType: models.ItemPayment,
		priority: models.PriorityNormal,
		vars: map[string]func(r *rand.Rand) string{
			"amount":    func(r *rand.Rand) string { return randAmount(r, 100, 10000) },
			"client_id": func(r *rand.Rand) string { return randInt(r, 1000, 9999) },
			"txn_ref":   func(r *rand.Rand) string { return strings.ToUpper(uuid.New().String()[:8]) },
		},
	},
	{
		sender:   "dev.team@clientapp.io",
		subject:  "URGENT: Critical bug in production system",
		body:     "We have discovered a critical bug in the production deployment that is affecting all users. The checkout flow is broken and customers cannot complete purchases. This needs immediate attention. Emergency fix required ASAP.",
		itemType: models.ItemEmail,
		priority: models.PriorityHigh,
	},
	{
		sender:   "sarah.jones@newclient.com",
		subject:  "New Business Inquiry - {service} Services",
		body:     "Hello, I found your company through a referral and I am interested in learning more about your {service} services. We are a mid-size company looking for a reliable partner. Could you send me your pricing and availability?",
		itemType: models.ItemEmail,
		priority: models.PriorityNormal,
		vars: map[string]func(r *rand.Rand) string{
			"service": func(r *rand.Rand) string {
				return randChoice(r, "consulting", "development", "marketing", "design", "analytics")
			},
		},
	},
	{
		sender:   "billing@saasplatform.com",
		subject:  "Subscription Renewal Notice - Plan expires in {days} days",
		body:     "Your subscription to the Professional plan is set to expire in {days} days. To avoid any interruption in service, please renew your subscription. Your current rate is ${amount}/month. Renew now to lock in this price.",
		itemType: models.ItemEmail,
		priority: models.PriorityNormal,
		vars: map[string]func(r *rand.Rand) string{
			"days":   func(r *rand.Rand) string { return randInt(r, 3, 14) },
			"amount": func(r *rand.Rand) string { return randChoice(r, "29.00", "49.00", "99.00", "149.00", "199.00") },
		},
	},
	{
		sender:   "mike.wilson@company.com",
		subject:  "Expense Report - {month} {year}",
		body:     "Please review and approve my expense report for {month} {year}. Total amount: ${amount}. Expenses include travel, client meals, and office supplies. Receipts are attached. Please process payment at your earliest convenience.",
		itemType: models.ItemPayment,
		priority: models.PriorityNormal,
		vars: map[string]func(r *rand.Rand) string{
			"month": func(r *rand.Rand) string {
				return randChoice(r, "January", "February", "March", "April", "May", "June",
					"July", "August", "September", "October", "November", "December")
			},
			"year":   func(r *rand.Rand) string { return "2026" },
			"amount": func(r *rand.Rand) string { return randAmount(r, 200, 3000) },
		},
	},
	{
		sender:   "noreply@overdue-collections.com",
		subject:  "OVERDUE: Invoice #{inv_num} - Payment Required Immediately",
		body:     "This is a final reminder that invoice #{inv_num} for ${amount} is now {days} days overdue. Immediate payment is required to avoid late fees and potential service suspension. Please remit payment ASAP.",
		itemType: models.ItemPayment,
		priority: models.PriorityHigh,
		vars: map[string]func(r *rand.Rand) string{
			"inv_num": func(r *rand.Rand) string { return randInt(r, 10000, 99999) },
			"amount":  func(r *rand.Rand) string { return randAmount(r, 500, 8000) },
			"days":    func(r *rand.Rand) string { return randInt(r, 15, 60) },
		},
	},
	{
		sender:   "legal@partnerfirm.com",
		subject:  "Contract Amendment - Review Required",
		body:     "Attached please find the proposed amendment to our service agreement. Key changes include updated payment terms, revised SLA targets, and new data handling provisions. Please review and provide feedback within 5 business days.",
		itemType: models.ItemEmail,
		priority: models.PriorityNormal,
	},
}

// Simulator writes synthetic email items into Needs_Action for demos
// and testing.
type Simulator struct {
	vault *vault.Vault
	rng   *rand.Rand
	now   func() time.Time
}

// NewSimulator creates a Simulator over the given vault.
func NewSimulator(v *vault.Vault) *Simulator {
	return &Simulator{
		vault: v,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// render resolves a template's placeholders into a concrete email.
func (s *Simulator) render(tmpl emailTemplate) (sender, subject, body string, itemType models.ItemType, priority models.Priority) {
	subject = tmpl.subject
	body = tmpl.body
	for key, gen := range tmpl.vars {
		val := gen(s.rng)
		subject = strings.ReplaceAll(subject, "{"+key+"}", val)
		body = strings.ReplaceAll(body, "{"+key+"}", val)
	}
	return tmpl.sender, subject, body, tmpl.itemType, tmpl.priority
}

// SimulateEmail writes one EMAIL_<id>.md item into Needs_Action and
// returns its filename.
func (s *Simulator) SimulateEmail(sender, subject, body string, itemType models.ItemType, priority models.Priority) (string, error) {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	timestamp := s.now().Format("2006-01-02 15:04:05 UTC")
	filename := "EMAIL_" + id + ".md"

	meta := map[string]string{
		"type":     string(itemType),
		"id":       id,
		"from":     sender,
		"subject":  subject,
		"received": timestamp,
		"priority": string(priority),
		"status":   "needs_action",
	}

	content := fmt.Sprintf(`
# %s

**From**: %s
**Date**: %s
**Priority**: %s

---

%s
`, subject, sender, timestamp, priority, body)

	if err := s.vault.Write(vault.FolderNeedsAction, filename, document.Render(meta, content)); err != nil {
		return "", fmt.Errorf("simulating email: %w", err)
	}
	return filename, nil
}

// SimulateBatch generates count random emails from the template pool,
// repeating templates when count exceeds the pool size. Returns the
// written filenames.
func (s *Simulator) SimulateBatch(count int) ([]string, error) {
	filenames := make([]string, 0, count)
	for i := 0; i < count; i++ {
		tmpl := emailTemplates[s.rng.Intn(len(emailTemplates))]
		sender, subject, body, itemType, priority := s.render(tmpl)
		filename, err := s.SimulateEmail(sender, subject, body, itemType, priority)
		if err != nil {
			return filenames, err
		}
		filenames = append(filenames, filename)
	}
	return filenames, nil
}
