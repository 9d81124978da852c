package vault

import (
	"fmt"
	"os"
	"strings"

	"github.com/valter-silva-au/triagevault/pkg/models"
)

const handbookFile = "Company_Handbook.md"

// requiredSections are the handbook headings every complete handbook
// must contain, with a short description of each.
var requiredSections = []struct {
	header      string
	description string
}{
	{"## 1. Identity", "Owner name, business name, assistant role"},
	{"## 2. Communication Rules", "Email and WhatsApp behavior guidelines"},
	{"## 3. Financial Rules", "Payment thresholds and approval requirements"},
	{"## 4. Autonomy Thresholds", "Table of auto-approve vs. requires-approval actions"},
	{"## 5. Priority Keywords", "Keywords that trigger high-priority routing"},
	{"## 6. Business Hours", "Operating hours and after-hours behavior"},
	{"## 7. Privacy Rules", "Data handling and confidentiality rules"},
	{"## 8. Escalation Path", "What to do when uncertain or an error occurs"},
}

// ReadHandbook returns the handbook content with section validation.
// A missing handbook returns ErrNoHandbook.
func (v *Vault) ReadHandbook() (*models.HandbookData, error) {
	data, err := os.ReadFile(v.Path("", handbookFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHandbook
		}
		return nil, fmt.Errorf("reading handbook: %w", err)
	}
	content := string(data)

	validation, complete := validateHandbook(content)
	return &models.HandbookData{
		Content:    content,
		Validation: validation,
		IsComplete: complete,
	}, nil
}

// UpdateHandbook replaces the handbook content. The vault must exist.
func (v *Vault) UpdateHandbook(content string) error {
	if _, err := os.Stat(v.root); err != nil {
		return fmt.Errorf("updating handbook: vault not initialized: %w", err)
	}
	if err := os.WriteFile(v.Path("", handbookFile), []byte(content), 0o644); err != nil {
		return fmt.Errorf("updating handbook: %w", err)
	}
	return nil
}

func validateHandbook(content string) ([]models.SectionValidation, bool) {
	complete := true
	validations := make([]models.SectionValidation, 0, len(requiredSections))
	for _, section := range requiredSections {
		present := strings.Contains(content, section.header)
		if !present {
			complete = false
		}
		validations = append(validations, models.SectionValidation{
			Section:     section.header,
			Description: section.description,
			Present:     present,
		})
	}
	return validations, complete
}
