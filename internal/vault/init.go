package vault

import (
	"fmt"
	"os"

	"github.com/valter-silva-au/triagevault/pkg/models"
)

// Init creates every vault folder and writes the core template files.
// It is idempotent: existing folders are left alone and core files are
// rewritten from templates.
func (v *Vault) Init(owner, business string) (string, error) {
	for _, folder := range Folders {
		if err := os.MkdirAll(v.Dir(folder), 0o755); err != nil {
			return "", fmt.Errorf("initializing vault: creating %s: %w", folder, err)
		}
	}

	templates := map[string]string{
		"Dashboard.md":        dashboardTemplate,
		"Company_Handbook.md": handbookTemplate,
		"Business_Goals.md":   goalsTemplate,
		".gitignore":          gitignoreTemplate,
	}

	for filename, tmpl := range templates {
		content := renderTemplate(tmpl, owner, business)
		path := v.Path("", filename)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("initializing vault: writing %s: %w", filename, err)
		}
	}

	return fmt.Sprintf("Vault initialized at %s with %d folders and %d core files.",
		v.root, len(Folders), len(templates)), nil
}

// Status reports folder document counts and core file existence.
func (v *Vault) Status() models.VaultStatus {
	_, err := os.Stat(v.root)

	status := models.VaultStatus{Initialized: err == nil}

	for _, folder := range Folders {
		status.Folders = append(status.Folders, models.FolderStatus{
			Name:  folder,
			Count: v.CountMarkdown(folder),
		})
	}

	for _, name := range CoreFiles {
		_, err := os.Stat(v.Path("", name))
		status.CoreFiles = append(status.CoreFiles, models.CoreFileStatus{
			Name:   name,
			Exists: err == nil,
		})
	}

	return status
}
