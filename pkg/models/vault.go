package models

// FolderStatus reports the markdown document count for one vault folder.
type FolderStatus struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CoreFileStatus reports whether one of the vault's core files exists.
type CoreFileStatus struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

// VaultStatus is a snapshot of the vault directory layout.
type VaultStatus struct {
	Initialized bool             `json:"initialized"`
	Folders     []FolderStatus   `json:"folders"`
	CoreFiles   []CoreFileStatus `json:"core_files"`
}

// SectionValidation reports the presence of one required handbook section.
type SectionValidation struct {
	Section     string `json:"section"`
	Description string `json:"description"`
	Present     bool   `json:"present"`
}

// HandbookData is handbook content plus its section validation results.
type HandbookData struct {
	Content    string              `json:"content"`
	Validation []SectionValidation `json:"validation"`
	IsComplete bool                `json:"is_complete"`
}
