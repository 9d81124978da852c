package vault

import "errors"

// ErrNoHandbook is returned when Company_Handbook.md does not exist,
// typically because the vault was never initialized.
var ErrNoHandbook = errors.New("handbook not found")
