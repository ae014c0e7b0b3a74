package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that name can be used as a bare file name.
// Separators and dots are rejected so a name can neither leave its asset
// directory nor change its extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
