package invoice

import (
	"strings"

	"github.com/Tareqhaboukh/project-one/internal/models"
)

// ResolveVendor matches extracted vendor text against a read-only registry
// snapshot. The scan is a case-insensitive substring containment check in
// registry order (snapshots are ordered by vendor id, i.e. creation order),
// and the first match wins. When nothing matches, the literal extracted
// text is preserved with an absent id so the caller can still pre-fill
// the form.
func ResolveVendor(name *string, registry []models.VendorRef) (*int64, *string) {
	if name == nil {
		return nil, nil
	}

	needle := strings.ToLower(strings.TrimSpace(*name))
	if needle == "" {
		return nil, name
	}

	for _, vendor := range registry {
		if strings.Contains(strings.ToLower(vendor.Name), needle) {
			id := vendor.ID
			canonical := vendor.Name
			return &id, &canonical
		}
	}

	return nil, name
}
