package kernel

import "fulfillment/internal/pkg/errs"

// ErrTenantIDIsNotConstructed indicates that a TenantID was not created through
// NewTenantID or TenantIDFromString.
var ErrTenantIDIsNotConstructed = errs.NewValueIsRequiredError("TenantID must be created via NewTenantID or TenantIDFromString")

// TenantID is a value object identifying the organization that owns an
// aggregate. It is the isolation boundary of the system: every entity belongs
// to exactly one tenant, and every repository lookup filters on it.
//
// The zero value is invalid; construct through NewTenantID or TenantIDFromString.
type TenantID struct {
	id UUID
}

// NewTenantID wraps an existing UUID as a tenant identifier.
func NewTenantID(id UUID) (TenantID, error) {
	if err := id.Validate(); err != nil {
		return TenantID{}, err
	}
	return TenantID{id: id}, nil
}

// TenantIDFromString parses a tenant identifier from its string form.
func TenantIDFromString(s string) (TenantID, error) {
	id, err := UUIDFromString(s)
	if err != nil {
		return TenantID{}, err
	}
	return TenantID{id: id}, nil
}

// String returns the canonical string form of the tenant identifier.
func (t TenantID) String() string {
	return t.id.String()
}

// UUID returns the underlying UUID value object.
func (t TenantID) UUID() UUID {
	return t.id
}

// IsEqual compares two tenant identifiers by value.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.id.IsEqual(other.id)
}

// Validate checks that the TenantID was properly constructed.
func (t TenantID) Validate() error {
	if err := t.id.Validate(); err != nil {
		return ErrTenantIDIsNotConstructed
	}
	return nil
}
