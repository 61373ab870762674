package directory

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

// ErrNotFound is returned on any lookup miss. Callers in the auth path must
// not expose it verbatim; it reads the same as a bad secret to the end user.
var ErrNotFound = errors.New("identity not found")

// Directory is the read-only registry of identities, partitioned by role
// and indexed by external ID. It is fully populated at construction and
// never written afterwards, so lookups need no locking.
type Directory struct {
	partitions map[Role]map[string]Identity
	byID       map[string]Identity
	order      []Identity // registration order, for listings
}

// New builds a Directory from the given identities. It fails on an invalid
// role, a missing per-role profile, or a duplicate ID / external ID within
// a role partition.
func New(identities ...Identity) (*Directory, error) {
	d := &Directory{
		partitions: make(map[Role]map[string]Identity, len(Roles)),
		byID:       make(map[string]Identity, len(identities)),
	}
	for _, role := range Roles {
		d.partitions[role] = make(map[string]Identity)
	}

	for _, ident := range identities {
		if err := checkProfile(ident); err != nil {
			return nil, err
		}
		if _, dup := d.byID[ident.ID]; dup {
			return nil, fmt.Errorf("duplicate identity id %q", ident.ID)
		}
		extID := normalizeExternalID(ident.ExternalID)
		part := d.partitions[ident.Role]
		if _, dup := part[extID]; dup {
			return nil, fmt.Errorf("duplicate %s id %q", ident.Role, ident.ExternalID)
		}
		part[extID] = ident
		d.byID[ident.ID] = ident
		d.order = append(d.order, ident)
	}
	return d, nil
}

// checkProfile ensures the role-specific payload matches Role.
func checkProfile(ident Identity) error {
	switch ident.Role {
	case RoleStudent:
		if ident.Student == nil {
			return fmt.Errorf("identity %q: missing student profile", ident.ID)
		}
	case RoleTeacher:
		if ident.Teacher == nil {
			return fmt.Errorf("identity %q: missing teacher profile", ident.ID)
		}
	case RoleAdmin:
		if ident.Admin == nil {
			return fmt.Errorf("identity %q: missing admin profile", ident.ID)
		}
	case RoleParent:
		if ident.Parent == nil {
			return fmt.Errorf("identity %q: missing parent profile", ident.ID)
		}
	default:
		return errors.Wrapf(ErrUnknownRole, "identity %q", ident.ID)
	}
	return nil
}

func normalizeExternalID(extID string) string {
	return strings.ToUpper(core.CleanString(extID))
}

// FindByRoleAndID looks an Identity up by role and role-scoped external ID.
// The external ID is matched case-insensitively with surrounding whitespace
// ignored. A miss returns ErrNotFound.
func (d *Directory) FindByRoleAndID(role Role, externalID string) (Identity, error) {
	part, ok := d.partitions[role]
	if !ok {
		return Identity{}, errors.Wrapf(ErrUnknownRole, "%s", role)
	}
	ident, ok := part[normalizeExternalID(externalID)]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return ident, nil
}

// GetByID looks an Identity up by its internal ID (used to resolve
// cross-references such as a parent's children).
func (d *Directory) GetByID(id string) (Identity, error) {
	ident, ok := d.byID[id]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return ident, nil
}

// QueryByRole returns all identities of a role, in registration order.
func (d *Directory) QueryByRole(role Role) []Identity {
	res := make([]Identity, 0, len(d.partitions[role]))
	for _, ident := range d.order {
		if ident.Role == role {
			res = append(res, ident)
		}
	}
	return res
}

// QueryAll returns every identity, in registration order.
func (d *Directory) QueryAll() []Identity {
	res := make([]Identity, len(d.order))
	copy(res, d.order)
	return res
}

// CountByRole returns the population of one role partition.
func (d *Directory) CountByRole(role Role) int {
	return len(d.partitions[role])
}
