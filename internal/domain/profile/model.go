package profile

import (
	"errors"
	"slices"
	"strings"
	"unicode"
)

// Role identifies which kind of marketplace participant a profile belongs to.
type Role string

// Role constants
const (
	RoleMember  Role = "Member"
	RoleOwner   Role = "Owner"
	RoleTrainer Role = "Trainer"
	RoleBrand   Role = "Brand"
)

// ValidRoles contains all valid role values, in login-form order.
var ValidRoles = []Role{RoleMember, RoleOwner, RoleTrainer, RoleBrand}

// Login-form defaults.
const (
	DefaultGym  = "Pulse Arena Gym"
	GuestName   = "Guest"
	GuestEmail  = "guest@example.com"
	MaxNameLen  = 100
	MaxEmailLen = 254
)

// Domain errors
var (
	ErrEmptyID      = errors.New("profile id cannot be empty")
	ErrEmptyName    = errors.New("profile name cannot be empty")
	ErrNameTooLong  = errors.New("profile name cannot exceed 100 characters")
	ErrEmailTooLong = errors.New("profile email cannot exceed 254 characters")
	ErrNoRole       = errors.New("profile must carry a role")
	ErrControlChar  = errors.New("profile name and email cannot contain control characters")
)

// Label returns the human label shown on the role picker.
func (r Role) Label() string {
	switch r {
	case RoleMember:
		return "Gym Member"
	case RoleOwner:
		return "Gym Owner"
	default:
		return string(r)
	}
}

// ParseRole maps a submitted role string onto a Role.
// PRE: none
// POST: returns the matching role and true, or RoleMember and false
func ParseRole(s string) (Role, bool) {
	for _, r := range ValidRoles {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, true
		}
	}
	return RoleMember, false
}

// Association is the role-specific data a profile carries.
// The set of implementations is closed: Member, Owner, Trainer, Brand.
type Association interface {
	Role() Role
	association()
}

// Member is the association for gym members.
type Member struct {
	Subscriptions GymSet
}

// Owner is the association for gym owners.
type Owner struct {
	Gyms GymSet
}

// Trainer is the association for personal trainers.
type Trainer struct{}

// Brand is the association for product brands.
type Brand struct{}

func (Member) Role() Role { return RoleMember }
func (Owner) Role() Role { return RoleOwner }
func (Trainer) Role() Role { return RoleTrainer }
func (Brand) Role() Role { return RoleBrand }

func (Member) association() {}
func (Owner) association() {}
func (Trainer) association() {}
func (Brand) association() {}

// Profile is the identity held by a session.
type Profile struct {
	ID    string
	Name  string
	Email string
	Assoc Association
}

// New builds the profile produced by the login form.
// Blank name and email fall back to the guest identity. Members start
// subscribed to the default gym and owners start owning it.
// PRE: id is non-empty
// POST: returns a profile whose association matches role
func New(id, name, email string, role Role) Profile {
	name = strings.TrimSpace(name)
	if name == "" {
		name = GuestName
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = GuestEmail
	}

	var assoc Association
	switch role {
	case RoleOwner:
		assoc = Owner{Gyms: NewGymSet(DefaultGym)}
	case RoleTrainer:
		assoc = Trainer{}
	case RoleBrand:
		assoc = Brand{}
	default:
		assoc = Member{Subscriptions: NewGymSet(DefaultGym)}
	}

	return Profile{ID: id, Name: name, Email: email, Assoc: assoc}
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, error otherwise
func (p Profile) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLen {
		return ErrNameTooLong
	}
	if len(p.Email) > MaxEmailLen {
		return ErrEmailTooLong
	}
	if hasControl(p.Name) || hasControl(p.Email) {
		return ErrControlChar
	}
	if p.Assoc == nil {
		return ErrNoRole
	}
	return nil
}

// hasControl reports whether s contains a control character such as a
// line break or tab. Names are written into CSV exports, where line breaks
// do not survive a round trip.
func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}

// Role returns the role carried by the profile's association.
func (p Profile) Role() Role {
	if p.Assoc == nil {
		return ""
	}
	return p.Assoc.Role()
}

// Is reports whether the profile has the given role.
func (p Profile) Is(role Role) bool {
	return p.Role() == role
}

// Subscriptions returns the member's subscribed gyms, or nil for other roles.
func (p Profile) Subscriptions() []string {
	if m, ok := p.Assoc.(Member); ok {
		return m.Subscriptions.Names()
	}
	return nil
}

// OwnedGyms returns the owner's gyms, or nil for other roles.
func (p Profile) OwnedGyms() []string {
	if o, ok := p.Assoc.(Owner); ok {
		return o.Gyms.Names()
	}
	return nil
}

// Subscribe adds gym to a member's subscriptions.
// Non-members are returned unchanged.
// PRE: gym is non-empty
// POST: returns the updated profile and whether the set grew
// INVARIANT: subscriptions never contain duplicates
func (p Profile) Subscribe(gym string) (Profile, bool) {
	m, ok := p.Assoc.(Member)
	if !ok || gym == "" {
		return p, false
	}
	subs, added := m.Subscriptions.Add(gym)
	p.Assoc = Member{Subscriptions: subs}
	return p, added
}

// ScanGyms returns the gyms offered in the attendance scan dialog.
// Members pick among their subscriptions, owners among their gyms,
// everyone else gets the default gym.
func (p Profile) ScanGyms() []string {
	switch a := p.Assoc.(type) {
	case Member:
		if a.Subscriptions.Len() > 0 {
			return a.Subscriptions.Names()
		}
	case Owner:
		if a.Gyms.Len() > 0 {
			return a.Gyms.Names()
		}
	}
	return []string{DefaultGym}
}

// GymSet is an insertion-ordered set of gym names.
// The zero value is an empty set.
type GymSet struct {
	names []string
}

// NewGymSet builds a set from names, dropping blanks and duplicates.
func NewGymSet(names ...string) GymSet {
	var s GymSet
	for _, n := range names {
		s, _ = s.Add(n)
	}
	return s
}

// Add returns a set containing name and whether it was newly added.
// The receiver is not modified.
func (s GymSet) Add(name string) (GymSet, bool) {
	if name == "" || s.Has(name) {
		return s, false
	}
	next := make([]string, len(s.names), len(s.names)+1)
	copy(next, s.names)
	return GymSet{names: append(next, name)}, true
}

// Has reports whether name is in the set.
func (s GymSet) Has(name string) bool {
	return slices.Contains(s.names, name)
}

// Len returns the number of gyms in the set.
func (s GymSet) Len() int {
	return len(s.names)
}

// Names returns a copy of the set's members in insertion order.
func (s GymSet) Names() []string {
	return slices.Clone(s.names)
}
