package projections

import "indvend/internal/domain/profile"

// ProfilePage is the profile page.
type ProfilePage struct {
	Name          string
	Email         string
	Role          profile.Role
	RoleLabel     string
	Subscriptions []string
	OwnedGyms     []string
}

// QueryProfile formats the session profile.
func QueryProfile(p profile.Profile) ProfilePage {
	return ProfilePage{
		Name:          p.Name,
		Email:         p.Email,
		Role:          p.Role(),
		RoleLabel:     p.Role().Label(),
		Subscriptions: p.Subscriptions(),
		OwnedGyms:     p.OwnedGyms(),
	}
}
