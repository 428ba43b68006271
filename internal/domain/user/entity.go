package user

import "time"

type User struct {
	ID             string
	StudioID       string
	Name           string
	Email          string
	Role           Role
	EmploymentType EmploymentType
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Role string

const (
	RoleOwner    Role = "owner"
	RoleDirector Role = "director"
	RoleManager  Role = "manager"
	RoleArtist   Role = "artist"
	RoleStudent  Role = "student"
)

var RoleValues = []string{
	string(RoleOwner),
	string(RoleDirector),
	string(RoleManager),
	string(RoleArtist),
	string(RoleStudent),
}

// EmploymentType decides whether commission bookkeeping applies to a staff
// member. Booth renters keep their own revenue and never accrue commissions.
type EmploymentType string

const (
	EmploymentCommissioned EmploymentType = "commissioned"
	EmploymentBoothRenter  EmploymentType = "booth_renter"
)

// CanManageStudio reports whether the role may change studio-level settings.
func CanManageStudio(r Role) bool {
	return r == RoleOwner || r == RoleDirector || r == RoleManager
}
