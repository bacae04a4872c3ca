package employee

// Role determines which parts of the API an employee can reach. Every
// authenticated employee can manage their own attendance and leave; HR
// additionally reviews leave and reads other employees' records; admin
// additionally manages zones.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "ADMIN"
)

// CanReviewLeave reports whether the role may approve or reject leave
// applications and browse other employees' records.
func CanReviewLeave(role Role) bool {
	return role == RoleHR || role == RoleAdmin
}

// CanManageZones reports whether the role may create, update or delete
// geofence zones.
func CanManageZones(role Role) bool {
	return role == RoleAdmin
}
