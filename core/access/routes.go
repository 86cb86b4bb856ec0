// Package access holds the role-based access control policy and the session
// guard evaluated on every protected request.
package access

import "github.com/ojtrack/ojtrack/core/user"

// Routes
const (
	RouteRoot            = "/"
	RouteHome            = "/home"
	RouteStudents        = "/students"
	RouteSupervisors     = "/supervisors"
	RouteRecords         = "/records"
	RouteEvaluation      = "/evaluation"
	RouteAttendance      = "/attendance"
	RouteProfileSettings = "/profile-settings"
	RouteSettings        = "/settings"
)

// roleRoutes is the single source of truth for route access; the navigation
// menu is derived from it rather than maintained as a second literal.
var roleRoutes = map[string][]string{
	user.RoleAdmin: {
		RouteHome, RouteStudents, RouteSupervisors, RouteRecords,
		RouteEvaluation, RouteAttendance, RouteProfileSettings, RouteSettings,
	},
	user.RoleSupervisor: {
		RouteHome, RouteStudents, RouteRecords,
		RouteEvaluation, RouteAttendance, RouteProfileSettings,
	},
	user.RoleStudent: {
		RouteHome, RouteEvaluation, RouteAttendance, RouteProfileSettings,
	},
}

// CanAccessRoute reports whether role may access route. The root path is
// allowed for every known role; unknown roles are denied everything.
func CanAccessRoute(role, route string) bool {
	routes, ok := roleRoutes[role]
	if !ok {
		return false
	}
	if route == RouteRoot {
		return true
	}
	for _, r := range routes {
		if r == route {
			return true
		}
	}
	return false
}

// NavItem is a navigation menu entry.
type NavItem struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var navItems = []NavItem{
	{Name: "Home", Path: RouteHome, Description: "Monitor both students and supervisors"},
	{Name: "Students", Path: RouteStudents, Description: "List of students"},
	{Name: "Supervisors", Path: RouteSupervisors, Description: "List of supervisors"},
	{Name: "Records", Path: RouteRecords, Description: "Student and supervisor records"},
	{Name: "Evaluation", Path: RouteEvaluation, Description: "Evaluation metrics"},
	{Name: "Attendance", Path: RouteAttendance, Description: "Attendance records"},
}

// NavItems returns the navigation menu for a role, derived from the access
// table so menus and checks cannot drift apart.
func NavItems(role string) []NavItem {
	items := make([]NavItem, 0, len(navItems))
	for _, item := range navItems {
		if CanAccessRoute(role, item.Path) {
			items = append(items, item)
		}
	}
	return items
}
