// Package role classifies free-text role names into the approval hierarchy.
//
// Role names are entered by agency admins ("Security Guard", "HR Supervisor",
// "Agency Admin"), so classification is a case-insensitive substring test.
// A name may hold several classes at once: "HR Supervisor" is both HR and
// Supervisor, and callers check each class independently.
package role

import "strings"

const (
	TokenAdmin      = "admin"
	TokenHR         = "hr"
	TokenSupervisor = "supervisor"
)

type Class uint8

const (
	Admin Class = 1 << iota
	HR
	Supervisor
)

// Staff is the empty set: frontline staff hold none of the classes above.
const Staff Class = 0

func Classify(name string) Class {
	n := strings.ToLower(name)
	var c Class
	if strings.Contains(n, TokenAdmin) {
		c |= Admin
	}
	if strings.Contains(n, TokenHR) {
		c |= HR
	}
	if strings.Contains(n, TokenSupervisor) {
		c |= Supervisor
	}
	return c
}

func (c Class) IsAdmin() bool      { return c&Admin != 0 }
func (c Class) IsHR() bool         { return c&HR != 0 }
func (c Class) IsSupervisor() bool { return c&Supervisor != 0 }

// IsFrontline reports a role outside admin, hr and supervisor.
func (c Class) IsFrontline() bool { return c == Staff }

// IsAdminOrHR is the "peer or superior of HR" test used for approval authority.
func (c Class) IsAdminOrHR() bool { return c.IsAdmin() || c.IsHR() }

// Primary resolves overlap by precedence admin > hr > supervisor > staff.
func (c Class) Primary() Class {
	switch {
	case c.IsAdmin():
		return Admin
	case c.IsHR():
		return HR
	case c.IsSupervisor():
		return Supervisor
	default:
		return Staff
	}
}

// Names lists every class held, in precedence order. Staff yields ["staff"].
func (c Class) Names() []string {
	if c.IsFrontline() {
		return []string{"staff"}
	}
	names := make([]string, 0, 3)
	if c.IsAdmin() {
		names = append(names, TokenAdmin)
	}
	if c.IsHR() {
		names = append(names, TokenHR)
	}
	if c.IsSupervisor() {
		names = append(names, TokenSupervisor)
	}
	return names
}

func (c Class) String() string {
	return strings.Join(c.Names(), "|")
}
