package domain

// Role enumerates the two account kinds.
type Role string

const (
	RoleEndocrinologist Role = "endocrinologist"
	RolePatient         Role = "patient"
)

// ParseRole validates a role supplied by a client.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEndocrinologist, RolePatient:
		return Role(s), true
	}
	return "", false
}

// Identity is the verified subject extracted from a token. It lives only for
// the duration of a request and is never persisted.
type Identity struct {
	SubjectID int64
	Role      Role
}
