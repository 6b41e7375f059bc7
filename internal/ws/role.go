package ws

// Role determines which broadcast message types a viewer receives. It is a
// closed set; unknown role tags fall back to RoleClient.
type Role string

const (
	RoleClient   Role = "client"
	RoleDisplay  Role = "display"
	RoleOperator Role = "operator"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleDisplay:
		return RoleDisplay
	case RoleOperator:
		return RoleOperator
	default:
		return RoleClient
	}
}

// ReceivesAudio reports whether audio payloads are delivered to this role.
func (r Role) ReceivesAudio() bool {
	return r == RoleDisplay
}
