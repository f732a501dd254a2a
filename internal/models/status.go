package models

// Status is the lifecycle state shared by orders and tasks.
type Status string

const (
	StatusReadyToStart Status = "ReadyToStart"
	StatusInProgress   Status = "InProgress"
	StatusDone         Status = "Done"
	StatusRejected     Status = "Rejected"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusReadyToStart, StatusInProgress, StatusDone, StatusRejected:
		return true
	}
	return false
}

type Role string

const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleOperator || r == RoleAdmin
}
