package model

// RoleStaff is the only role the service issues. Library staff may force
// seat statuses and drive the simulator by hand.
const RoleStaff = "STAFF"

// Staff is the single configured staff account. There is no user table;
// the credentials come from the environment.
type Staff struct {
	Username     string
	PasswordHash string // bcrypt
	Role         string
}
