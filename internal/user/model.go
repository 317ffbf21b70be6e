package user

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSalesRep Role = "SALES_REP"
	RolePicker   Role = "PICKER"
	RoleAdmin    Role = "ADMIN"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleCustomer, RoleSalesRep, RolePicker, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
	// CustomerCode is the trade account reference, set for CUSTOMER users.
	CustomerCode *string   `json:"customer_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
