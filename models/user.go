package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleWaiter   = "waiter"
	RoleCustomer = "customer"
)

type User struct {
	ID        int64
	Username  string
	Name      string
	Role      string
	Active    bool
	CreatedAt time.Time
}
