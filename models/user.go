package models

import "time"

// User types. Admin users come in two access tiers.
const (
	UserTypeClient       = "client"
	UserTypeProfessional = "professional"
	UserTypeAdmin        = "admin_user"
	UserTypeAdminSuper   = "admin_super"
)

// AdminTypes lists the user types with admin access.
var AdminTypes = []string{UserTypeAdmin, UserTypeAdminSuper}

// User represents any account in the system: clients booking appointments,
// professionals providing them, and admins managing both.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Active       bool      `bson:"active" json:"active"`
	UserType     string    `bson:"user_type" json:"user_type"`
	AccessLevel  int       `bson:"access_level" json:"access_level"`
	Username     string    `bson:"username" json:"username"`
	Fname        string    `bson:"fname" json:"fname"`
	Lname        string    `bson:"lname" json:"lname"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"password" json:"-"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number"`
	Address      string    `bson:"address" json:"address"`
	Age          int       `bson:"age" json:"age"`
	Specialty    string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	PayRate      *float64  `bson:"pay_rate,omitempty" json:"pay_rate,omitempty"`
	Warning      string    `bson:"warning,omitempty" json:"warning,omitempty"`
	WarningCount int       `bson:"warning_count" json:"warning_count"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// FullName returns "Fname Lname", the denormalized form stored on
// appointments.
func (u *User) FullName() string {
	return u.Fname + " " + u.Lname
}

// IsAdmin reports whether the user has one of the admin types.
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin || u.UserType == UserTypeAdminSuper
}
