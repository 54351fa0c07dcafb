package models

// User represents a farm-system account.
// The Password column holds the bcrypt hash. The json tag deliberately
// exposes it: the user listing endpoint returns documents as stored,
// hash included.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required"`
	LastName string `json:"lastName" validate:"required"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"password" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}
