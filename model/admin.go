package model

type Admin struct {
	DTO
	Username string `gorm:"unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Email    string `gorm:"unique" json:"email"`
	Active   bool   `json:"active"`
	Role     string `gorm:"default:'ADMIN'" json:"role"`
}

type LoginAdminInput struct {
	Username string `validate:"required" json:"username"`
	Password string `validate:"required" json:"password"`
}
