package model

import "time"

type TokenData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenClaim struct {
	CustomerId uint   `json:"customerId"`
	AdminId    uint   `json:"adminId"`
	Username   string `json:"username"`
	Role       string `json:"role"`
}

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	Limit      *int  `json:"limit"`
	Page       *int  `json:"page"`
	TotalCount int64 `json:"totalCount"`
}

type ArrayId struct {
	IDs []uint `json:"ids"`
}

type Pagination struct {
	Limit *int `json:"limit"`
	Page  *int `json:"page"`
}

// PerPage returns the requested page size, defaulting to 20.
func (p Pagination) PerPage() int {
	if p.Limit != nil && *p.Limit > 0 {
		return *p.Limit
	}
	return 20
}

func (p Pagination) Offset() int {
	if p.Page != nil && *p.Page > 1 {
		return (*p.Page - 1) * p.PerPage()
	}
	return 0
}
