package model

import (
	"encoding/json"
	"fmt"
)

type Product struct {
	DTO
	Name        string  `gorm:"size:200;not null" json:"name"`
	Slug        string  `gorm:"unique;size:220" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string  `gorm:"size:500" json:"image"`
	IsActive    bool    `json:"isActive"`

	CategoryID    *uint `json:"categoryId,omitempty"`
	SubcategoryID *uint `json:"subcategoryId,omitempty"`

	// Sizes holds the per-size stock as a JSON object, e.g. {"S":4,"M":10}.
	Sizes string `gorm:"type:text" json:"sizes"`
}

type Products []Product

func (p *Product) sizeMap() map[string]int {
	sizes := map[string]int{}
	if p.Sizes != "" {
		_ = json.Unmarshal([]byte(p.Sizes), &sizes)
	}
	return sizes
}

func (p *Product) setSizeMap(sizes map[string]int) {
	raw, err := json.Marshal(sizes)
	if err != nil {
		return
	}
	p.Sizes = string(raw)
}

// SizeStock returns the current stock for one size.
func (p *Product) SizeStock(size string) int {
	return p.sizeMap()[size]
}

// ReserveSize takes quantity units of a size out of stock.
func (p *Product) ReserveSize(size string, quantity int) error {
	sizes := p.sizeMap()
	if sizes[size] < quantity {
		return fmt.Errorf("size %s has %d in stock, need %d", size, sizes[size], quantity)
	}
	sizes[size] -= quantity
	p.setSizeMap(sizes)
	return nil
}

// AddSizeStock puts quantity units of a size back into stock.
func (p *Product) AddSizeStock(size string, quantity int) {
	sizes := p.sizeMap()
	sizes[size] += quantity
	p.setSizeMap(sizes)
}

func (p *Product) TotalStock() int {
	total := 0
	for _, n := range p.sizeMap() {
		total += n
	}
	return total
}

type CreateProductInput struct {
	Name          string         `json:"name" validate:"required,max=200"`
	Description   string         `json:"description" validate:"omitempty"`
	Price         float64        `json:"price" validate:"required,gt=0"`
	Image         string         `json:"image" validate:"omitempty,max=500"`
	CategoryID    *uint          `json:"categoryId" validate:"omitempty,gt=0"`
	SubcategoryID *uint          `json:"subcategoryId" validate:"omitempty,gt=0"`
	Sizes         map[string]int `json:"sizes" validate:"omitempty"`
}

type EditProductInput struct {
	Name          string         `json:"name" validate:"omitempty,max=200"`
	Description   string         `json:"description" validate:"omitempty"`
	Price         float64        `json:"price" validate:"omitempty,gt=0"`
	Image         string         `json:"image" validate:"omitempty,max=500"`
	CategoryID    *uint          `json:"categoryId" validate:"omitempty,gt=0"`
	SubcategoryID *uint          `json:"subcategoryId" validate:"omitempty,gt=0"`
	Sizes         map[string]int `json:"sizes" validate:"omitempty"`
}

type FilterProductInput struct {
	Pagination
	SearchKey     string `json:"searchKey"`
	CategoryID    *uint  `json:"categoryId"`
	SubcategoryID *uint  `json:"subcategoryId"`
}
