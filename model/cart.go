package model

type CartItem struct {
	DTO
	CustomerID uint     `gorm:"not null;index:idx_cart_customer_product,unique" json:"customerId"`
	ProductID  uint     `gorm:"not null;index:idx_cart_customer_product,unique" json:"productId"`
	Product    *Product `json:"product,omitempty"`
	Quantity   int      `gorm:"not null;default:1" json:"quantity"`
	Size       string   `gorm:"size:20;index:idx_cart_customer_product,unique" json:"size"`
}

type CartItems []CartItem

type AddCartItemInput struct {
	ProductID uint   `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Size      string `json:"size" validate:"omitempty,max=20"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type Wishlist struct {
	DTO
	CustomerID uint     `gorm:"not null;index:idx_wishlist_customer_product,unique" json:"customerId"`
	ProductID  uint     `gorm:"not null;index:idx_wishlist_customer_product,unique" json:"productId"`
	Product    *Product `json:"product,omitempty"`
}
