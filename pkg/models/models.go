package models

import "time"

// Customer represents a customer in the store
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Email     string    `json:"email" gorm:"size:200;not null"`
	Phone     string    `json:"phone" gorm:"size:15"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Orders  []Order          `json:"-" gorm:"foreignKey:CustomerID"`
	Account *CustomerAccount `json:"-" gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// CustomerAccount represents a customer's login account. A customer has at
// most one account, enforced by the unique index on customer_id. The
// password is stored as a bcrypt hash and never serialized.
type CustomerAccount struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:200;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:200;not null"`
	CustomerID   uint      `json:"customer_id" gorm:"uniqueIndex;not null"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName returns the table name for CustomerAccount
func (CustomerAccount) TableName() string {
	return "customer_accounts"
}

// Product represents a product in the catalog
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Price     float64   `json:"price" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Orders []Order `json:"-" gorm:"many2many:order_products"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}

// Order represents an order placed by a customer. Its products are held in
// the order_products join table; the slice is only populated when the
// query preloads it.
type Order struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Date       Date      `json:"date" gorm:"not null"`
	CustomerID uint      `json:"customer_id" gorm:"index;not null"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	Products []Product `json:"products,omitempty" gorm:"many2many:order_products"`
}

// TableName returns the table name for Order
func (Order) TableName() string {
	return "orders"
}

// CustomerRequest is the write payload for customers
type CustomerRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=200"`
	Phone string `json:"phone" validate:"required,max=15"`
}

// AccountRequest is the write payload for customer accounts
type AccountRequest struct {
	Username   string `json:"username" validate:"required,max=200"`
	Password   string `json:"password" validate:"required,max=128"`
	CustomerID uint   `json:"customer_id" validate:"required"`
}

// ProductRequest is the write payload for products. Price is a pointer so
// that an explicit zero price passes the required check.
type ProductRequest struct {
	Name  string   `json:"name" validate:"required,max=200"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

// OrderRequest is the write payload for orders. ProductIDs attaches
// products at placement time; every id must reference an existing product.
type OrderRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	CustomerID uint   `json:"customer_id" validate:"required"`
	ProductIDs []uint `json:"product_ids" validate:"omitempty,dive,gt=0"`
}

// All lists every persisted entity for migration.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&CustomerAccount{},
		&Product{},
		&Order{},
	}
}
