package models

import (
	"slices"
	"time"
)

type Permission string

const (
	PermissionWorker  Permission = "W"
	PermissionManager Permission = "M"
	PermissionAdmin   Permission = "A"
)

// Permissions is ordered from least to most privileged.
var Permissions = []Permission{PermissionWorker, PermissionManager, PermissionAdmin}

func (p Permission) Valid() bool {
	return slices.Contains(Permissions, p)
}

// AtLeast reports whether p ranks at or above min. Unknown values rank below everything.
func (p Permission) AtLeast(min Permission) bool {
	have := slices.Index(Permissions, p)
	need := slices.Index(Permissions, min)
	if have < 0 || need < 0 {
		return false
	}
	return have >= need
}

// Categories is case sensitive: the lower and upper spellings are distinct values.
var Categories = []string{
	"t-shirt", "hoodie", "hat", "necklace", "bracelet",
	"shoes", "pillow", "mug", "book", "puzzle", "cards",
	"T-SHIRT", "HOODIE", "HAT", "NECKLACE", "BRACELET",
	"SHOES", "PILLOW", "MUG", "BOOK", "PUZZLE", "CARDS",
}

func IsCategory(s string) bool {
	return slices.Contains(Categories, s)
}

// ProductFields are the keys a client may send when updating a product.
var ProductFields = []string{"name", "category", "description", "price", "stock", "image"}

type User struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"  json:"-"`
	Username   string     `gorm:"uniqueIndex;not null"      json:"username"`
	Password   string     `gorm:"not null"                  json:"-"`
	Permission Permission `gorm:"type:varchar(1);not null"  json:"permission"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}

type Product struct {
	ID          string    `gorm:"primaryKey;size:8"         json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Category    string    `gorm:"index;not null"            json:"category"`
	Description string    `gorm:"not null"                  json:"description"`
	Price       float64   `gorm:"not null"                  json:"price"`
	Stock       float64   `gorm:"not null"                  json:"stock"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
