package models

import (
	"time"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSuperAdmin
}

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `json:"name"`
	Email        string  `gorm:"unique;not null"          json:"email"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Role         Role    `gorm:"not null"                 json:"role"`
	RefreshToken *string `gorm:"index"                    json:"-"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Gender      string    `json:"gender"`
	Sizes       []string  `gorm:"serializer:json"          json:"sizes"`
	Colors      []string  `gorm:"serializer:json"          json:"colors"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Stock       int       `json:"stock"`
	SoldCount   int       `json:"soldCount"`
	Rating      float64   `json:"rating"`
	Images      []string  `gorm:"serializer:json"          json:"images"`
	IsFeatured  bool      `gorm:"default:false"            json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Coupon struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code            string    `gorm:"unique;not null"          json:"code"`
	DiscountPercent int       `gorm:"not null"                 json:"discountPercent"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	UsageLimit      int       `json:"usageLimit"`
	UsageCount      int       `gorm:"default:0"                json:"usageCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type FeatureBanner struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageURL  string    `gorm:"not null"                 json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
