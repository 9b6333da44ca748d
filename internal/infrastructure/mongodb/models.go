package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	ISBN          string             `bson:"isbn"`
	Price         float64            `bson:"price"`
	Category      string             `bson:"category"`
	Stock         int                `bson:"stock"`
	Description   string             `bson:"description,omitempty"`
	ImageURL      string             `bson:"image_url,omitempty"`
	Publisher     string             `bson:"publisher,omitempty"`
	PublishedDate *time.Time         `bson:"published_date,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type OrderDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"user_id"`
	Items           []ItemDocument     `bson:"items"`
	TotalAmount     float64            `bson:"total_amount"`
	Status          string             `bson:"status"`
	PaymentStatus   string             `bson:"payment_status"`
	PaymentMethod   string             `bson:"payment_method"`
	ShippingAddress AddressDocument    `bson:"shipping_address"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

type ItemDocument struct {
	BookID   string  `bson:"book_id"`
	Quantity int     `bson:"quantity"`
	Price    float64 `bson:"price"`
}

type AddressDocument struct {
	Street  string `bson:"street,omitempty"`
	City    string `bson:"city,omitempty"`
	State   string `bson:"state,omitempty"`
	ZipCode string `bson:"zip_code,omitempty"`
	Country string `bson:"country,omitempty"`
}

type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Phone        string             `bson:"phone,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type TaskDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}
