package model

import "time"

// Collection names in Firestore.
const (
	CollectionUsers    = "users"
	CollectionOrders   = "orders"
	CollectionReviews  = "reviews"
	CollectionProducts = "products"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
// Transitions between statuses are not validated anywhere; any status may
// follow any status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// User is a profile document keyed by the identity-provider UID.
type User struct {
	UID             string    `firestore:"uid" json:"uid"`
	Email           string    `firestore:"email" json:"email"`
	Name            string    `firestore:"name" json:"name"`
	PhoneNumber     string    `firestore:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	ProfileImageURL string    `firestore:"profileImageUrl,omitempty" json:"profileImageUrl,omitempty"`
	Role            string    `firestore:"role" json:"role"`
	CreatedAt       time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Order is keyed by the client-generated order identifier and written only
// after the gateway has confirmed the payment.
type Order struct {
	ID          string    `firestore:"id" json:"id"`
	UserID      string    `firestore:"userId" json:"userId"`
	UserEmail   string    `firestore:"userEmail" json:"userEmail"`
	UserName    string    `firestore:"userName" json:"userName"`
	ProductID   string    `firestore:"productId" json:"productId"`
	ProductName string    `firestore:"productName" json:"productName"`
	Amount      int64     `firestore:"amount" json:"amount"`
	Status      string    `firestore:"status" json:"status"`
	PaymentKey  string    `firestore:"paymentKey" json:"paymentKey"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type Review struct {
	ID               string    `firestore:"id" json:"id"`
	UserID           string    `firestore:"userId" json:"userId"`
	UserName         string    `firestore:"userName" json:"userName"`
	UserProfileImage string    `firestore:"userProfileImage,omitempty" json:"userProfileImage,omitempty"`
	ProductID        string    `firestore:"productId" json:"productId"`
	ProductName      string    `firestore:"productName" json:"productName"`
	Rating           int       `firestore:"rating" json:"rating"`
	Content          string    `firestore:"content" json:"content"`
	Images           []string  `firestore:"images,omitempty" json:"images,omitempty"`
	CreatedAt        time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Product is read-mostly seed data. Price is whole KRW; a product without a
// positive price (PriceDisplay "문의") cannot be purchased online.
type Product struct {
	ID              string    `firestore:"id" json:"id"`
	Category        string    `firestore:"category" json:"category"`
	Name            string    `firestore:"name" json:"name"`
	Description     string    `firestore:"description" json:"description"`
	FullDescription string    `firestore:"fullDescription" json:"fullDescription"`
	Duration        string    `firestore:"duration" json:"duration"`
	Level           string    `firestore:"level" json:"level"`
	Price           int64     `firestore:"price" json:"price"`
	PriceDisplay    string    `firestore:"priceDisplay" json:"priceDisplay"`
	Image           string    `firestore:"image" json:"image"`
	Curriculum      []string  `firestore:"curriculum" json:"curriculum"`
	Features        []string  `firestore:"features" json:"features"`
	TargetAudience  []string  `firestore:"targetAudience" json:"targetAudience"`
	ReviewCount     int       `firestore:"reviewCount" json:"reviewCount"`
	AverageRating   float64   `firestore:"averageRating" json:"averageRating"`
	IsActive        bool      `firestore:"isActive" json:"isActive"`
	CreatedAt       time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
}
