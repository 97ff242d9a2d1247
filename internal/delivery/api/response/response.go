// Package response maps domain entities to the JSON shapes the storefront
// client consumes.
package response

import (
	"net/http"
	"time"

	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request. Stack is only filled outside production.
type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// MessageResponse acknowledges an operation without a resource to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public projection of an identity. It never carries the hash.
type UserResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is an identity together with a freshly issued token.
type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}

// UserRef is the populated owner of a donation.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CategoryResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductResponse carries the populated category object, or its id when the
// category no longer exists.
type ProductResponse struct {
	ID              string    `json:"_id"`
	User            string    `json:"user"`
	Name            string    `json:"name"`
	Category        any       `json:"category"`
	Price           float64   `json:"price"`
	OriginalPrice   *float64  `json:"originalPrice,omitempty"`
	Description     string    `json:"description"`
	FullDescription string    `json:"fullDescription,omitempty"`
	Image           string    `json:"image"`
	EcoTag          string    `json:"ecoTag,omitempty"`
	InStock         bool      `json:"inStock"`
	Rating          float64   `json:"rating"`
	Reviews         int       `json:"reviews"`
	Features        []string  `json:"features"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DonationResponse carries the owner id, or the owner object on admin listings.
type DonationResponse struct {
	ID              string    `json:"_id"`
	User            any       `json:"user"`
	ItemName        string    `json:"itemName"`
	ItemDescription string    `json:"itemDescription"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type StatsResponse struct {
	UserCount            int64 `json:"userCount"`
	ProductCount         int64 `json:"productCount"`
	DonationCount        int64 `json:"donationCount"`
	PendingDonationCount int64 `json:"pendingDonationCount"`
}

// Success writes data with the given status.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// OK writes data with 200.
func OK(c echo.Context, data any) error {
	return Success(c, http.StatusOK, data)
}

func NewUser(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		IsAdmin:   user.Privilege.AdminFlag(),
		CreatedAt: user.CreatedAt,
	}
}

func NewUsers(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUser(user))
	}

	return out
}

func NewAuth(user *entity.User, token string) AuthResponse {
	return AuthResponse{UserResponse: NewUser(user), Token: token}
}

func NewCategory(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func NewCategories(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, NewCategory(category))
	}

	return out
}

func NewProduct(product *entity.Product) ProductResponse {
	var category any = product.CategoryID.String()
	if product.Category != nil {
		category = NewCategory(product.Category)
	}

	features := product.Features
	if features == nil {
		features = []string{}
	}

	return ProductResponse{
		ID:              product.ID.String(),
		User:            product.UserID.String(),
		Name:            product.Name,
		Category:        category,
		Price:           product.Price,
		OriginalPrice:   product.OriginalPrice,
		Description:     product.Description,
		FullDescription: product.FullDescription,
		Image:           product.Image,
		EcoTag:          product.EcoTag,
		InStock:         product.InStock,
		Rating:          product.Rating,
		Reviews:         product.Reviews,
		Features:        features,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

func NewProducts(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, NewProduct(product))
	}

	return out
}

func NewDonation(donation *entity.Donation) DonationResponse {
	var user any = donation.UserID.String()
	if donation.User != nil {
		user = UserRef{
			ID:    donation.User.ID.String(),
			Name:  donation.User.Name,
			Email: donation.User.Email,
		}
	}

	return DonationResponse{
		ID:              donation.ID.String(),
		User:            user,
		ItemName:        donation.ItemName,
		ItemDescription: donation.ItemDescription,
		Status:          donation.Status.String(),
		CreatedAt:       donation.CreatedAt,
		UpdatedAt:       donation.UpdatedAt,
	}
}

func NewDonations(donations []*entity.Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(donations))
	for _, donation := range donations {
		out = append(out, NewDonation(donation))
	}

	return out
}

func NewStats(stats *entity.Stats) StatsResponse {
	return StatsResponse{
		UserCount:            stats.UserCount,
		ProductCount:         stats.ProductCount,
		DonationCount:        stats.DonationCount,
		PendingDonationCount: stats.PendingDonationCount,
	}
}
