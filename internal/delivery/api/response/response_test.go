package response

import (
	"encoding/json"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuth_NeverCarriesHash(t *testing.T) {
	user := &entity.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		Privilege:    entity.PrivilegeElevated,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(NewAuth(user, "token"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, user.ID.String(), decoded["_id"])
	assert.Equal(t, true, decoded["isAdmin"])
	assert.Equal(t, "token", decoded["token"])
	assert.NotContains(t, string(body), "secret")
	assert.ElementsMatch(t, []string{"_id", "name", "email", "isAdmin", "createdAt", "token"}, keys(decoded))
}

func TestNewProduct_CategoryFallsBackToID(t *testing.T) {
	categoryID := uuid.New()
	product := &entity.Product{ID: uuid.New(), CategoryID: categoryID}

	assert.Equal(t, categoryID.String(), NewProduct(product).Category)
	assert.Equal(t, []string{}, NewProduct(product).Features)

	product.Category = &entity.Category{ID: categoryID, Name: "Kitchen"}
	populated, ok := NewProduct(product).Category.(CategoryResponse)
	require.True(t, ok)
	assert.Equal(t, "Kitchen", populated.Name)
}

func TestNewDonation_PopulatedUser(t *testing.T) {
	userID := uuid.New()
	donation := &entity.Donation{ID: uuid.New(), UserID: userID, Status: entity.DonationStatusPending}

	assert.Equal(t, userID.String(), NewDonation(donation).User)

	donation.User = &entity.User{ID: userID, Name: "Alice", Email: "alice@example.com"}
	assert.Equal(t, UserRef{ID: userID.String(), Name: "Alice", Email: "alice@example.com"}, NewDonation(donation).User)
	assert.Equal(t, "Pending", NewDonation(donation).Status)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}

	return out
}
