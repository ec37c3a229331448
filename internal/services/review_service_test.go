// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewCreateAndDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "buyer@example.com")
	seller := createTestSeller(t, db, "seller@example.com")
	category := createTestCategory(t, db, "books")
	product := createTestProduct(t, db, seller, category, "go-in-action", "10.00")

	review, err := svc.Create(user.ID, product.Slug, &ReviewRequest{Rating: 4, Text: "Solid"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	// One review per user per product.
	_, err = svc.Create(user.ID, product.Slug, &ReviewRequest{Rating: 5, Text: "Again"})
	assert.ErrorIs(t, err, ErrConflict)

	// A different user may still review.
	other := createTestUser(t, db, "other@example.com")
	_, err = svc.Create(other.ID, product.Slug, &ReviewRequest{Rating: 2, Text: "Meh"})
	require.NoError(t, err)

	reviews, err := svc.ListForProduct(product.Slug)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestReviewUpdateOwn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "buyer@example.com")
	seller := createTestSeller(t, db, "seller@example.com")
	category := createTestCategory(t, db, "books")
	product := createTestProduct(t, db, seller, category, "go-in-action", "10.00")

	_, err := svc.Create(user.ID, product.Slug, &ReviewRequest{Rating: 3, Text: "OK"})
	require.NoError(t, err)

	updated, err := svc.Update(user.ID, product.Slug, &ReviewRequest{Rating: 5, Text: "Grew on me"})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Grew on me", updated.Text)
}

func TestReviewDeleteThenRecreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "buyer@example.com")
	seller := createTestSeller(t, db, "seller@example.com")
	category := createTestCategory(t, db, "books")
	product := createTestProduct(t, db, seller, category, "go-in-action", "10.00")

	_, err := svc.Create(user.ID, product.Slug, &ReviewRequest{Rating: 1, Text: "Hated it"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(user.ID, product.Slug))

	_, err = svc.GetOwn(user.ID, product.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	// The partial unique index only covers live rows, so a fresh review
	// after deletion is allowed.
	_, err = svc.Create(user.ID, product.Slug, &ReviewRequest{Rating: 4, Text: "Changed my mind"})
	require.NoError(t, err)
}

func TestReviewUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, "buyer@example.com")

	_, err := svc.Create(user.ID, "no-such-product", &ReviewRequest{Rating: 3, Text: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListForProduct("no-such-product")
	assert.ErrorIs(t, err, ErrNotFound)
}
