package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validProduct() Product {
	return Product{
		Name:        "Phone",
		Price:       100,
		Description: "x",
		Category:    "Electronics",
		Seller:      "S",
		Stock:       5,
	}
}

func review(user primitive.ObjectID, rating float64) Review {
	return Review{
		ID:        primitive.NewObjectID(),
		User:      user,
		Name:      "Reviewer",
		Rating:    rating,
		Comment:   "ok",
		CreatedAt: time.Now(),
	}
}

func TestProductValidate(t *testing.T) {
	p := validProduct()
	assert.NoError(t, p.Validate())
}

func TestProductValidateRejectsBadCategory(t *testing.T) {
	p := validProduct()
	p.Category = "Spaceships"

	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "correct category")
}

func TestProductValidateRejectsNegativePriceAndStock(t *testing.T) {
	p := validProduct()
	p.Price = -1
	p.Stock = -3

	err := p.Validate()
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Messages, 2)
}

func TestUpsertReviewAppendsNewAuthor(t *testing.T) {
	p := validProduct()

	replaced := p.UpsertReview(review(primitive.NewObjectID(), 4))
	assert.False(t, replaced)
	assert.Equal(t, 1, p.NumOfReviews)
	assert.Equal(t, 4.0, p.Rating)

	p.UpsertReview(review(primitive.NewObjectID(), 2))
	assert.Equal(t, 2, p.NumOfReviews)
	assert.Equal(t, 3.0, p.Rating)
}

func TestUpsertReviewOverwritesSameAuthor(t *testing.T) {
	p := validProduct()
	author := primitive.NewObjectID()

	p.UpsertReview(review(author, 2))
	replaced := p.UpsertReview(review(author, 5))

	assert.True(t, replaced)
	assert.Equal(t, 1, p.NumOfReviews)
	assert.Len(t, p.Reviews, 1)
	assert.Equal(t, 5.0, p.Rating)
	assert.Equal(t, 5.0, p.Reviews[0].Rating)
}

func TestRemoveReviewRecomputesRating(t *testing.T) {
	p := validProduct()
	first := review(primitive.NewObjectID(), 5)
	second := review(primitive.NewObjectID(), 1)
	p.UpsertReview(first)
	p.UpsertReview(second)

	require.True(t, p.RemoveReview(second.ID))
	assert.Equal(t, 1, p.NumOfReviews)
	assert.Equal(t, 5.0, p.Rating)
}

func TestRemoveLastReviewZeroesRating(t *testing.T) {
	p := validProduct()
	only := review(primitive.NewObjectID(), 4)
	p.UpsertReview(only)

	require.True(t, p.RemoveReview(only.ID))
	assert.Equal(t, 0, p.NumOfReviews)
	assert.Zero(t, p.Rating)
}

func TestRemoveReviewUnknownID(t *testing.T) {
	p := validProduct()
	p.UpsertReview(review(primitive.NewObjectID(), 4))

	assert.False(t, p.RemoveReview(primitive.NewObjectID()))
	assert.Equal(t, 1, p.NumOfReviews)
}
