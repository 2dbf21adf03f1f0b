package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCategories is the closed set of categories a product may carry.
var ProductCategories = []string{
	"Electronics",
	"Cameras",
	"Laptop",
	"Accessories",
	"Headphones",
	"Food",
	"Books",
	"Clothes/Shoes",
	"Beauty/Health",
	"Sports",
	"Outdoor",
	"Home",
}

// Review is a single customer review embedded in a product document.
type Review struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Product is a catalog entry with embedded images and reviews.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Price        float64            `bson:"price" json:"price"`
	Description  string             `bson:"description" json:"description"`
	Rating       float64            `bson:"ratings" json:"ratings"`
	Images       []Image            `bson:"images" json:"images"`
	Category     string             `bson:"category" json:"category"`
	Seller       string             `bson:"seller" json:"seller"`
	Stock        int                `bson:"stock" json:"stock"`
	NumOfReviews int                `bson:"num_of_reviews" json:"num_of_reviews"`
	Reviews      []Review           `bson:"reviews" json:"reviews"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Validate checks the schema constraints enforced at insert time.
func (p *Product) Validate() error {
	var messages []string

	if p.Name == "" {
		messages = append(messages, "Please enter a product name")
	}
	if len(p.Name) > 100 {
		messages = append(messages, "Product name can not exceed 100 characters")
	}
	if p.Price < 0 {
		messages = append(messages, "Product price can not be negative")
	}
	if p.Description == "" {
		messages = append(messages, "Please enter a product description")
	}
	if !validCategory(p.Category) {
		messages = append(messages, "Please select the correct category of the product")
	}
	if p.Seller == "" {
		messages = append(messages, "Please enter a product seller")
	}
	if p.Stock < 0 {
		messages = append(messages, "Product stock can not be negative")
	}

	return newValidationError(messages)
}

func validCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// UpsertReview replaces the author's existing review in place or appends a
// new one, then recomputes the aggregate rating. At most one review per
// author is kept. Returns true when an existing review was overwritten.
func (p *Product) UpsertReview(review Review) bool {
	for i := range p.Reviews {
		if p.Reviews[i].User == review.User {
			p.Reviews[i].Rating = review.Rating
			p.Reviews[i].Comment = review.Comment
			p.recomputeRating()
			return true
		}
	}

	p.Reviews = append(p.Reviews, review)
	p.NumOfReviews = len(p.Reviews)
	p.recomputeRating()
	return false
}

// RemoveReview deletes the review with the given id and recomputes the
// aggregate rating. Returns false when no such review exists.
func (p *Product) RemoveReview(reviewID primitive.ObjectID) bool {
	kept := p.Reviews[:0]
	removed := false
	for _, r := range p.Reviews {
		if r.ID == reviewID {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false
	}

	p.Reviews = kept
	p.NumOfReviews = len(p.Reviews)
	p.recomputeRating()
	return true
}

// recomputeRating folds the embedded reviews into their arithmetic mean.
// Zero reviews yield an aggregate rating of 0.
func (p *Product) recomputeRating() {
	if len(p.Reviews) == 0 {
		p.Rating = 0
		return
	}

	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = sum / float64(len(p.Reviews))
}
