package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
)

// Review is a product review. (ProductID, UserID) is unique.
type Review struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"product"`
	UserID    primitive.ObjectID `json:"userId" bson:"user"`
	Rating    int                `json:"rating" bson:"rating"`
	Title     string             `json:"title,omitempty" bson:"title,omitempty"`
	Comment   string             `json:"comment" bson:"comment"`
	Images    []string           `json:"images,omitempty" bson:"images,omitempty"`
	Likes     int64              `json:"likes" bson:"likes"`
	Dislikes  int64              `json:"dislikes" bson:"dislikes"`
	Verified  bool               `json:"verified" bson:"verified"`
	Status    ReviewStatus       `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`

	Product *Ref `json:"product,omitempty" bson:"-"`
	User    *Ref `json:"user,omitempty" bson:"-"`
}

// HelpfulScore is the share of likes among all votes, in percent.
func (r *Review) HelpfulScore() float64 {
	total := r.Likes + r.Dislikes
	if total == 0 {
		return 0
	}
	return float64(r.Likes) / float64(total) * 100
}

// ReviewView adds the helpful score to a Review for responses.
type ReviewView struct {
	*Review
	HelpfulScore float64 `json:"helpfulScore"`
}

func ViewReview(r *Review) ReviewView {
	return ReviewView{Review: r, HelpfulScore: r.HelpfulScore()}
}

func ViewReviews(rs []Review) []ReviewView {
	out := make([]ReviewView, len(rs))
	for i := range rs {
		out[i] = ViewReview(&rs[i])
	}
	return out
}

// ReviewInput is the create/update body.
type ReviewInput struct {
	Product  *string       `json:"product"`
	Rating   *int          `json:"rating"`
	Title    *string       `json:"title"`
	Comment  *string       `json:"comment"`
	Images   []string      `json:"images"`
	Verified *bool         `json:"verified"`
	Status   *ReviewStatus `json:"status"`
}

// Validate checks the body and returns the product id when one was given.
func (in *ReviewInput) Validate(create bool) (*primitive.ObjectID, error) {
	if create && (in.Product == nil || *in.Product == "") {
		return nil, apperror.Validation("product", "Valid product ID is required")
	}
	product, err := objectID("product", in.Product)
	if err != nil {
		return nil, err
	}
	if create && in.Rating == nil {
		return nil, apperror.Validation("rating", "Rating must be between 1 and 5")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, apperror.Validation("rating", "Rating must be between 1 and 5")
	}
	if err := text("title", in.Title, false, 100); err != nil {
		return nil, err
	}
	if err := text("comment", in.Comment, create, 1000); err != nil {
		return nil, err
	}
	if in.Status != nil {
		if _, err := ParseEnum("status", string(*in.Status), ReviewStatuses...); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// Updates returns the $set document for a validated update.
func (in *ReviewInput) Updates(now time.Time) map[string]interface{} {
	set := map[string]interface{}{"updatedAt": now}
	if in.Rating != nil {
		set["rating"] = *in.Rating
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Comment != nil {
		set["comment"] = *in.Comment
	}
	if in.Images != nil {
		set["images"] = in.Images
	}
	if in.Verified != nil {
		set["verified"] = *in.Verified
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	return set
}

// RatingStats summarises the approved reviews of a product.
type RatingStats struct {
	AverageRating float64 `json:"averageRating" bson:"averageRating"`
	TotalReviews  int64   `json:"totalReviews" bson:"totalReviews"`
}

// RatingBucket is one row of a rating distribution.
type RatingBucket struct {
	Rating int   `json:"_id" bson:"_id"`
	Count  int64 `json:"count" bson:"count"`
}

// Distribution returns one bucket per rating from 5 down to 1, filling gaps
// with zero counts.
func Distribution(rows []RatingBucket) []RatingBucket {
	counts := make(map[int]int64, len(rows))
	for _, r := range rows {
		counts[r.Rating] = r.Count
	}
	out := make([]RatingBucket, 0, 5)
	for r := 5; r >= 1; r-- {
		out = append(out, RatingBucket{Rating: r, Count: counts[r]})
	}
	return out
}
