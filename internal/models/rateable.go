package models

import "github.com/shopspring/decimal"

// RateableKind discriminates entities that carry an aggregate rating.
const (
	RateableKindBook       = "book"
	RateableKindCollection = "collection"
)

// Rateable is the capability shared by every entity that exposes an
// incrementally maintained mean rating. The aggregate fields are mutated
// only through service.RatingService.
type Rateable interface {
	RatingStats() (mean decimal.Decimal, count int64)
	SetRatingStats(mean decimal.Decimal, count int64)
}
