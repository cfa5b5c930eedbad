package service

import "restaurant-reviews/review-svc/internal/domain"

// AverageRating is the mean rating of reviews, or 0 when there are none.
func AverageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return float64(total) / float64(len(reviews))
}

// RatingDistribution counts reviews per star, with every rating from 1 to 5 present.
func RatingDistribution(reviews []domain.Review) map[int]int {
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, review := range reviews {
		distribution[review.Rating]++
	}
	return distribution
}
