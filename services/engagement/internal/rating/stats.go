package rating

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"math"
	"strings"
)

const maxReviewLen = 4000

type Stats struct {
	Average float64
	Count   int64
	// Distribution[i] 为 i+1 星的数量
	Distribution [5]int64
}

// ComputeStats 每次基于全部评分重新计算，平均值保留一位小数
func ComputeStats(ratings []database.Rating) Stats {
	s := Stats{}
	sum := int64(0)
	for _, r := range ratings {
		if r.Stars < database.MinStars || r.Stars > database.MaxStars {
			continue
		}
		s.Distribution[r.Stars-1]++
		s.Count++
		sum += int64(r.Stars)
	}
	if s.Count == 0 {
		return s
	}
	s.Average = math.Round(float64(sum)*10/float64(s.Count)) / 10
	return s
}

func ValidateStars(stars int) error {
	if stars < database.MinStars || stars > database.MaxStars {
		return errorx.NewValidation("stars must be between %d and %d, got %d", database.MinStars, database.MaxStars, stars)
	}
	return nil
}

// NormalizeReview 空白评价视为没有评价
func NormalizeReview(review *string) (*string, error) {
	if review == nil {
		return nil, nil
	}
	text := strings.TrimSpace(*review)
	if text == "" {
		return nil, nil
	}
	if len([]rune(text)) > maxReviewLen {
		return nil, errorx.NewValidation("review text longer than %d characters", maxReviewLen)
	}
	return &text, nil
}
