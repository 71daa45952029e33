package store

import (
	"GoEngage/common/errorx"
	"GoEngage/common/model/database"
	"context"
	"fmt"

	"gorm.io/gorm/clause"
)

// ListRatings 目标下全部评分，最近更新的在前
func (s *Store) ListRatings(ctx context.Context, target database.Target) ([]database.Rating, error) {
	ratings := make([]database.Rating, 0)
	err := s.db.WithContext(ctx).
		Where("content_type = ? AND content_id = ?", target.ContentType, target.ContentId).
		Order("updated_at desc, id desc").
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("list ratings of %s: %w", target, err)
	}
	return ratings, nil
}

func (s *Store) GetRating(ctx context.Context, userId int64, target database.Target) (*database.Rating, error) {
	rating := &database.Rating{}
	err := take(s.db.WithContext(ctx).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userId, target.ContentType, target.ContentId),
		rating, "rating")
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// UpsertRating 同一用户对同一目标重复提交时原地更新
func (s *Store) UpsertRating(ctx context.Context, rating *database.Rating) (*database.Rating, error) {
	if rating.Stars < database.MinStars || rating.Stars > database.MaxStars {
		return nil, errorx.NewValidation("stars must be in [%d,%d], got %d",
			database.MinStars, database.MaxStars, rating.Stars)
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_type"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stars", "review_text", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}
	return s.GetRating(ctx, rating.UserId, database.Target{ContentType: rating.ContentType, ContentId: rating.ContentId})
}

func (s *Store) DeleteRating(ctx context.Context, userId int64, target database.Target) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userId, target.ContentType, target.ContentId).
		Delete(&database.Rating{})
	if res.Error != nil {
		return fmt.Errorf("delete rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errorx.NewNotFound("rating not found")
	}
	return nil
}
