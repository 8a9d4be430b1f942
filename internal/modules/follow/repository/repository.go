package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	notifRepo "github.com/playverse/community-backend/internal/modules/notification/repository"
	"github.com/playverse/community-backend/pkg/apperror"
	"gorm.io/gorm"
)

type FollowRepository interface {
	CreateRequest(ctx context.Context, request *entity.FollowRequest) error
	// FindRequest returns the request row for the ordered pair in any status,
	// or nil when none exists.
	FindRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*entity.FollowRequest, error)
	// CancelRequest deletes the pending request and retracts its notification
	// in one transaction.
	CancelRequest(ctx context.Context, senderID, receiverID uuid.UUID) error
	// Resolve flips a pending request to accepted or rejected; on accept it
	// also inserts the follow edge, atomically.
	Resolve(ctx context.Context, senderID, receiverID uuid.UUID, accept bool) error
	EdgeExists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	DeleteEdge(ctx context.Context, followerID, followingID uuid.UUID) error
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateRequest(ctx context.Context, request *entity.FollowRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *followRepository) FindRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*entity.FollowRequest, error) {
	var requests []entity.FollowRequest
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Limit(1).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return &requests[0], nil
}

func (r *followRepository) CancelRequest(ctx context.Context, senderID, receiverID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("sender_id = ? AND receiver_id = ? AND status = ?",
			senderID, receiverID, entity.FollowStatusPending).
			Delete(&entity.FollowRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: no pending follow request", apperror.ErrInvalidState)
		}

		// A cancelled request must not leave an actionable notification behind.
		return notifRepo.SoftDeleteFollowRequestNotice(tx, receiverID, senderID)
	})
}

func (r *followRepository) Resolve(ctx context.Context, senderID, receiverID uuid.UUID, accept bool) error {
	status := entity.FollowStatusRejected
	if accept {
		status = entity.FollowStatusAccepted
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.FollowRequest{}).
			Where("sender_id = ? AND receiver_id = ? AND status = ?",
				senderID, receiverID, entity.FollowStatusPending).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: no pending follow request", apperror.ErrInvalidState)
		}

		if accept {
			return tx.Create(&entity.Follow{
				FollowerID:  senderID,
				FollowingID: receiverID,
			}).Error
		}
		return nil
	})
}

func (r *followRepository) EdgeExists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) DeleteEdge(ctx context.Context, followerID, followingID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&entity.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: not following this user", apperror.ErrInvalidState)
	}
	return nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
