package follow

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	followDto "github.com/playverse/community-backend/internal/modules/follow/dto"
	followRepo "github.com/playverse/community-backend/internal/modules/follow/repository"
	notifService "github.com/playverse/community-backend/internal/modules/notification/service"
	userRepo "github.com/playverse/community-backend/internal/modules/user/repository"
	"github.com/playverse/community-backend/pkg/apperror"
)

type FollowService interface {
	Follow(ctx context.Context, senderID, targetID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error
	CancelRequest(ctx context.Context, senderID, targetID uuid.UUID) error
	Accept(ctx context.Context, receiverID, senderID uuid.UUID) error
	Reject(ctx context.Context, receiverID, senderID uuid.UUID) error
	Status(ctx context.Context, viewerID, targetID uuid.UUID) (*followDto.FollowStatusResponse, error)
}

type followService struct {
	repo                followRepo.FollowRepository
	userRepo            userRepo.UserRepository
	notificationService notifService.NotificationService
}

func NewFollowService(repo followRepo.FollowRepository, userRepo userRepo.UserRepository, notificationService notifService.NotificationService) FollowService {
	return &followService{
		repo:                repo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *followService) Follow(ctx context.Context, senderID, targetID uuid.UUID) error {
	if senderID == targetID {
		return fmt.Errorf("%w: you cannot follow yourself", apperror.ErrBadRequest)
	}

	exists, err := s.userRepo.Exists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: user not found", apperror.ErrNotFound)
	}

	following, err := s.repo.EdgeExists(ctx, senderID, targetID)
	if err != nil {
		return err
	}
	if following {
		return fmt.Errorf("%w: already following this user", apperror.ErrConflict)
	}

	// Any existing request row blocks a new one, including resolved ones.
	request, err := s.repo.FindRequest(ctx, senderID, targetID)
	if err != nil {
		return err
	}
	if request != nil {
		return fmt.Errorf("%w: a follow request already exists", apperror.ErrConflict)
	}

	if err := s.repo.CreateRequest(ctx, &entity.FollowRequest{
		SenderID:   senderID,
		ReceiverID: targetID,
		Status:     entity.FollowStatusPending,
	}); err != nil {
		return err
	}

	s.notify(ctx, targetID, senderID, entity.NotificationFollowRequest,
		"New follow request", "Someone wants to follow you")
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	return s.repo.DeleteEdge(ctx, followerID, targetID)
}

func (s *followService) CancelRequest(ctx context.Context, senderID, targetID uuid.UUID) error {
	return s.repo.CancelRequest(ctx, senderID, targetID)
}

func (s *followService) Accept(ctx context.Context, receiverID, senderID uuid.UUID) error {
	if err := s.repo.Resolve(ctx, senderID, receiverID, true); err != nil {
		return err
	}

	s.notify(ctx, senderID, receiverID, entity.NotificationFollowAccepted,
		"Follow request accepted", "Your follow request was accepted")
	return nil
}

func (s *followService) Reject(ctx context.Context, receiverID, senderID uuid.UUID) error {
	if err := s.repo.Resolve(ctx, senderID, receiverID, false); err != nil {
		return err
	}

	s.notify(ctx, senderID, receiverID, entity.NotificationFollowRejected,
		"Follow request declined", "Your follow request was declined")
	return nil
}

func (s *followService) Status(ctx context.Context, viewerID, targetID uuid.UUID) (*followDto.FollowStatusResponse, error) {
	status := followDto.StatusNone

	following, err := s.repo.EdgeExists(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if following {
		status = followDto.StatusFollowing
	} else {
		sent, err := s.repo.FindRequest(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
		received, err := s.repo.FindRequest(ctx, targetID, viewerID)
		if err != nil {
			return nil, err
		}
		if sent != nil && sent.Status == entity.FollowStatusPending {
			status = followDto.StatusRequestSent
		} else if received != nil && received.Status == entity.FollowStatusPending {
			status = followDto.StatusRequestReceived
		}
	}

	followerCount, err := s.repo.CountFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.repo.CountFollowing(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &followDto.FollowStatusResponse{
		Status:         status,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}

// notify dispatches after the primary mutation committed; failures are logged
// and swallowed.
func (s *followService) notify(ctx context.Context, userID, actorID uuid.UUID, notifType, title, message string) {
	notification := &entity.Notification{
		UserID:  userID,
		ActorID: &actorID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if err := s.notificationService.CreateNotification(ctx, notification); err != nil {
		log.Printf("failed to send %s notification: %v", notifType, err)
	}
}
