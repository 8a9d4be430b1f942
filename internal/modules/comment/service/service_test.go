package comment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	commentDto "github.com/playverse/community-backend/internal/modules/comment/dto"
	commentRepo "github.com/playverse/community-backend/internal/modules/comment/repository"
	notifRepo "github.com/playverse/community-backend/internal/modules/notification/repository"
	notifService "github.com/playverse/community-backend/internal/modules/notification/service"
	"github.com/playverse/community-backend/internal/testutil"
	"github.com/playverse/community-backend/pkg/apperror"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type commentFixture struct {
	db    *gorm.DB
	svc   CommentService
	notif notifService.NotificationService
	alice *entity.User
	bob   *entity.User
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	notifications := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), nil)
	svc := NewCommentService(commentRepo.NewCommentRepository(db), notifications, nil)

	return &commentFixture{
		db:    db,
		svc:   svc,
		notif: notifications,
		alice: testutil.NewTestUser(t, db, "alice"),
		bob:   testutil.NewTestUser(t, db, "bob"),
	}
}

func (f *commentFixture) create(t *testing.T, authorID uuid.UUID, contentID uuid.UUID, content string, parentID *uuid.UUID) *commentDto.CommentResponse {
	t.Helper()

	resp, err := f.svc.CreateComment(context.Background(), authorID, commentDto.CreateCommentRequest{
		Content:     content,
		ContentID:   contentID,
		ContentType: entity.ContentForumThread,
		ParentID:    parentID,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateComment_SanitizesContent(t *testing.T) {
	f := newCommentFixture(t)
	contentID := uuid.New()

	resp := f.create(t, f.alice.ID, contentID, `hello <script>alert("x")</script>world`, nil)
	require.NotContains(t, resp.Content, "<script>")
	require.Equal(t, "alice", resp.Author.Username)

	// Markup-only input has nothing left after sanitization.
	_, err := f.svc.CreateComment(context.Background(), f.alice.ID, commentDto.CreateCommentRequest{
		Content:     "<img src=x onerror=alert(1)>",
		ContentID:   contentID,
		ContentType: entity.ContentForumThread,
	})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCreateComment_ReplyNotifiesParentAuthor(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	contentID := uuid.New()

	parent := f.create(t, f.alice.ID, contentID, "first!", nil)
	f.create(t, f.bob.ID, contentID, "welcome", &parent.ID)

	notifications, err := f.notif.GetNotifications(ctx, f.alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationCommentReply, notifications[0].Type)
	require.Equal(t, f.bob.ID, *notifications[0].ActorID)

	// Replying to your own comment stays silent.
	f.create(t, f.alice.ID, contentID, "bump", &parent.ID)
	count, err := f.notif.UnreadCount(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestCreateComment_ParentValidation(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	contentID := uuid.New()

	missing := uuid.New()
	_, err := f.svc.CreateComment(ctx, f.alice.ID, commentDto.CreateCommentRequest{
		Content:     "orphan",
		ContentID:   contentID,
		ContentType: entity.ContentForumThread,
		ParentID:    &missing,
	})
	require.ErrorIs(t, err, apperror.ErrNotFound)

	// Parent on different content cannot be replied to from here.
	parent := f.create(t, f.alice.ID, uuid.New(), "elsewhere", nil)
	_, err = f.svc.CreateComment(ctx, f.bob.ID, commentDto.CreateCommentRequest{
		Content:     "cross-post",
		ContentID:   contentID,
		ContentType: entity.ContentForumThread,
		ParentID:    &parent.ID,
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestCreateComment_ReplyToDeletedParent(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	contentID := uuid.New()

	parent := f.create(t, f.alice.ID, contentID, "soon gone", nil)
	require.NoError(t, f.svc.DeleteComment(ctx, f.alice.ID, parent.ID))

	_, err := f.svc.CreateComment(ctx, f.bob.ID, commentDto.CreateCommentRequest{
		Content:     "too late",
		ContentID:   contentID,
		ContentType: entity.ContentForumThread,
		ParentID:    &parent.ID,
	})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateComment_OwnershipAndDeletion(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	contentID := uuid.New()

	comment := f.create(t, f.alice.ID, contentID, "draft", nil)

	_, err := f.svc.UpdateComment(ctx, f.bob.ID, comment.ID, commentDto.UpdateCommentRequest{Content: "hijack"})
	require.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := f.svc.UpdateComment(ctx, f.alice.ID, comment.ID, commentDto.UpdateCommentRequest{Content: "final"})
	require.NoError(t, err)
	require.Equal(t, "final", updated.Content)

	require.NoError(t, f.svc.DeleteComment(ctx, f.alice.ID, comment.ID))

	// Deletion is terminal: no further edits or deletes.
	_, err = f.svc.UpdateComment(ctx, f.alice.ID, comment.ID, commentDto.UpdateCommentRequest{Content: "zombie"})
	require.ErrorIs(t, err, apperror.ErrInvalidState)
	err = f.svc.DeleteComment(ctx, f.alice.ID, comment.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidState)
}

func TestDeleteComment_OnlyAuthor(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment := f.create(t, f.alice.ID, uuid.New(), "mine", nil)
	err := f.svc.DeleteComment(ctx, f.bob.ID, comment.ID)
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestListComments_SortAndPagination(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	contentID := uuid.New()

	first := f.create(t, f.alice.ID, contentID, "first", nil)
	second := f.create(t, f.bob.ID, contentID, "second", nil)
	f.create(t, f.alice.ID, contentID, "third", nil)
	f.create(t, f.alice.ID, contentID, "reply to second", &second.ID)

	// Deleted replies do not count toward reply_count.
	deleted := f.create(t, f.bob.ID, contentID, "gone", &first.ID)
	require.NoError(t, f.svc.DeleteComment(ctx, f.bob.ID, deleted.ID))

	list, err := f.svc.ListComments(ctx, nil, commentDto.CommentFilter{
		ContentID:   contentID.String(),
		ContentType: entity.ContentForumThread,
		SortBy:      commentDto.SortByReplies,
		SortOrder:   "desc",
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), list.TotalComments)
	require.Equal(t, second.ID, list.Comments[0].ID)
	require.Equal(t, int64(1), list.Comments[0].ReplyCount)
	require.Equal(t, int64(0), list.Comments[1].ReplyCount)

	page, err := f.svc.ListComments(ctx, nil, commentDto.CommentFilter{
		ContentID:   contentID.String(),
		ContentType: entity.ContentForumThread,
		Page:        2,
		Limit:       2,
	})
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	require.Equal(t, 2, page.Pagination.TotalPages)
	require.Equal(t, int64(3), page.Pagination.TotalItems)
}

func TestListComments_UserComment(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	contentID := uuid.New()

	f.create(t, f.alice.ID, contentID, "not bob", nil)
	mine := f.create(t, f.bob.ID, contentID, "bob speaks", nil)
	f.create(t, f.bob.ID, contentID, "bob again", nil)

	list, err := f.svc.ListComments(ctx, &f.bob.ID, commentDto.CommentFilter{
		ContentID:   contentID.String(),
		ContentType: entity.ContentForumThread,
	})
	require.NoError(t, err)
	require.NotNil(t, list.UserComment)
	require.Equal(t, mine.ID, list.UserComment.ID)

	other := uuid.New()
	empty, err := f.svc.ListComments(ctx, &f.bob.ID, commentDto.CommentFilter{
		ContentID:   other.String(),
		ContentType: entity.ContentForumThread,
	})
	require.NoError(t, err)
	require.Nil(t, empty.UserComment)
}
