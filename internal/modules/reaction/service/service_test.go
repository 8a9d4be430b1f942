package reaction

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/playverse/community-backend/internal/entity"
	reactionDto "github.com/playverse/community-backend/internal/modules/reaction/dto"
	reactionRepo "github.com/playverse/community-backend/internal/modules/reaction/repository"
	"github.com/playverse/community-backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newReactionService(t *testing.T) (ReactionService, *entity.User, *entity.User) {
	t.Helper()

	db := testutil.NewTestDB(t)
	alice := testutil.NewTestUser(t, db, "alice")
	bob := testutil.NewTestUser(t, db, "bob")
	svc := NewReactionService(reactionRepo.NewReactionRepository(db), nil)
	return svc, alice, bob
}

func TestToggleReaction_Lifecycle(t *testing.T) {
	svc, alice, _ := newReactionService(t)
	ctx := context.Background()
	contentID := uuid.New()

	req := reactionDto.ReactionToggleRequest{
		ContentID:   contentID,
		ContentType: entity.ContentForumThread,
		Emoji:       "👍",
	}

	resp, err := svc.ToggleReaction(ctx, alice.ID, req)
	require.NoError(t, err)
	require.Equal(t, reactionDto.ActionCreated, resp.Action)
	require.NotNil(t, resp.Reaction)
	require.Equal(t, "👍", resp.Reaction.Emoji)

	// Same emoji again removes the reaction.
	resp, err = svc.ToggleReaction(ctx, alice.ID, req)
	require.NoError(t, err)
	require.Equal(t, reactionDto.ActionRemoved, resp.Action)
	require.Nil(t, resp.Reaction)

	reactions, err := svc.GetReactions(ctx, &alice.ID, contentID, entity.ContentForumThread)
	require.NoError(t, err)
	require.Equal(t, int64(0), reactions.TotalReactions)
	require.Nil(t, reactions.UserReaction)
}

func TestToggleReaction_SwitchEmoji(t *testing.T) {
	svc, alice, _ := newReactionService(t)
	ctx := context.Background()
	contentID := uuid.New()

	req := reactionDto.ReactionToggleRequest{
		ContentID:   contentID,
		ContentType: entity.ContentNewsPost,
		Emoji:       "👍",
	}
	_, err := svc.ToggleReaction(ctx, alice.ID, req)
	require.NoError(t, err)

	req.Emoji = "❤️"
	resp, err := svc.ToggleReaction(ctx, alice.ID, req)
	require.NoError(t, err)
	require.Equal(t, reactionDto.ActionUpdated, resp.Action)
	require.Equal(t, "❤️", resp.Reaction.Emoji)

	// One reaction per user per content: only the new emoji remains.
	reactions, err := svc.GetReactions(ctx, &alice.ID, contentID, entity.ContentNewsPost)
	require.NoError(t, err)
	require.Equal(t, int64(1), reactions.TotalReactions)
	require.NotContains(t, reactions.Reactions, "👍")
	require.Equal(t, int64(1), reactions.Reactions["❤️"].Count)
	require.NotNil(t, reactions.UserReaction)
	require.Equal(t, "❤️", *reactions.UserReaction)
}

func TestGetReactions_GroupsByEmoji(t *testing.T) {
	svc, alice, bob := newReactionService(t)
	ctx := context.Background()
	contentID := uuid.New()

	for _, tc := range []struct {
		userID uuid.UUID
		emoji  string
	}{
		{alice.ID, "🔥"},
		{bob.ID, "🔥"},
	} {
		_, err := svc.ToggleReaction(ctx, tc.userID, reactionDto.ReactionToggleRequest{
			ContentID:   contentID,
			ContentType: entity.ContentLFGPost,
			Emoji:       tc.emoji,
		})
		require.NoError(t, err)
	}

	reactions, err := svc.GetReactions(ctx, &bob.ID, contentID, entity.ContentLFGPost)
	require.NoError(t, err)
	require.Equal(t, int64(2), reactions.TotalReactions)
	require.Equal(t, int64(2), reactions.Reactions["🔥"].Count)
	require.Len(t, reactions.Reactions["🔥"].Users, 2)
	require.Equal(t, "alice", reactions.Reactions["🔥"].Users[0].Username)
	require.Equal(t, "🔥", *reactions.UserReaction)
}

func TestGetReactions_ScopedToContent(t *testing.T) {
	svc, alice, _ := newReactionService(t)
	ctx := context.Background()
	contentID := uuid.New()

	_, err := svc.ToggleReaction(ctx, alice.ID, reactionDto.ReactionToggleRequest{
		ContentID:   contentID,
		ContentType: entity.ContentForumThread,
		Emoji:       "👍",
	})
	require.NoError(t, err)

	// Same id under a different content type is different content.
	reactions, err := svc.GetReactions(ctx, nil, contentID, entity.ContentForumReply)
	require.NoError(t, err)
	require.Equal(t, int64(0), reactions.TotalReactions)
	require.Empty(t, reactions.Reactions)
}
