package dto

const (
	ActionFollow        = "follow"
	ActionUnfollow      = "unfollow"
	ActionCancelRequest = "cancel_request"
	ActionAccept        = "accept"
	ActionReject        = "reject"
)

const (
	StatusNone            = "none"
	StatusFollowing       = "following"
	StatusRequestSent     = "request_sent"
	StatusRequestReceived = "request_received"
)

type FollowActionRequest struct {
	Action string `json:"action" binding:"required,oneof=follow unfollow cancel_request accept reject"`
}

type FollowStatusResponse struct {
	Status         string `json:"status"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
}
