package model

import "time"

// NotificationType tags why a notification was created.
type NotificationType string

const (
	NotificationNewComment NotificationType = "NEW_COMMENT_ON_YOUR_POST"
	NotificationNewReply   NotificationType = "NEW_REPLY_TO_YOUR_COMMENT"
)

// String returns the string representation of the notification type.
func (t NotificationType) String() string {
	return string(t)
}

// IsValid checks whether the notification type is a known value.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationNewComment, NotificationNewReply:
		return true
	}
	return false
}

// Notification records that NotifierID commented on or replied to content
// owned by UserID. Rows are written as a side effect of comment creation
// and never change afterward, except ReadAt once the recipient has seen
// them.
type Notification struct {
	ID         string           `json:"id"`
	NotifierID string           `json:"notifierId"`
	UserID     string           `json:"userId"`
	Type       NotificationType `json:"type"`
	PostID     string           `json:"postId"`
	CommentID  string           `json:"commentId"`
	CreatedAt  time.Time        `json:"createdAt"`
	ReadAt     *time.Time       `json:"readAt,omitempty"`
}
