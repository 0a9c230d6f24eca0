package model

// NotificationFilter holds criteria for querying a user's notifications.
type NotificationFilter struct {
	UnreadOnly bool `json:"unreadOnly,omitempty"`
	Limit      int  `json:"limit,omitempty"`
	Offset     int  `json:"offset,omitempty"`
}
