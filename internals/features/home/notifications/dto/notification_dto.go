package dto

type ListNotificationQuery struct {
	Unread  bool `query:"unread"`
	Page    int  `query:"page"`
	PerPage int  `query:"per_page"`
}
