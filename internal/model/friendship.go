package model

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	// FriendshipBlocked 数据层保留的枚举值，目前没有任何路由会设置它
	FriendshipBlocked FriendshipStatus = "blocked"
)

// Friendship 好友关系。UserID 是发起方，FriendID 是接收方；
// 同一对用户（不分方向）至多一条记录，accepted 后对双方等价
type Friendship struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	FriendID  string           `json:"friendId"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Involves 判断 a、b 是否正是这条关系的两端（不分方向）
func (f Friendship) Involves(a, b string) bool {
	return (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a)
}
