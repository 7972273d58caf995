package room

// Status 房间状态
type Status string

const (
	StatusLobby      Status = "lobby"       // 等待玩家与秘密
	StatusInProgress Status = "in_progress" // 对局中
	StatusFinished   Status = "finished"    // 已结束，等待解散
)
