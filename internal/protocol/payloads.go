package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	Name     string `json:"name"`
	GameKind string `json:"gameKind"` // race / capture
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RoomPayload 只携带房间号的请求（start_game / roll_dice / resign / leave_room）
type RoomPayload struct {
	Room string `json:"room"`
}

// SetSecretPayload 设置秘密请求
type SetSecretPayload struct {
	Room   string `json:"room"`
	Secret string `json:"secret"`
}

// MoveTokenPayload 移动棋子请求
type MoveTokenPayload struct {
	Room       string `json:"room"`
	TokenIndex int    `json:"tokenIndex"`
}

// Square 棋盘坐标
type Square struct {
	R int `json:"r"`
	C int `json:"c"`
}

// ChessMovePayload 走棋请求
type ChessMovePayload struct {
	Room string `json:"room"`
	From Square `json:"from"`
	To   Square `json:"to"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID string `json:"playerId"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"clientTimestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"serverTimestamp"` // 服务器时间戳（毫秒）
}

// OnlineCountPayload 在线人数
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// PlayerInfo 玩家公开信息（不含秘密内容）
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsHost    bool   `json:"isHost"`
	SecretSet bool   `json:"secretSet"`
}

// RoomInfoPayload 房间信息（room_created / room_joined）
type RoomInfoPayload struct {
	Code     string       `json:"code"`
	GameKind string       `json:"gameKind"`
	Players  []PlayerInfo `json:"players"`
}

// PlayersUpdatePayload 成员与准备状态
type PlayersUpdatePayload struct {
	Players []PlayerInfo `json:"players"`
}

// StartAckPayload 游戏开始
type StartAckPayload struct {
	Code     string       `json:"code"`
	GameKind string       `json:"gameKind"`
	State    any          `json:"state"`
	Players  []PlayerInfo `json:"players"`
}

// StateUpdatePayload 局面快照
type StateUpdatePayload struct {
	State any `json:"state"`
}

// DiceResultPayload 骰子结果
type DiceResultPayload struct {
	PlayerID string `json:"playerId"`
	Value    int    `json:"value"`
	Movable  []int  `json:"movable"` // 可移动的棋子编号（提示用）
}

// GameOverPayload 游戏结束
type GameOverPayload struct {
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
	Reason     string `json:"reason"` // win / resign / forfeit
}

// RevealSecretPayload 揭晓败者秘密（仅发给胜者）
type RevealSecretPayload struct {
	Secret string `json:"secret"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
