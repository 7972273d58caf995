package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing           MessageType = "ping"             // 心跳 ping
	MsgGetOnlineCount MessageType = "get_online_count" // 获取在线人数

	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgLeaveRoom  MessageType = "leave_room"  // 离开房间
	MsgSetSecret  MessageType = "set_secret"  // 设置秘密
	MsgStartGame  MessageType = "start_game"  // 房主开始游戏

	// 游戏操作
	MsgRollDice  MessageType = "roll_dice"  // 掷骰子（飞行棋）
	MsgMoveToken MessageType = "move_token" // 移动棋子（飞行棋）
	MsgChessMove MessageType = "chess_move" // 走棋（象棋）
	MsgResign    MessageType = "resign"     // 认输
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected   MessageType = "connected"    // 连接成功
	MsgPong        MessageType = "pong"         // 心跳 pong
	MsgOnlineCount MessageType = "online_count" // 在线人数

	// 房间相关
	MsgRoomCreated   MessageType = "room_created"   // 房间创建成功
	MsgRoomJoined    MessageType = "room_joined"    // 加入房间成功
	MsgJoinError     MessageType = "join_error"     // 加入失败
	MsgPlayersUpdate MessageType = "players_update" // 成员/准备状态更新
	MsgLeftRoom      MessageType = "left_room"      // 已离开房间

	// 游戏流程
	MsgStartAck     MessageType = "start_ack"     // 游戏开始
	MsgStartDenied  MessageType = "start_denied"  // 开始被拒绝
	MsgDiceResult   MessageType = "dice_result"   // 骰子结果
	MsgStateUpdate  MessageType = "state_update"  // 局面更新
	MsgIllegalMove  MessageType = "illegal_move"  // 非法走法
	MsgInvalidMove  MessageType = "invalid_move"  // 无效走法（起点无子/非己方棋子）
	MsgNotYourTurn  MessageType = "not_your_turn" // 还没轮到您
	MsgNoDice       MessageType = "no_dice"       // 尚未掷骰
	MsgGameOver     MessageType = "game_over"     // 游戏结束
	MsgRevealSecret MessageType = "reveal_secret" // 揭晓秘密（仅胜者）

	// 错误
	MsgError MessageType = "error" // 错误消息
)
