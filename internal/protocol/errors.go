package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制

	// 成员类
	ErrCodeRoomNotFound       = 2001
	ErrCodeRoomFull           = 2002
	ErrCodeNotInRoom          = 2003
	ErrCodeRoomAlreadyStarted = 2004 // 加入时房间已开局
	ErrCodeNotHost            = 2005

	// 准备类
	ErrCodeEmptySecret    = 2101
	ErrCodeNotReady       = 2102
	ErrCodeAlreadyStarted = 2103 // 重复开局
	ErrCodeGameNotStart   = 2104

	// 回合类
	ErrCodeNotYourTurn        = 3001
	ErrCodeNoRollPending      = 3002
	ErrCodeRollAlreadyPending = 3003
	ErrCodeWrongGame          = 3004
	ErrCodeGameOver           = 3005

	// 合法性类
	ErrCodeInvalidTokenIndex = 4001
	ErrCodeIllegalMove       = 4002
	ErrCodeNoPieceAtSource   = 4003
	ErrCodeNotYourPiece      = 4004

	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:            "未知错误",
	ErrCodeInvalidMsg:         "无效的消息格式",
	ErrCodeRateLimit:          "请求过于频繁",
	ErrCodeRoomNotFound:       "房间不存在",
	ErrCodeRoomFull:           "房间已满",
	ErrCodeNotInRoom:          "您不在房间中",
	ErrCodeRoomAlreadyStarted: "房间已开局",
	ErrCodeNotHost:            "只有房主可以开始游戏",
	ErrCodeEmptySecret:        "秘密不能为空",
	ErrCodeNotReady:           "需要两名玩家且都已设置秘密",
	ErrCodeAlreadyStarted:     "游戏已开始",
	ErrCodeGameNotStart:       "游戏尚未开始",
	ErrCodeNotYourTurn:        "还没轮到您",
	ErrCodeNoRollPending:      "请先掷骰子",
	ErrCodeRollAlreadyPending: "本回合已掷过骰子",
	ErrCodeWrongGame:          "当前游戏不支持该操作",
	ErrCodeGameOver:           "游戏已结束",
	ErrCodeInvalidTokenIndex:  "无效的棋子编号",
	ErrCodeIllegalMove:        "非法走法",
	ErrCodeNoPieceAtSource:    "起点没有棋子",
	ErrCodeNotYourPiece:       "这不是您的棋子",
	ErrCodeServerMaintenance:  "服务器维护中",
}
