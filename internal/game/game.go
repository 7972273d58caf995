// Package game 定义两种玩法共同的对局能力：接受操作、产出快照、报告终局。
package game

import "strings"

// Kind 玩法
type Kind string

const (
	KindRace    Kind = "race"    // 飞行棋
	KindCapture Kind = "capture" // 简化象棋
)

// ParseKind 解析玩法名称，兼容旧客户端的 ludo / chess，空字符串默认飞行棋
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "race", "ludo":
		return KindRace, true
	case "capture", "chess":
		return KindCapture, true
	default:
		return "", false
	}
}

// Status 对局状态
type Status string

const (
	StatusActive Status = "active"
	StatusOver   Status = "over"
)

// 终局原因
const (
	ReasonWin     = "win"
	ReasonResign  = "resign"
	ReasonForfeit = "forfeit"
)

// Outcome 一次操作后的终局信息，Over 为 false 时其余字段为空
type Outcome struct {
	Over   bool
	Winner string
	Loser  string
	Reason string
}

// Game 对局，具体实现只有 race.Game 与 capture.Game
type Game interface {
	Kind() Kind
	Status() Status
	Winner() string
	CurrentPlayer() string
	// Snapshot 返回可直接序列化下发给双方的局面
	Snapshot() any
	// Concede 让 playerID 立即判负（认输、离开、掉线）
	Concede(playerID string) (Outcome, error)
}
