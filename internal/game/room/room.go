package room

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/palemoky/secret-duel/internal/game"
	"github.com/palemoky/secret-duel/internal/game/capture"
	"github.com/palemoky/secret-duel/internal/game/dice"
	"github.com/palemoky/secret-duel/internal/game/escrow"
	"github.com/palemoky/secret-duel/internal/game/race"
	"github.com/palemoky/secret-duel/internal/server/storage"
	"github.com/palemoky/secret-duel/internal/types"
)

const (
	roomCodeLength = 6                                      // 房间号长度
	roomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" // 房间号字符集
	maxPlayers     = 2
	maxNameLength  = 20
	defaultName    = "Player"
)

// RoomPlayer 房间中的玩家
type RoomPlayer struct {
	Client types.ClientInterface
	Name   string
	IsHost bool
}

// Room 游戏房间
//
// 所有字段由 mu 保护；需要同时持有注册表锁时，先锁房间再锁注册表。
type Room struct {
	Code      string        // 房间号
	Kind      game.Kind     // 玩法
	Status    Status        // 房间状态
	Players   []*RoomPlayer // 入座顺序即回合顺序
	Game      game.Game     // 开局后才有
	CreatedAt time.Time

	escrow *escrow.Escrow
	closed bool // 已从注册表移除
	mu     sync.Mutex
}

func newRoom(code string, kind game.Kind) *Room {
	return &Room{
		Code:      code,
		Kind:      kind,
		Status:    StatusLobby,
		Players:   make([]*RoomPlayer, 0, maxPlayers),
		CreatedAt: time.Now(),
		escrow:    escrow.New(),
	}
}

// RoomManager 房间注册表
type RoomManager struct {
	store       storage.RoomStore
	roller      dice.Roller
	roomTimeout time.Duration

	rooms  map[string]*Room
	byConn map[string]string // 连接 ID -> 房间号
	mu     sync.RWMutex

	pending   map[string]storeOp // 房间号 -> 最新的镜像写入
	pendingMu sync.Mutex
	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewRoomManager 创建房间管理器，store 可以为 nil
func NewRoomManager(store storage.RoomStore, roller dice.Roller, roomTimeout time.Duration) *RoomManager {
	if roller == nil {
		roller = dice.NewRandom(0)
	}
	rm := &RoomManager{
		store:       store,
		roller:      roller,
		roomTimeout: roomTimeout,
		rooms:       make(map[string]*Room),
		byConn:      make(map[string]string),
		pending:     make(map[string]storeOp),
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	// 启动房间清理协程
	go rm.cleanupLoop()
	if store != nil {
		go rm.storeWriter()
	}

	return rm
}

// Close 停止清理与镜像写入协程
func (rm *RoomManager) Close() {
	rm.closeOnce.Do(func() { close(rm.done) })
}

// sanitizeName 去掉首尾空白，空名字用默认值，超长截断
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name
}

// newGame 按玩法创建对局
func newGame(kind game.Kind, order []string, roller dice.Roller) game.Game {
	if kind == game.KindCapture {
		return capture.New(order)
	}
	return race.New(order, roller)
}

// player 返回玩家及其座位，不在房间时返回 -1
func (r *Room) player(id string) (*RoomPlayer, int) {
	for i, p := range r.Players {
		if p.Client.GetID() == id {
			return p, i
		}
	}
	return nil, -1
}

// order 入座顺序的连接 ID
func (r *Room) order() []string {
	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.Client.GetID()
	}
	return ids
}

// ready 两名玩家都已设置秘密
func (r *Room) ready() bool {
	if len(r.Players) != maxPlayers {
		return false
	}
	for _, p := range r.Players {
		if !r.escrow.IsSet(p.Client.GetID()) {
			return false
		}
	}
	return true
}

// nameOf 房间内玩家名字
func (r *Room) nameOf(id string) string {
	if p, _ := r.player(id); p != nil {
		return p.Name
	}
	return ""
}
