// Package escrow 保管双方的秘密，并在对局结束时只向胜者揭晓败者的秘密一次。
package escrow

import (
	"strings"
	"sync"

	"github.com/palemoky/secret-duel/internal/apperrors"
)

// Escrow 秘密托管
type Escrow struct {
	secrets  map[string]string
	revealed bool
	mu       sync.Mutex
}

// New 创建秘密托管
func New() *Escrow {
	return &Escrow{secrets: make(map[string]string)}
}

// Set 设置（覆盖）玩家秘密，去除首尾空白后为空则拒绝
func (e *Escrow) Set(playerID, secret string) error {
	if strings.TrimSpace(secret) == "" {
		return apperrors.ErrEmptySecret
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.secrets[playerID] = secret
	return nil
}

// IsSet 玩家是否已设置秘密
func (e *Escrow) IsSet(playerID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.secrets[playerID]
	return ok
}

// Forget 删除玩家秘密（玩家离开房间时）
func (e *Escrow) Forget(playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.secrets, playerID)
}

// Reveal 返回败者的秘密，每局只会成功一次
// 败者未设置秘密时返回空字符串，不影响结束流程
func (e *Escrow) Reveal(winnerID, loserID string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.revealed || winnerID == "" || winnerID == loserID {
		return "", false
	}
	e.revealed = true
	return e.secrets[loserID], true
}
