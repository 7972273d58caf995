// Package turn 实现两种玩法共用的回合状态机。
package turn

import (
	"github.com/palemoky/secret-duel/internal/apperrors"
)

// Controller 回合控制器
//
// 只有当前玩家的操作会被接受；是否结束回合由具体玩法决定并调用 Advance。
type Controller struct {
	order []string
	index int
}

// NewController 以入座顺序创建回合控制器
func NewController(order []string) *Controller {
	return &Controller{order: append([]string(nil), order...)}
}

// Current 当前可操作的玩家
func (c *Controller) Current() string {
	if len(c.order) == 0 {
		return ""
	}
	return c.order[c.index]
}

// Index 当前回合游标
func (c *Controller) Index() int {
	return c.index
}

// Order 回合顺序（副本）
func (c *Controller) Order() []string {
	return append([]string(nil), c.order...)
}

// Check 校验提交者是否为当前玩家
func (c *Controller) Check(playerID string) error {
	if playerID == "" || playerID != c.Current() {
		return apperrors.ErrNotYourTurn
	}
	return nil
}

// Advance 轮到下一位玩家
func (c *Controller) Advance() {
	if len(c.order) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.order)
}

// Contains 玩家是否参与本局
func (c *Controller) Contains(playerID string) bool {
	return c.Seat(playerID) >= 0
}

// Seat 玩家座位号，不在本局返回 -1
func (c *Controller) Seat(playerID string) int {
	for i, id := range c.order {
		if id == playerID {
			return i
		}
	}
	return -1
}

// Opponent 两人局中的对手
func (c *Controller) Opponent(playerID string) string {
	for _, id := range c.order {
		if id != playerID {
			return id
		}
	}
	return ""
}
