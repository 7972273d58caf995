// Package dice 提供可注入的骰子来源，测试中可替换为固定序列。
package dice

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Faces 骰子面数
const Faces = 6

// Roller 骰子来源
type Roller interface {
	Roll() int
}

// Random 进程级的均匀随机骰子，可通过种子复现
type Random struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewRandom 创建随机骰子，seed 为 0 时使用当前时间
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Roll 返回 [1,6] 的点数
func (r *Random) Roll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(Faces) + 1
}

// Sequence 按顺序循环返回固定点数
type Sequence struct {
	values []int
	next   int
	mu     sync.Mutex
}

// NewSequence 创建固定序列骰子
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Roll 返回序列中的下一个点数
func (s *Sequence) Roll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 1
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
