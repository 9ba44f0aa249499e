package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mission-tool/blog-web/internal/logger"
)

// Snapshot 某个浏览器会话的登录状态快照
type Snapshot struct {
	LoggedIn bool   `json:"logged_in"`
	Version  uint64 `json:"version"`
}

type browserState struct {
	snapshot    Snapshot
	subscribers map[chan Snapshot]struct{}
	touchedAt   time.Time
}

// Hub 进程内的会话状态中心
// 登录与登出只在这里发布，订阅者总能拿到最新快照
type Hub struct {
	mu       sync.Mutex
	states   map[string]*browserState
	idleTTL  time.Duration
	interval time.Duration
	now      func() time.Time
	stopped  bool
}

// NewHub 创建会话状态中心
func NewHub(idleTTL, pruneInterval time.Duration) *Hub {
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	if pruneInterval <= 0 {
		pruneInterval = time.Minute
	}
	return &Hub{
		states:   make(map[string]*browserState),
		idleTTL:  idleTTL,
		interval: pruneInterval,
		now:      time.Now,
	}
}

func (h *Hub) stateLocked(browserID string) *browserState {
	state, ok := h.states[browserID]
	if !ok {
		state = &browserState{subscribers: make(map[chan Snapshot]struct{})}
		h.states[browserID] = state
	}
	state.touchedAt = h.now()
	return state
}

// Snapshot 读取当前快照
func (h *Hub) Snapshot(browserID string) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	state, ok := h.states[browserID]
	if !ok || state.snapshot.Version == 0 {
		return Snapshot{}, false
	}
	return state.snapshot, true
}

// Observe 记录请求时看到的登录状态，与已知状态不同才发布
func (h *Hub) Observe(browserID string, loggedIn bool) Snapshot {
	browserID = strings.TrimSpace(browserID)
	if browserID == "" {
		return Snapshot{LoggedIn: loggedIn}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	state := h.stateLocked(browserID)
	if state.snapshot.Version != 0 && state.snapshot.LoggedIn == loggedIn {
		return state.snapshot
	}
	return h.publishLocked(state, loggedIn)
}

// Publish 发布登录状态变化，版本号单调递增
func (h *Hub) Publish(browserID string, loggedIn bool) Snapshot {
	browserID = strings.TrimSpace(browserID)
	if browserID == "" {
		return Snapshot{LoggedIn: loggedIn}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.publishLocked(h.stateLocked(browserID), loggedIn)
}

func (h *Hub) publishLocked(state *browserState, loggedIn bool) Snapshot {
	state.snapshot = Snapshot{LoggedIn: loggedIn, Version: state.snapshot.Version + 1}
	for ch := range state.subscribers {
		deliver(ch, state.snapshot)
	}
	return state.snapshot
}

// deliver 只保留最新一条，慢订阅者不会阻塞发布方
func deliver(ch chan Snapshot, snapshot Snapshot) {
	select {
	case ch <- snapshot:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snapshot:
	default:
	}
}

// Subscribe 订阅浏览器会话状态，ctx 结束时通道关闭
// 已有快照时会先推送一次
func (h *Hub) Subscribe(ctx context.Context, browserID string) <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	browserID = strings.TrimSpace(browserID)

	h.mu.Lock()
	if h.stopped || browserID == "" {
		h.mu.Unlock()
		close(ch)
		return ch
	}
	state := h.stateLocked(browserID)
	state.subscribers[ch] = struct{}{}
	if state.snapshot.Version > 0 {
		deliver(ch, state.snapshot)
	}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		if current, ok := h.states[browserID]; ok {
			if _, subscribed := current.subscribers[ch]; subscribed {
				delete(current.subscribers, ch)
				current.touchedAt = h.now()
				close(ch)
			}
		}
	}()
	return ch
}

// Subscribers 当前订阅者数量
func (h *Hub) Subscribers(browserID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if state, ok := h.states[browserID]; ok {
		return len(state.subscribers)
	}
	return 0
}

// Prune 清理无订阅者且长时间未访问的会话状态
func (h *Hub) Prune(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	removed := 0
	for id, state := range h.states {
		if len(state.subscribers) > 0 {
			continue
		}
		if now.Sub(state.touchedAt) >= h.idleTTL {
			delete(h.states, id)
			removed++
		}
	}
	return removed
}

// Name 服务名称
func (h *Hub) Name() string {
	return "session-hub"
}

// Start 定期清理过期会话状态，直到 ctx 结束
func (h *Hub) Start(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := h.Prune(h.now()); removed > 0 {
				logger.Debugw("session_hub_pruned", "removed", removed)
			}
		}
	}
}

// Stop 关闭全部订阅
func (h *Hub) Stop(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for id, state := range h.states {
		for ch := range state.subscribers {
			delete(state.subscribers, ch)
			close(ch)
		}
		delete(h.states, id)
	}
	return nil
}
