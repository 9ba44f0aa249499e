package session

import (
	"net/http"
	"time"

	"github.com/mission-tool/blog-web/internal/logger"
)

// State 单次请求看到的会话状态
type State struct {
	BrowserID string
	Token     string
	LoggedIn  bool
	Version   uint64
}

// Visibility 界面可见性提示
// 只决定是否渲染新增、编辑、删除入口，真正的授权由后端完成
type Visibility struct {
	ShowMutations bool `json:"show_mutations"`
}

// VisibilityFor 按登录状态计算界面可见性
func VisibilityFor(loggedIn bool) Visibility {
	return Visibility{ShowMutations: loggedIn}
}

// Visibility 当前状态对应的界面可见性
func (s State) Visibility() Visibility {
	return VisibilityFor(s.LoggedIn)
}

// Manager 会话管理器，登录状态的唯一写入方
type Manager struct {
	jar   *CookieJar
	store TokenStore
	hub   *Hub
	now   func() time.Time
}

// NewManager 创建会话管理器
func NewManager(jar *CookieJar, store TokenStore, hub *Hub) *Manager {
	return &Manager{jar: jar, store: store, hub: hub, now: time.Now}
}

// Load 读取当前请求的会话状态
// token 的 exp 已过时直接清除并按未登录处理
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (State, error) {
	browserID, err := m.jar.BrowserID(w, r)
	if err != nil {
		return State{}, err
	}
	token, ok := m.store.ReadToken(r)
	if ok && TokenExpired(token, m.now()) {
		logger.Infow("session_token_expired", "browser_id", browserID)
		if err := m.store.ClearToken(w, r); err != nil {
			return State{}, err
		}
		token, ok = "", false
	}
	snapshot := m.hub.Observe(browserID, ok)
	return State{
		BrowserID: browserID,
		Token:     token,
		LoggedIn:  ok,
		Version:   snapshot.Version,
	}, nil
}

// Login 保存 token 并广播已登录
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, token string) (State, error) {
	browserID, err := m.jar.BrowserID(w, r)
	if err != nil {
		return State{}, err
	}
	if err := m.store.WriteToken(w, r, token); err != nil {
		return State{}, err
	}
	snapshot := m.hub.Publish(browserID, true)
	return State{BrowserID: browserID, Token: token, LoggedIn: true, Version: snapshot.Version}, nil
}

// Logout 清除 token 并广播未登录
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) (State, error) {
	browserID, err := m.jar.BrowserID(w, r)
	if err != nil {
		return State{}, err
	}
	if err := m.store.ClearToken(w, r); err != nil {
		return State{}, err
	}
	snapshot := m.hub.Publish(browserID, false)
	return State{BrowserID: browserID, Version: snapshot.Version}, nil
}

// AddFlash 写入一次性提示
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, message string) {
	if err := m.jar.AddFlash(w, r, message); err != nil {
		logger.Warnw("session_flash_save_failed", "error", err)
	}
}

// Flashes 读取并清空一次性提示
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	messages, err := m.jar.PopFlashes(w, r)
	if err != nil {
		logger.Warnw("session_flash_pop_failed", "error", err)
	}
	return messages
}
