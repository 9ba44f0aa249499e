package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mission-tool/blog-web/internal/models"
)

var (
	ErrRequestFailed     = errors.New("blog api request failed")
	ErrResponseInvalid   = errors.New("blog api response invalid")
	ErrUnexpectedStatus  = errors.New("blog api unexpected status")
	ErrBaseURLMissing    = errors.New("blog api base url missing")
	defaultClientTimeout = 15 * time.Second
)

// StatusError 远端返回非 2xx 状态
type StatusError struct {
	StatusCode int
	Message    string // 服务端 error 字段，可能为空
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("blog api http status %d", e.StatusCode)
	}
	return fmt.Sprintf("blog api http status %d: %s", e.StatusCode, e.Message)
}

// Is 让 errors.Is(err, ErrUnexpectedStatus) 成立
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// LoginResult POST /login 成功响应
type LoginResult struct {
	Token string `json:"token"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client 远端博客 API 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option 客户端可选参数
type Option func(*Client)

// WithTimeout 设置请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient 创建客户端，baseURL 通常来自 config.ResolveAPIBaseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL 返回规范化后的基础地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListPosts 获取全部文章，不做任何缓存
func (c *Client) ListPosts(ctx context.Context) (*models.PostList, error) {
	var list models.PostList
	if err := c.do(ctx, http.MethodGet, "/posts", "", nil, &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		list.Data = []models.Post{}
	}
	return &list, nil
}

// GetPost 获取单篇文章
func (c *Client) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var env models.PostEnvelope
	if err := c.do(ctx, http.MethodGet, postPath(id), "", nil, &env); err != nil {
		return nil, err
	}
	if env.Data.ID == 0 {
		return nil, fmt.Errorf("%w: missing data", ErrResponseInvalid)
	}
	return &env.Data, nil
}

// CreatePost 新建文章；token 非空时附带 Bearer 凭证
func (c *Client) CreatePost(ctx context.Context, token string, draft models.PostDraft) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", token, draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost 更新文章
func (c *Client) UpdatePost(ctx context.Context, token string, id uint, draft models.PostDraft) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPut, postPath(id), token, draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost 删除文章
func (c *Client) DeletePost(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodDelete, postPath(id), token, nil, nil)
}

// Login 提交帐密，成功时返回服务端签发的 token
func (c *Client) Login(ctx context.Context, credentials models.LoginCredentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", "", credentials, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Token) == "" {
		return nil, fmt.Errorf("%w: empty token", ErrResponseInvalid)
	}
	return &result, nil
}

func postPath(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) do(ctx context.Context, method, path, token string, payload interface{}, dest interface{}) error {
	if c.baseURL == "" {
		return ErrBaseURLMissing
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encode payload: %v", ErrRequestFailed, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(respBytes, &eb) == nil {
			statusErr.Message = strings.TrimSpace(eb.Error)
		}
		return statusErr
	}

	if dest == nil || len(bytes.TrimSpace(respBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBytes, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return nil
}

// IsNotFound 远端是否返回 404
func IsNotFound(err error) bool {
	return statusCodeOf(err) == http.StatusNotFound
}

// IsUnauthorized 远端是否拒绝了凭证
func IsUnauthorized(err error) bool {
	return statusCodeOf(err) == http.StatusUnauthorized
}

// ServerMessage 提取服务端提供的错误文字
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

func statusCodeOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
