// Package blogapitest 提供内存版远端博客 API，供各包测试使用。
package blogapitest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mission-tool/blog-web/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "blogapitest-secret"

// Request 记录一次收到的请求
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          string
}

type failure struct {
	status  int
	message string
}

// Server 内存后端，文章与帐号存于独立的内存 SQLite 库
type Server struct {
	*httptest.Server

	db *gorm.DB

	mu       sync.Mutex
	requests []Request
	failures map[string]failure
	now      func() time.Time
}

// New 启动内存后端，调用方负责 Close
func New() *Server {
	gin.SetMode(gin.TestMode)
	db, err := openStore()
	if err != nil {
		panic(err)
	}
	s := &Server{
		db:       db,
		failures: make(map[string]failure),
		now:      time.Now,
	}
	s.Server = httptest.NewServer(s.engine())
	return s
}

func (s *Server) engine() *gin.Engine {
	r := gin.New()
	r.Use(s.record, s.injectFailure)

	r.POST("/login", s.login)
	r.GET("/posts", s.listPosts)
	r.GET("/posts/:id", s.getPost)

	authorized := r.Group("/")
	authorized.Use(s.requireBearer)
	authorized.POST("/posts", s.createPost)
	authorized.PUT("/posts/:id", s.updatePost)
	authorized.DELETE("/posts/:id", s.deletePost)
	return r
}

// AddUser 添加可登录帐号，密码以 bcrypt 存储
func (s *Server) AddUser(username, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	if err := s.db.Create(&userRecord{Username: username, Password: string(hash)}).Error; err != nil {
		panic(err)
	}
}

// Seed 直接写入文章并返回分配的 ID
func (s *Server) Seed(p models.Post) models.Post {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	stored, err := s.insertPost(p)
	if err != nil {
		panic(err)
	}
	return stored
}

// Post 读取当前存储的文章，已删除的不返回
func (s *Server) Post(id uint) (models.Post, bool) {
	record, err := s.findPost(id)
	if err != nil {
		return models.Post{}, false
	}
	return record.toPost(), true
}

// FailNext 让下一次 method+path 请求返回指定状态
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Requests 返回已收到请求的副本
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count 统计 method+path 的请求次数
func (s *Server) Count(method, path string) int {
	n := 0
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

// IssueToken 签发测试 token
func (s *Server) IssueToken(subject string, expiresAt time.Time) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Authorization: c.GetHeader("Authorization"),
		Body:          string(body),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFailure(c *gin.Context) {
	key := c.Request.Method + " " + c.Request.URL.Path
	s.mu.Lock()
	f, ok := s.failures[key]
	if ok {
		delete(s.failures, key)
	}
	s.mu.Unlock()
	if !ok {
		c.Next()
		return
	}
	if f.message == "" {
		c.AbortWithStatus(f.status)
		return
	}
	c.AbortWithStatusJSON(f.status, gin.H{"error": f.message})
}

func (s *Server) requireBearer(c *gin.Context) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token invalid or expired"})
		return
	}
	c.Next()
}

func (s *Server) login(c *gin.Context) {
	var input models.LoginCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	hash, ok := s.passwordHash(input.Username)
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong username or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   s.IssueToken(input.Username, s.now().Add(24*time.Hour)),
		"message": "ok",
	})
}

func (s *Server) listPosts(c *gin.Context) {
	records, err := s.listRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	posts := make([]models.Post, 0, len(records))
	for _, r := range records {
		posts = append(posts, r.toPost())
	}
	c.JSON(http.StatusOK, gin.H{"data": posts, "count": len(posts)})
}

func (s *Server) getPost(c *gin.Context) {
	record, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record.toPost()})
}

func (s *Server) createPost(c *gin.Context) {
	var draft models.PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.insertPost(models.Post{
		Title:     draft.Title,
		Content:   draft.Content,
		Status:    draft.Status,
		Category:  draft.Category,
		CreatedAt: s.now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) updatePost(c *gin.Context) {
	record, ok := s.lookup(c)
	if !ok {
		return
	}
	var draft models.PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record.Title = draft.Title
	record.Content = draft.Content
	record.Status = draft.Status
	record.Category = draft.Category
	if err := s.db.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record.toPost())
}

func (s *Server) deletePost(c *gin.Context) {
	record, ok := s.lookup(c)
	if !ok {
		return
	}
	if err := s.db.Delete(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) lookup(c *gin.Context) (postRecord, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return postRecord{}, false
	}
	record, err := s.findPost(uint(id))
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return postRecord{}, false
	}
	return record, true
}
