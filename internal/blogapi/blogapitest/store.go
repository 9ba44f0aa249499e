package blogapitest

import (
	"errors"
	"time"

	"github.com/mission-tool/blog-web/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// postRecord posts 表，与远端 API 的文章表结构一致
type postRecord struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	Title     string
	Content   string
	Status    string
	Category  string
}

func (postRecord) TableName() string { return "posts" }

// userRecord users 表，密码为 bcrypt 哈希
type userRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"unique"`
	Password string
}

func (userRecord) TableName() string { return "users" }

func (r postRecord) toPost() models.Post {
	return models.Post{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Status:    r.Status,
		Category:  r.Category,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// openStore 打开独立的内存 SQLite 库并迁移表结构
// 只保留一个连接，:memory: 库随连接存在
func openStore() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&postRecord{}, &userRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

func (s *Server) insertPost(p models.Post) (models.Post, error) {
	record := postRecord{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.CreatedAt,
		Title:     p.Title,
		Content:   p.Content,
		Status:    p.Status,
		Category:  p.Category,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return models.Post{}, err
	}
	return record.toPost(), nil
}

func (s *Server) findPost(id uint) (postRecord, error) {
	var record postRecord
	err := s.db.First(&record, id).Error
	return record, err
}

func (s *Server) listRecords() ([]postRecord, error) {
	var records []postRecord
	err := s.db.Order("created_at desc").Order("id desc").Find(&records).Error
	return records, err
}

func (s *Server) passwordHash(username string) (string, bool) {
	var user userRecord
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return "", false
	}
	return user.Password, true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
