package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/locale"
	"github.com/sitemaint/internal/maintenance"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingStore 基于 system_settings 表实现键值配置存储，每次读取都直接访问数据库。
type SettingStore struct {
	db *gorm.DB
}

// NewSettingStore 构造 SettingStore。
func NewSettingStore(gdb *gorm.DB) *SettingStore {
	return &SettingStore{db: gdb}
}

// Get 读取单个配置项，不存在时 found 为 false。
func (s *SettingStore) Get(key string) (string, bool, error) {
	var record db.SystemSetting
	if err := s.db.Where("key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load setting %s: %w", key, err)
	}
	return record.Value, true, nil
}

// Set 写入单个配置项。
func (s *SettingStore) Set(key, value string) error {
	return upsertSetting(s.db, key, value)
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

// DefaultMaintenanceMessage 返回指定语言下的默认维护文案。
func DefaultMaintenanceMessage(language string) string {
	return locale.Pick(language,
		"The site is under maintenance. Please come back later.",
		"Le site est en maintenance. Merci de revenir plus tard.",
	)
}

// MaintenancePageTitle 返回激活时新建维护页使用的标题。
func MaintenancePageTitle(language string) string {
	return locale.Pick(language, "Maintenance", "Maintenance")
}

// MaintenanceSettings 描述后台维护设置表单的内容。
type MaintenanceSettings struct {
	Enabled bool
	Message string
}

// MaintenanceSettingsInput 用于更新维护设置。
type MaintenanceSettingsInput struct {
	Enabled bool
	Message string
}

// MaintenanceSettingService 提供维护设置的读取与更新能力。
type MaintenanceSettingService struct {
	db       *gorm.DB
	store    *SettingStore
	language string
}

// NewMaintenanceSettingService 构造 MaintenanceSettingService。
func NewMaintenanceSettingService(gdb *gorm.DB, language string) *MaintenanceSettingService {
	return &MaintenanceSettingService{
		db:       gdb,
		store:    NewSettingStore(gdb),
		language: language,
	}
}

// Store 暴露底层配置存储，供重定向判断直接读取。
func (s *MaintenanceSettingService) Store() *SettingStore {
	return s.store
}

// DefaultMessage 返回当前语言的默认维护文案。
func (s *MaintenanceSettingService) DefaultMessage() string {
	return DefaultMaintenanceMessage(s.language)
}

// GetSettings 读取维护设置，如未设置将返回默认值。
func (s *MaintenanceSettingService) GetSettings() (MaintenanceSettings, error) {
	cfg, err := maintenance.LoadConfig(s.store, s.DefaultMessage())
	if err != nil {
		return MaintenanceSettings{}, err
	}
	return MaintenanceSettings{Enabled: cfg.Enabled, Message: cfg.Message}, nil
}

// UpdateSettings 保存维护设置，未填写文案时回退默认值。
func (s *MaintenanceSettingService) UpdateSettings(input MaintenanceSettingsInput) (MaintenanceSettings, error) {
	sanitized := MaintenanceSettings{
		Enabled: input.Enabled,
		Message: strings.TrimSpace(input.Message),
	}
	if sanitized.Message == "" {
		sanitized.Message = s.DefaultMessage()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return maintenance.SaveConfig(NewSettingStore(tx), maintenance.Config{
			Enabled: sanitized.Enabled,
			Message: sanitized.Message,
		})
	})
	if err != nil {
		return MaintenanceSettings{}, fmt.Errorf("update maintenance settings: %w", err)
	}

	return sanitized, nil
}
