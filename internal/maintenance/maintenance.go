// Package maintenance decides, per request, whether visitors are redirected to the
// maintenance page, and provisions that page together with its display template.
package maintenance

import (
	"errors"
	"fmt"
)

const (
	// PageSlug 是维护页的固定 slug。
	PageSlug = "maintenance"
	// TemplateSlug 是维护模板的固定 slug。
	TemplateSlug = "page-maintenance"
	// ReferenceTemplateSlug 是主题默认页面模板，维护模板从它派生。
	ReferenceTemplateSlug = "page"
	// TemplateTitle 是维护模板的展示标题。
	TemplateTitle = "Page Maintenance"
	// TemplateExcerpt 描述维护模板的用途。
	TemplateExcerpt = "Template de maintenance"
	// PageStateLabel 在后台页面列表中标记维护页。
	PageStateLabel = "Page de maintenance du site"

	// SettingKeyEnabled 存储维护开关，值为 "1" 时表示启用。
	SettingKeyEnabled = "mmfse_enabled"
	// SettingKeyMessage 存储维护提示文案。
	SettingKeyMessage = "mmfse_message"

	// StatusPublish 表示内容已发布。
	StatusPublish = "publish"

	enabledValue = "1"
)

var (
	// ErrConfigurationUnavailable 表示配置存储读写失败。
	ErrConfigurationUnavailable = errors.New("maintenance configuration unavailable")
	// ErrRepositoryUnavailable 表示内容仓库操作失败。
	ErrRepositoryUnavailable = errors.New("content repository unavailable")
	// ErrTemplateInvariant 表示派生出的模板没有恰好一个占位符。
	ErrTemplateInvariant = errors.New("derived template must contain exactly one message placeholder")
)

// Config is the process-wide maintenance configuration. It is never cached.
type Config struct {
	Enabled bool
	Message string
}

// ConfigStore persists scalar settings.
type ConfigStore interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

// EnabledValue encodes the enabled flag the way it is stored.
func EnabledValue(enabled bool) string {
	if enabled {
		return enabledValue
	}
	return "0"
}

// LoadConfig reads both keys from store. A missing or blank message falls back to defaultMessage.
func LoadConfig(store ConfigStore, defaultMessage string) (Config, error) {
	cfg := Config{Message: defaultMessage}

	enabled, found, err := store.Get(SettingKeyEnabled)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %w", ErrConfigurationUnavailable, SettingKeyEnabled, err)
	}
	cfg.Enabled = found && enabled == enabledValue

	message, found, err := store.Get(SettingKeyMessage)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %w", ErrConfigurationUnavailable, SettingKeyMessage, err)
	}
	if found && message != "" {
		cfg.Message = message
	}

	return cfg, nil
}

// SaveConfig writes both keys to store.
func SaveConfig(store ConfigStore, cfg Config) error {
	if err := store.Set(SettingKeyEnabled, EnabledValue(cfg.Enabled)); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrConfigurationUnavailable, SettingKeyEnabled, err)
	}
	if err := store.Set(SettingKeyMessage, cfg.Message); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrConfigurationUnavailable, SettingKeyMessage, err)
	}
	return nil
}

// Notice returns the admin warning shown while maintenance is on, or an empty string.
func Notice(cfg Config) string {
	if !cfg.Enabled {
		return ""
	}
	return "Le mode maintenance est actuellement activé."
}

// PageStates returns the extra list labels for a page with the given slug.
func PageStates(slug string) []string {
	if slug == PageSlug {
		return []string{PageStateLabel}
	}
	return nil
}

// TemplateTitleFor overrides the displayed template title for the maintenance page.
func TemplateTitleFor(slug, fallback string) string {
	if slug == PageSlug {
		return TemplateTitle
	}
	return fallback
}
