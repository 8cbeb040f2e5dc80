package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	SiteBaseURL       string
	HomeURL           string
	Language          string
	Theme             string
	SuperRootUserName string
	SuperRootPassword string
}

// fileConfig 是可选 TOML 配置文件的结构，环境变量优先于文件中的值。
type fileConfig struct {
	ListenAddr        string `toml:"listen_addr"`
	Port              string `toml:"port"`
	DatabasePath      string `toml:"database_path"`
	SessionSecret     string `toml:"session_secret"`
	GinMode           string `toml:"gin_mode"`
	SiteBaseURL       string `toml:"site_base_url"`
	HomeURL           string `toml:"home_url"`
	Language          string `toml:"language"`
	Theme             string `toml:"theme"`
	SuperRootUserName string `toml:"super_root_user_name"`
	SuperRootPassword string `toml:"super_root_password"`
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	return build(fileConfig{})
}

// LoadFile 读取 TOML 配置文件，再用环境变量覆盖其中的值。path 为空时等价于 Load。
func LoadFile(path string) (AppConfig, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Load(), nil
	}

	data, err := os.ReadFile(trimmed)
	if err != nil {
		return AppConfig{}, fmt.Errorf("config load failed (%s): %w", trimmed, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return AppConfig{}, fmt.Errorf("config parse failed (%s): %w", trimmed, err)
	}

	return build(fc), nil
}

func build(fc fileConfig) AppConfig {
	port := value("PORT", fc.Port, "8080")
	siteBaseURL := strings.TrimRight(value("SITE_BASE_URL", fc.SiteBaseURL, "http://localhost:"+port), "/")

	return AppConfig{
		ListenAddr:        value("LISTEN_ADDR", fc.ListenAddr, fmt.Sprintf(":%s", port)),
		Port:              port,
		DatabasePath:      value("DATABASE_PATH", fc.DatabasePath, "sitemaint.db"),
		SessionSecret:     value("SESSION_SECRET", fc.SessionSecret, "sitemaint-dev-secret"),
		GinMode:           value("GIN_MODE", fc.GinMode, "release"),
		SiteBaseURL:       siteBaseURL,
		HomeURL:           value("HOME_URL", fc.HomeURL, siteBaseURL+"/"),
		Language:          value("LANGUAGE", fc.Language, "fr"),
		Theme:             value("THEME", fc.Theme, "default"),
		SuperRootUserName: value("SUPER_ROOT_USER_NAME", fc.SuperRootUserName, ""),
		SuperRootPassword: value("SUPER_ROOT_PASSWORD", fc.SuperRootPassword, ""),
	}
}

func value(envKey, fromFile, fallback string) string {
	if env := strings.TrimSpace(os.Getenv(envKey)); env != "" {
		return env
	}
	if trimmed := strings.TrimSpace(fromFile); trimmed != "" {
		return trimmed
	}
	return fallback
}
