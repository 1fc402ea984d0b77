// Package config 统一配置管理
//
// 配置加载策略：
//  1. 从 .env 加载敏感信息（MongoDB URI、管理员密码）和 APP_ENV
//  2. 根据 APP_ENV 加载对应的 configs/{env}.yaml 配置文件
//  3. 环境变量可覆盖 YAML 配置
//
// 凭据单一数据源：MONGODB_URI 和 ADMIN_PASSWORD 只从环境变量读取，
// YAML 中不存储任何密码。
//
// 使用方式：
//   - 开发环境: APP_ENV=dev (默认)
//   - 测试环境: APP_ENV=test
//   - 生产环境: APP_ENV=prod
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"site-admin/pkg/logging"
)

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig 文档库配置
// 注意：连接 URI 只从 MONGODB_URI 环境变量读取，不存储在 YAML 中
type DatabaseConfig struct {
	URI                string `yaml:"-"`                    // 只从 MONGODB_URI 读取
	Name               string `yaml:"name"`                 // 数据库名称
	ConnectTimeoutMS   int    `yaml:"connect_timeout_ms"`   // 连接超时
	SelectionTimeoutMS int    `yaml:"selection_timeout_ms"` // Server selection 超时
}

// StorageConfig 文件后端配置
type StorageConfig struct {
	DataDir string `yaml:"data_dir"` // JSON 集合文件所在目录
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env              Environment
	APIPort          string
	MongoURI         string
	MongoDBName      string
	ConnectTimeout   time.Duration
	SelectionTimeout time.Duration
	DataDir          string
	AdminPassword    string // 管理后台共享密码，只从 ADMIN_PASSWORD 读取
}

var configPaths = []string{
	"configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

var envPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"../../../.env",
}

// Load 加载配置
// 1. 加载 .env（敏感信息 + APP_ENV）
// 2. 根据 APP_ENV 加载 configs/{env}.yaml
// 3. 环境变量覆盖，构建最终配置
func Load() *Config {
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	env := parseEnv(getEnv("APP_ENV", "dev"))
	yamlCfg := loadYAMLConfig(env)

	cfg := &Config{
		Env:              env,
		APIPort:          getEnv("PORT", yamlCfg.Server.Port),
		MongoURI:         os.Getenv("MONGODB_URI"),
		MongoDBName:      getEnv("MONGODB_DB", yamlCfg.Database.Name),
		ConnectTimeout:   msEnv("MONGO_CONNECT_TIMEOUT_MS", yamlCfg.Database.ConnectTimeoutMS),
		SelectionTimeout: msEnv("MONGO_SELECTION_TIMEOUT_MS", yamlCfg.Database.SelectionTimeoutMS),
		DataDir:          getEnv("DATA_DIR", yamlCfg.Storage.DataDir),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}

	return cfg
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → common.yaml → {env}.yaml
func loadYAMLConfig(env Environment) *YAMLConfig {
	cfg := &YAMLConfig{
		Server: ServerConfig{Port: "4000"},
		Database: DatabaseConfig{
			Name:               "qa_app",
			ConnectTimeoutMS:   3000,
			SelectionTimeoutMS: 3000,
		},
		Storage: StorageConfig{DataDir: "."},
	}

	for _, base := range configPaths {
		path := filepath.Join(base, "common.yaml")
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range configPaths {
		path := filepath.Join(base, filename)
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	return cfg
}

func parseEnv(env string) Environment {
	switch strings.ToLower(env) {
	case "test":
		return EnvTest
	case "prod", "production":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// msEnv 从环境变量读取毫秒数，非法或缺失时使用默认值
func msEnv(key string, defaultMS int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return time.Duration(defaultMS) * time.Millisecond
}

// IsTest 是否为测试环境
func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}

// String 返回配置摘要（URI 只保留主机，密码不输出）
func (c *Config) String() string {
	host := logging.RedactURI(c.MongoURI)
	if host == "" {
		host = "(file backend)"
	}
	return fmt.Sprintf("Config{Env: %s, Port: %s, Mongo: %s, DB: %s, DataDir: %s}",
		c.Env, c.APIPort, host, c.MongoDBName, c.DataDir)
}
