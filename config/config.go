package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// FileName 是配置文件名，从工作目录开始向上查找
const FileName = "grader.toml"

// Config grader 配置
type Config struct {
	Grader GraderConfig `toml:"grader"`
	Log    LogConfig    `toml:"log"`
}

// GraderConfig 检查相关配置
type GraderConfig struct {
	Lang    string `toml:"lang"`    // 为空表示按文件后缀推断
	Workers int    `toml:"workers"` // 批量检查时的并发数
	Format  string `toml:"format"`  // text | jsonl | mermaid
	Out     string `toml:"out"`     // 输出文件路径，为空写到标准输出
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Grader: GraderConfig{
			Workers: runtime.NumCPU(),
			Format:  "text",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// FindAndLoad 从指定目录向上查找 grader.toml 并加载，未找到时返回默认配置
func FindAndLoad(startDir string) (*Config, string, error) {
	configPath := FindConfigFile(startDir)
	if configPath == "" {
		return DefaultConfig(), "", nil
	}

	config, err := Load(configPath)
	if err != nil {
		return nil, "", err
	}

	return config, configPath, nil
}

// FindConfigFile 从指定目录向上查找 grader.toml
func FindConfigFile(startDir string) string {
	dir := startDir

	for {
		configPath := filepath.Join(dir, FileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath
		}

		// 获取父目录
		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到根目录
			return ""
		}
		dir = parent
	}
}

// Load 加载配置文件，未设置的字段沿用默认值
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, err
	}

	if config.Grader.Workers <= 0 {
		config.Grader.Workers = runtime.NumCPU()
	}
	if config.Grader.Format == "" {
		config.Grader.Format = "text"
	}
	return config, nil
}
