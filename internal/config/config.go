package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Game Game `yaml:"game"`
	UI   UI   `yaml:"ui"`
}

// Game 牌局配置
type Game struct {
	PlayerCount int      `yaml:"player_count"` // 玩家数（2-6）
	PlayerNames []string `yaml:"player_names"` // 可选，缺省自动命名
	Direction   string   `yaml:"direction"`    // clockwise / anticlockwise
	RoundDelay  int      `yaml:"round_delay"`  // 回合结算后的停顿（秒），纯展示用
}

// UI 界面配置
type UI struct {
	Sound bool `yaml:"sound"` // 是否启用音效
}

// RoundDelayDuration 返回回合间停顿时长
func (g *Game) RoundDelayDuration() time.Duration {
	return time.Duration(g.RoundDelay) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Game.PlayerCount == 0 {
		cfg.Game.PlayerCount = 4
	}
	if cfg.Game.Direction == "" {
		cfg.Game.Direction = "clockwise"
	}
	if cfg.Game.RoundDelay == 0 {
		cfg.Game.RoundDelay = 3
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: Game{
			PlayerCount: 4,
			Direction:   "clockwise",
			RoundDelay:  3,
		},
		UI: UI{
			Sound: true,
		},
	}
}
