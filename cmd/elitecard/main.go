package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/elite-card-game/internal/config"
	"github.com/palemoky/elite-card-game/internal/logger"
	"github.com/palemoky/elite-card-game/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "读取配置失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
	}
	defer logger.Close()

	logger.LogInfo("elite card game starting")

	p := tea.NewProgram(ui.New(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError("程序异常退出: %v", err)
		log.Fatalf("启动游戏时出错: %v", err)
	}
}
