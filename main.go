package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/fireworks/pkg/app"
	"github.com/gonewx/fireworks/pkg/config"
	"github.com/gonewx/fireworks/pkg/embedded"
)

var (
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag    = flag.String("config", "data/show.yaml", "Show config file (embedded copy is used when present)")
	seedFlag      = flag.Uint64("seed", 0, "Replay a show from a seed (0 = random)")
	qualityFlag   = flag.String("quality", "", "Override quality: low, normal or high")
	muteFlag      = flag.Bool("mute", false, "Disable audio")
	ephemeralFlag = flag.Bool("ephemeral", false, "Do not load or save viewer settings")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（必须在任何资源加载之前）
	embedded.Init(assetsFS, dataFS)

	show, err := loadShow(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	viewer, err := app.NewApp(app.Config{
		Verbose:   *verboseFlag,
		Show:      show,
		Seed:      *seedFlag,
		Quality:   *qualityFlag,
		Mute:      *muteFlag,
		Ephemeral: *ephemeralFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(show.Stage.Width, show.Stage.Height)
	ebiten.SetWindowTitle("Fireworks")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}

	if err := viewer.Settings().Save(); err != nil {
		log.Printf("[main] Warning: %v", err)
	}
}

// loadShow 加载表演配置；默认路径缺失时使用内置默认值
func loadShow(path string) (*config.ShowConfig, error) {
	show, err := config.LoadShowConfig(path)
	if errors.Is(err, fs.ErrNotExist) && path == "data/show.yaml" {
		return config.DefaultShowConfig(), nil
	}
	return show, err
}
