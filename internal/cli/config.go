package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tillvoss/mindweave/pkg/layout"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = "mindweave.toml"

// fileConfig is the on-disk TOML configuration.
//
//	[layout]
//	width = 1600
//	node_width = 180
//
//	[server]
//	port = 9000
//	redis_url = "redis://localhost:6379/0"
type fileConfig struct {
	Layout layout.Config `toml:"layout"`
	Server serverConfig  `toml:"server"`
}

// serverConfig holds serve command settings.
type serverConfig struct {
	Port            int    `toml:"port"`
	RedisURL        string `toml:"redis_url"`
	AllowAllOrigins bool   `toml:"allow_all_origins"`
}

// loadConfig reads the TOML config from path. An empty path falls back to
// mindweave.toml in the working directory; if that does not exist either,
// a zero config is returned.
func loadConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	var cfg fileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(names, ", "))
	}
	return &cfg, nil
}

// registerLayoutFlags adds the layout tuning flags to cmd, bound to cfg.
func registerLayoutFlags(cmd *cobra.Command, cfg *layout.Config) {
	cmd.Flags().Float64Var(&cfg.Width, "width", cfg.Width, "canvas width")
	cmd.Flags().Float64Var(&cfg.Height, "height", cfg.Height, "canvas height")
	cmd.Flags().Float64Var(&cfg.NodeWidth, "node-width", cfg.NodeWidth, "base node width")
	cmd.Flags().Float64Var(&cfg.NodeHeight, "node-height", cfg.NodeHeight, "base node height")
	cmd.Flags().Float64Var(&cfg.LevelSpacing, "level-spacing", cfg.LevelSpacing, "radial distance between levels")
	cmd.Flags().IntVar(&cfg.BulletThreshold, "bullet-threshold", cfg.BulletThreshold, "item count at or above which children stack vertically")
}

// mergeLayoutConfig overlays file on top of base, then re-applies any layout
// flags the user set explicitly. Flags win over the config file.
func mergeLayoutConfig(cmd *cobra.Command, base layout.Config, file layout.Config) layout.Config {
	merged := file.WithDefaults()

	flags := cmd.Flags()
	if flags.Changed("width") {
		merged.Width = base.Width
	}
	if flags.Changed("height") {
		merged.Height = base.Height
	}
	if flags.Changed("node-width") {
		merged.NodeWidth = base.NodeWidth
	}
	if flags.Changed("node-height") {
		merged.NodeHeight = base.NodeHeight
	}
	if flags.Changed("level-spacing") {
		merged.LevelSpacing = base.LevelSpacing
	}
	if flags.Changed("bullet-threshold") {
		merged.BulletThreshold = base.BulletThreshold
	}
	return merged
}
