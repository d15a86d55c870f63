package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"balloonsim/config"
	"balloonsim/game"
	"balloonsim/log"
	"balloonsim/scene"
	"balloonsim/sim"
	"balloonsim/tracing"
	"balloonsim/watcher"
)

const (
	localConfigPath = ".balloonsim/config.yaml"
	envPrefix       = "BALLOONSIM"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "balloonsim",
	Short:   "Floating balloon page with scroll-driven physics",
	Long:    `A desktop rendering of a scrolling page whose hero balloons drift, collide and react to scroll, with a focus-driven contact row.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .balloonsim/config.yaml, then ~/.config/balloonsim/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "show the debug overlay and write debug logs")
	rootCmd.PersistentFlags().String("log", "", "debug log file (default: debug.log when --debug is set)")
	rootCmd.PersistentFlags().String("trace", "", "span exporter: none, stdout or file")
	rootCmd.PersistentFlags().String("trace-file", "", "span file for --trace=file")
	rootCmd.PersistentFlags().Int64("seed", 0, "wobble seed; 0 picks one at random")
	rootCmd.PersistentFlags().Bool("reduced-motion", false, "keep the balloon strings still")
	rootCmd.PersistentFlags().String("preset", "", "YAML file of hero balloons")
	rootCmd.Flags().String("profile-dir", "", "capture CPU profiles into this directory when the frame rate drops")

	pf := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("debug", pf.Lookup("debug"))
	_ = viper.BindPFlag("log_path", pf.Lookup("log"))
	_ = viper.BindPFlag("tracing.exporter", pf.Lookup("trace"))
	_ = viper.BindPFlag("tracing.file_path", pf.Lookup("trace-file"))
	_ = viper.BindPFlag("seed", pf.Lookup("seed"))
	_ = viper.BindPFlag("motion.reduced", pf.Lookup("reduced-motion"))
	_ = viper.BindPFlag("cluster.preset", pf.Lookup("preset"))
	_ = viper.BindPFlag("profile_dir", rootCmd.Flags().Lookup("profile-dir"))
}

// setDefaults registers every scalar default so environment variables can
// override keys that no config file mentions
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.tps", d.Window.TPS)
	v.SetDefault("cluster.gap", d.Cluster.Gap)
	v.SetDefault("cluster.align", d.Cluster.Align)
	v.SetDefault("cluster.justify", d.Cluster.Justify)
	v.SetDefault("cluster.preset", d.Cluster.Preset)
	v.SetDefault("contact.gap", d.Contact.Gap)
	v.SetDefault("contact.align", d.Contact.Align)
	v.SetDefault("contact.justify", d.Contact.Justify)
	v.SetDefault("motion.reduced", d.Motion.Reduced)
	v.SetDefault("motion.scroll_smoothing", d.Motion.ScrollSmoothing)
	v.SetDefault("motion.wheel_step", d.Motion.WheelStep)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_path", d.LogPath)
	v.SetDefault("profile_dir", d.ProfileDir)
	v.SetDefault("seed", d.Seed)
}

func initConfig() {
	setDefaults(viper.GetViper())
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .balloonsim/config.yaml (current directory)
		// 2. ~/.config/balloonsim/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "balloonsim"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .balloonsim/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	loaded, err := decodeConfig(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "balloonsim: %v\n", err)
		loaded = config.Defaults()
	}
	cfg = loaded
}

// decodeConfig unmarshals v over the defaults so keys missing from the file
// keep their default values. Lists from the file replace the default lists
// instead of merging into them.
func decodeConfig(v *viper.Viper) (config.Config, error) {
	c := config.Defaults()
	zeroLists := func(dc *mapstructure.DecoderConfig) { dc.ZeroFields = true }
	if err := v.Unmarshal(&c, zeroLists); err != nil {
		return config.Defaults(), fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// reloadConfig re-reads the config file in use
func reloadConfig(v *viper.Viper) (config.Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	c, err := decodeConfig(v)
	if err != nil {
		return config.Config{}, err
	}
	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}
	return c, nil
}

// setupLogging routes logs to the configured file. Logging stays off without
// --debug or a log path.
func setupLogging(c config.Config) (func(), error) {
	path := c.LogPath
	if path == "" && c.Debug {
		path = "debug.log"
	}
	if path == "" {
		return func() {}, nil
	}
	closeLog, err := log.Init(path)
	if err != nil {
		return nil, err
	}
	if !c.Debug {
		log.SetMinLevel(log.LevelInfo)
	}
	return closeLog, nil
}

func gameConfig(c config.Config) game.Config {
	g := game.DefaultConfig()
	g.ScreenWidth = c.Window.Width
	g.ScreenHeight = c.Window.Height
	g.Title = c.Window.Title
	g.TPS = c.Window.TPS
	g.WheelStep = c.Motion.WheelStep
	g.Debug = c.Debug
	g.ProfileDir = c.ProfileDir
	return g
}

// buildPage resolves the hero balloons and lays out the page
func buildPage(c config.Config) (*scene.Page, error) {
	hero, err := c.HeroBalloons()
	if err != nil {
		return nil, err
	}
	return scene.NewPage(c.PageOptions(hero)), nil
}

// heroLoader re-reads the configuration and resolves the hero balloons
func heroLoader(v *viper.Viper) game.HeroLoader {
	return func() ([]sim.BalloonConfig, error) {
		c, err := reloadConfig(v)
		if err != nil {
			return nil, err
		}
		return c.HeroBalloons()
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	tp, err := tracing.NewProvider(tracing.Config{
		Exporter: cfg.Tracing.Exporter,
		FilePath: cfg.Tracing.FilePath,
	})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	page, err := buildPage(cfg)
	if err != nil {
		return fmt.Errorf("loading hero balloons: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.NewGame(ctx, gameConfig(cfg), page, nil)

	w, err := watcher.New(watcher.Config{Paths: []string{viper.ConfigFileUsed(), cfg.Cluster.Preset}})
	if err == nil {
		changes, startErr := w.Start()
		if startErr != nil {
			log.ErrorErr(log.CatWatcher, "live reload disabled", startErr)
		} else {
			g.WatchHero(changes, heroLoader(viper.GetViper()))
		}
		defer func() { _ = w.Stop() }()
	} else {
		log.Debug(log.CatWatcher, "live reload disabled", "reason", err.Error())
	}

	log.Info(log.CatHost, "starting", "version", version, "config", viper.ConfigFileUsed(), "hero", len(page.Hero()))
	return g.Run()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
