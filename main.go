package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/automoto/inputassign/config"
	"github.com/automoto/inputassign/feed"
	"github.com/automoto/inputassign/logger"
	"github.com/automoto/inputassign/scenes"
	"github.com/automoto/inputassign/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(hub *feed.Hub) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scenes.NewInputScene(hub),
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

// loadConfig resolves flags, INPUTASSIGN_* env vars and an optional config
// file into the global configuration.
func loadConfig(args []string) error {
	v := viper.New()
	config.SetDefaults(v)

	fs := pflag.NewFlagSet("inputassign", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (yaml, json or toml)")
	fs.Int(config.KeyWidth, config.C.Width, "window width")
	fs.Int(config.KeyHeight, config.C.Height, "window height")
	fs.Float64(config.KeyDeadzone, config.Input.GamepadDeadzone, "gamepad stick deadzone")
	fs.Float64(config.KeyMovementThreshold, config.Input.MovementThreshold, "minimum movement magnitude reported as movement")
	fs.Bool(config.KeyAutoAssign, config.Input.AutoAssignDevices, "assign devices to players automatically")
	fs.Bool(config.KeyAllowKeyboardSharing, config.Input.AllowKeyboardSharing, "let several players use keyboard schemes")
	fs.Int(config.KeyMaxPlayers, config.Input.MaxPlayers, "maximum number of players")
	fs.StringSlice(config.KeyCustomSchemes, nil, "custom keyboard scheme as up/down/left/right key names (repeatable)")
	fs.String(config.KeyFeedAddr, config.Feed.Addr, "address for the websocket event feed, empty disables it")
	fs.Bool(config.KeyPersist, config.Persistence.Enabled, "load and save input settings")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix("INPUTASSIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return config.Load(v)
}

func main() {
	logger.Init()

	if err := loadConfig(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)

	// Initialize persistence and load saved settings
	if config.Persistence.Enabled {
		if err := systems.InitPersistence(config.Persistence.AppName); err != nil {
			logger.Log.WithError(err).Warn("Could not initialize persistence")
		}
		saved, err := systems.LoadInputSettings()
		if err != nil {
			logger.Log.WithError(err).Warn("Could not load input settings")
		}
		systems.ApplySavedInputSettingsGlobal(saved)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *feed.Hub
	var srv *feed.Server
	if config.Feed.Addr != "" {
		hub = feed.NewHub(config.Feed.SendBuffer, config.Feed.Commands)
		go hub.Run(ctx)

		srv = feed.NewServer(hub, config.Feed.Addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Log.WithError(err).Error("Event feed server stopped")
			}
		}()
	}

	runErr := ebiten.RunGame(NewGame(hub))

	cancel()
	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("Event feed shutdown error")
		}
	}

	if runErr != nil {
		logger.Log.WithError(runErr).Fatal("Game stopped")
	}
}
