// Command blockfall is the desktop frontend: an ebiten window with sound,
// particle effects and an optional Dear ImGui debug overlay.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/audio"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/fx"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML settings file.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed. Zero uses the config value or a random seed.")
	debug := flag.Bool("debug", false, "Open the debug overlay at startup.")
	mute := flag.Bool("mute", false, "Start with sound muted.")
	volume := flag.Float64("volume", -1, "Master volume in [0, 1]. Negative keeps the config value.")
	dumpConfig := flag.Bool("dump-config", false, "Print the effective settings as YAML and exit.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if *mute {
		cfg.Audio.Enabled = false
	}
	if *volume >= 0 {
		cfg.Audio.MasterVolume = *volume
	}
	cfg.Debug = cfg.Debug || *debug
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	if *dumpConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		return
	}

	bindings, actions, err := bindKeys(cfg.Keymap())
	if err != nil {
		log.Fatalf("Invalid key bindings: %v", err)
	}

	session, err := tetris.NewSession(cfg.Game)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	player, err := audio.NewPlayer(cfg.Audio)
	if err != nil {
		log.Fatalf("Failed to create audio player: %v", err)
	}
	if err := player.Start(); err != nil {
		log.Printf("Audio unavailable, continuing without sound: %v", err)
	}
	defer player.Close()
	player.Attach(session)

	width, height := screenSize(cfg.Game)
	world := fx.NewWorld(float64(width), float64(height))
	scheduler := fx.NewDefaultScheduler(world)
	fx.NewEmitter(world, layoutFor(cfg.Game), nil).Attach(session)

	panels := debugui.NewPanels(session, scheduler)
	defer panels.Close()
	panels.Overlay.Visible = cfg.Debug
	scheduler.Register(panels.System())

	backend := debugui_ebiten.New("Blockfall", width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := &Game{
		session:   session,
		player:    player,
		scheduler: scheduler,
		panels:    panels,
		backend:   backend,
		repeater:  input.NewRepeater(cfg.Input),
		bindings:  bindings,
		actions:   actions,
		down:      make(map[input.Action]bool, len(actions)),
	}

	session.Start()
	log.Printf("Starting blockfall (%dx%d board, level 1, %s fall interval)", cfg.Game.Width, cfg.Game.Height, session.FallInterval())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited with error: %v", err)
	}
}
