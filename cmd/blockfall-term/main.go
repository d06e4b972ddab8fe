// Command blockfall-term plays blockfall in a terminal using tcell.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/audio"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
)

const frameInterval = time.Second / 30

func main() {
	configPath := flag.String("config", "", "Path to a YAML settings file.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed. Zero uses the config value or a random seed.")
	mute := flag.Bool("mute", false, "Start with sound muted.")
	logPath := flag.String("log", "", "Append log output to this file. Empty discards it.")
	flag.Parse()

	if err := setupLog(*logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if *mute {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		fatal("Invalid settings: %v", err)
	}

	session, err := tetris.NewSession(cfg.Game)
	if err != nil {
		fatal("Failed to create session: %v", err)
	}

	player, err := audio.NewPlayer(cfg.Audio)
	if err != nil {
		fatal("Failed to create audio player: %v", err)
	}
	if err := player.Start(); err != nil {
		log.Printf("Audio unavailable, continuing without sound: %v", err)
	}
	defer player.Close()
	player.Attach(session)

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		fatal("Failed to initialize screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.EnableFocus()

	t := &terminal{
		screen:   screen,
		session:  session,
		player:   player,
		keymap:   cfg.Keymap(),
		repeater: input.NewRepeater(cfg.Input),
	}

	session.Start()
	log.Printf("Starting blockfall (%dx%d board, level 1, %s fall interval)", cfg.Game.Width, cfg.Game.Height, session.FallInterval())
	t.run()
	log.Printf("Exiting with score %d after %d lines", session.Score(), session.Lines())
}

func setupLog(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}

// fatal reports to stderr as well as the log, which may be a file.
func fatal(format string, args ...any) {
	log.Printf(format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
