package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/saeidalz13/battleship-terminal/api"
	"github.com/saeidalz13/battleship-terminal/internal/audio"
	"github.com/saeidalz13/battleship-terminal/internal/config"
	"github.com/saeidalz13/battleship-terminal/internal/logging"
	"github.com/saeidalz13/battleship-terminal/internal/store"
	"github.com/saeidalz13/battleship-terminal/internal/tui"
	mb "github.com/saeidalz13/battleship-terminal/models/battleship"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	mapHeight, mapWidth, err := parseArgs(args)
	if err != nil {
		fmt.Println(err)
		fmt.Println(usage)
		return 1
	}

	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logFile, err := logging.Setup(cfg.LogDir, cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	gameStore, closeStore, err := store.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var optFuncs []mb.Option

	if cfg.AudioEnabled {
		soundManager := audio.NewSoundManager()
		if err := soundManager.Initialize(); err != nil {
			// non-fatal, the game runs silently
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer soundManager.Cleanup()
			optFuncs = append(optFuncs, mb.WithListener(soundManager))
		}
	}

	if cfg.SpectatePort != 0 {
		server := api.NewServer(api.WithPort(cfg.SpectatePort), api.WithStage(cfg.Stage))
		optFuncs = append(optFuncs, mb.WithListener(server))
		go func() {
			if err := server.Run(ctx); err != nil {
				log.Printf("spectator feed stopped: %v", err)
			}
		}()
	}

	gm := mb.NewBattleshipGameManager(mapHeight, mapWidth, gameStore, optFuncs...)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer screen.Fini()

	// Panic Recovery: the terminal must be restored before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nBATTLESHIPS CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	log.Printf("starting battleships\tmap: %dx%d\tsave backend: %s", mapHeight, mapWidth, cfg.SaveBackend)
	if err := tui.NewApp(screen, gm).Run(ctx); err != nil {
		log.Println(err)
		return 1
	}
	return 0
}
