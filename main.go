package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "", "level spec in prefabs/ (defaults to level.yaml)")
	server := flag.String("server", "", "websocket URL of a selection server, e.g. ws://localhost:8080/ws")
	debug := flag.Bool("debug", false, "show the camera debug overlay")
	watch := flag.Bool("watch", true, "hot reload camera, controls and scripts from prefabs/")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("ringworld")

	game, err := NewGame(gameConfig{
		Level:  *levelName,
		Server: *server,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	// Mouse look needs relative movement; the pause menu releases the cursor.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
