// animview is a minimal preview player for animation documents: it drives
// the engine with real ticks and draws each track's curve, keys, markers and
// the playhead. It is deliberately widget-free; timeline editing UIs live
// elsewhere.
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/keyframe/anim"
	"github.com/milk9111/keyframe/document"
)

func main() {
	file := flag.String("file", "", "animation document (.yaml); empty runs the built-in demo")
	flag.Parse()

	engine := anim.NewEngine()
	var watch *document.Watcher
	if *file != "" {
		state, err := document.Load(*file)
		if err != nil {
			log.Fatal(err)
		}
		engine.LoadState(state)

		watch, err = document.NewWatcher(filepath.Dir(*file))
		if err != nil {
			log.Printf("animview: live reload unavailable: %v", err)
		} else {
			defer watch.Close()
		}
	} else {
		buildDemo(engine)
	}

	clip, err := newSystemClipboard()
	if err != nil {
		log.Printf("animview: system clipboard unavailable: %v", err)
	} else {
		engine.SetClipboard(clip)
	}

	ebiten.SetWindowSize(1080, 640)
	ebiten.SetWindowTitle("animview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newView(engine, *file, watch)); err != nil {
		log.Fatal(err)
	}
}

// buildDemo populates the engine with a small scene so the player has
// something to show without a document.
func buildDemo(e *anim.Engine) {
	e.NewClip("demo", 0, 4)
	e.SetClipLoop(e.ActiveClipID(), true)

	posX := e.EnsureTrack("cube", "position.x")
	a := e.InsertKey(posX, 0, 0, anim.InterpLinear)
	e.InsertKey(posX, 2, 6, anim.InterpLinear)
	e.InsertKey(posX, 4, 0, anim.InterpLinear)
	e.ApplyEasingPreset([]anim.KeyRef{{Track: posX, Key: a}}, anim.PresetEaseOut, 1)

	posY := e.EnsureTrack("cube", "position.y")
	b := e.InsertKey(posY, 0, 3, anim.InterpLinear)
	e.InsertKey(posY, 4, 0, anim.InterpLinear)
	e.ApplyEasingPreset([]anim.KeyRef{{Track: posY, Key: b}}, anim.PresetBounce, 1)

	emission := e.EnsureTrack("emitter", "fluid.emissionRate")
	c := e.InsertKey(emission, 0.5, 10, anim.InterpLinear)
	e.InsertKey(emission, 3.5, 80, anim.InterpLinear)
	e.ApplyEasingPreset([]anim.KeyRef{{Track: emission, Key: c}}, anim.PresetElastic, 1)

	wobble := e.EnsureTrack("cube", "rotation.z")
	e.SetTrackExpression(wobble, "math.sin(t * 6.28318) * 15")

	e.AddMarker(2, "mid")
}
