// animbake samples every frame of a document's active clip and writes the
// results as CSV, one row per track value. Useful for diffing animation
// changes and for piping baked curves into other tools.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/milk9111/keyframe/anim"
	"github.com/milk9111/keyframe/document"
)

func main() {
	file := flag.String("file", "", "animation document (.yaml)")
	fps := flag.Float64("fps", 0, "override sampling rate (default: document fps)")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	state, err := document.Load(*file)
	if err != nil {
		log.Fatal(err)
	}

	engine := anim.NewEngine()
	engine.LoadState(state)
	if *fps > 0 {
		engine.SetFPS(*fps)
	}

	clip, ok := engine.Clip(engine.ActiveClipID())
	if !ok {
		log.Fatalf("animbake: %s has no active clip", *file)
	}

	fmt.Println("frame,time,target,property,value")
	rate := engine.FPS()
	frames := int(math.Round((clip.End - clip.Start) * rate))
	for f := 0; f <= frames; f++ {
		t := clip.Start + float64(f)/rate
		for _, s := range engine.SampleAt(t) {
			fmt.Printf("%d,%g,%s,%s,%g\n", f, t, s.TargetID, s.Property.String(), s.Value)
		}
	}
}
