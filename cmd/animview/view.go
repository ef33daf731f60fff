package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/keyframe/anim"
	"github.com/milk9111/keyframe/document"
)

const (
	laneHeight = 110
	laneGap    = 8
	headerH    = 28
	sidePad    = 16
)

var lanePalette = []color.RGBA{
	colornames.Orange,
	colornames.Deepskyblue,
	colornames.Yellowgreen,
	colornames.Orchid,
	colornames.Tomato,
	colornames.Gold,
}

type view struct {
	engine   *anim.Engine
	title    string
	docPath  string
	watch    *document.Watcher
	selected int // index into the active clip's track list
	w, h     int
}

func newView(engine *anim.Engine, docPath string, watch *document.Watcher) *view {
	title := docPath
	if title == "" {
		title = "demo"
	}
	return &view{engine: engine, title: title, docPath: filepath.Clean(docPath), watch: watch}
}

func (v *view) Update() error {
	e := v.engine
	v.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if e.PlaybackState() == anim.Playing {
			e.Pause()
		} else {
			e.Play()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		e.Stop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if c, ok := e.Clip(e.ActiveClipID()); ok {
			e.SetClipLoop(c.ID, !c.Loop)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if c, ok := e.Clip(e.ActiveClipID()); ok && len(c.TrackIDs) > 0 {
			v.selected = (v.selected + 1) % len(c.TrackIDs)
			e.SelectTrack(c.TrackIDs[v.selected], false)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if id := v.selectedTrack(); id != 0 {
			if t, ok := e.Track(id); ok {
				e.SetTrackMuted(id, !t.Muted)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if id := v.selectedTrack(); id != 0 {
			if len(e.SoloTracks()) > 0 {
				e.SetSoloTracks()
			} else {
				e.SetSoloTracks(id)
			}
		}
	}

	frame := 1.0 / e.FPS()
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		e.Seek(e.Playhead() - frame)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		e.Seek(e.Playhead() + frame)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		if c, ok := e.Clip(e.ActiveClipID()); ok {
			e.Seek(c.Start)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.selectAllKeysOnSelectedTrack()
		e.CopySelectedKeys()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		v.selectAllKeysOnSelectedTrack()
		e.CutSelectedKeys()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		e.Paste()
	}

	e.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

// pollReload drains the document watcher without blocking the frame and
// swaps the engine state when the opened document changes on disk.
func (v *view) pollReload() {
	if v.watch == nil {
		return
	}
	select {
	case path, ok := <-v.watch.Events:
		if !ok || filepath.Clean(path) != v.docPath {
			return
		}
		state, err := document.Load(path)
		if err != nil {
			fmt.Printf("animview: reload %s: %v\n", path, err)
			return
		}
		v.engine.LoadState(state)
	case err := <-v.watch.Errors:
		if err != nil {
			fmt.Printf("animview: watch: %v\n", err)
		}
	default:
	}
}

func (v *view) selectedTrack() anim.TrackID {
	c, ok := v.engine.Clip(v.engine.ActiveClipID())
	if !ok || len(c.TrackIDs) == 0 {
		return 0
	}
	if v.selected >= len(c.TrackIDs) {
		v.selected = 0
	}
	return c.TrackIDs[v.selected]
}

func (v *view) selectAllKeysOnSelectedTrack() {
	id := v.selectedTrack()
	if id == 0 {
		return
	}
	t, ok := v.engine.Track(id)
	if !ok {
		return
	}
	for i, k := range t.Channel.Keys {
		v.engine.SelectKey(id, k.ID, i > 0)
	}
}

func (v *view) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 24, 28, 255})
	e := v.engine
	c, ok := e.Clip(e.ActiveClipID())
	if !ok {
		ebitenutil.DebugPrintAt(screen, "no active clip", sidePad, sidePad)
		return
	}

	status := fmt.Sprintf("%s  clip=%s  t=%.3f  fps=%.0f  loop=%v  [space] play/pause [s] stop [l] loop [tab] track [m] mute [o] solo [c/x/v] copy/cut/paste",
		v.title, c.Name, e.Playhead(), e.FPS(), c.Loop)
	ebitenutil.DebugPrintAt(screen, status, sidePad, 8)

	span := c.End - c.Start
	if span <= 0 {
		return
	}
	laneW := float32(v.w - 2*sidePad)
	toX := func(t float64) float32 {
		return sidePad + laneW*float32((t-c.Start)/span)
	}

	solo := e.SoloTracks()
	for i, trackID := range c.TrackIDs {
		t, ok := e.Track(trackID)
		if !ok {
			continue
		}
		top := float32(headerH + i*(laneHeight+laneGap))
		col := lanePalette[i%len(lanePalette)]
		v.drawLane(screen, e, c, t, top, laneW, toX, col, i == v.selected, solo)
	}

	// Markers and playhead span all lanes.
	bottom := float32(headerH + len(c.TrackIDs)*(laneHeight+laneGap))
	for _, m := range e.Markers() {
		x := toX(m.Time)
		vector.StrokeLine(screen, x, headerH, x, bottom, 1, colornames.Slategray, false)
		ebitenutil.DebugPrintAt(screen, m.Label, int(x)+3, int(bottom))
	}
	px := toX(e.Playhead())
	vector.StrokeLine(screen, px, headerH, px, bottom, 2, colornames.White, false)
}

func (v *view) drawLane(screen *ebiten.Image, e *anim.Engine, c anim.Clip, t anim.Track, top, laneW float32, toX func(float64) float32, col color.RGBA, selected bool, solo []anim.TrackID) {
	bg := color.RGBA{36, 36, 42, 255}
	if selected {
		bg = color.RGBA{48, 48, 58, 255}
	}
	vector.DrawFilledRect(screen, sidePad, top, laneW, laneHeight, bg, false)

	label := fmt.Sprintf("%s/%s", t.TargetID, t.Property.String())
	if t.Expr != "" {
		label += "  expr: " + t.Expr
	}
	if t.Muted {
		label += "  [muted]"
	}
	for _, id := range solo {
		if id == t.ID {
			label += "  [solo]"
		}
	}
	ebitenutil.DebugPrintAt(screen, label, sidePad+4, int(top)+2)

	lo, hi := channelRange(t)
	toY := func(val float64) float32 {
		if hi == lo {
			return top + laneHeight/2
		}
		n := (val - lo) / (hi - lo)
		return top + laneHeight - 18 - float32(n)*(laneHeight-30)
	}

	// Curve polyline sampled per pixel.
	span := c.End - c.Start
	var prevX, prevY float32
	started := false
	for px := 0; px <= int(laneW); px += 2 {
		tt := c.Start + span*float64(px)/float64(laneW)
		val, ok := anim.EvaluateChannel(&t.Channel, tt)
		if !ok {
			break
		}
		x := sidePad + float32(px)
		y := toY(val)
		if started {
			vector.StrokeLine(screen, prevX, prevY, x, y, 1, col, false)
		}
		prevX, prevY = x, y
		started = true
	}

	for _, k := range t.Channel.Keys {
		x := toX(k.T)
		y := toY(k.V)
		vector.DrawFilledRect(screen, x-3, y-3, 6, 6, colornames.White, false)
	}
}

func channelRange(t anim.Track) (float64, float64) {
	if len(t.Channel.Keys) == 0 {
		return 0, 0
	}
	lo, hi := t.Channel.Keys[0].V, t.Channel.Keys[0].V
	for _, k := range t.Channel.Keys {
		if k.V < lo {
			lo = k.V
		}
		if k.V > hi {
			hi = k.V
		}
	}
	// Leave headroom for overshooting eases.
	pad := (hi - lo) * 0.25
	return lo - pad, hi + pad
}

func (v *view) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.w, v.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
