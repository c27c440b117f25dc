package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/animator"
	"github.com/spf13/cobra"
)

const (
	screenW   = 800
	screenH   = 600
	pixelsPer = 80.0
)

var previewCmd = &cobra.Command{
	Use:   "preview <manifest>",
	Short: "Open a preview window with hot reload",
	Long: `preview opens a window showing the skeleton of a manifest.

Space toggles editor preview of the selected clip; keys 1-9 select a clip.
Enter switches to live mode (Start), where keys 1-9 crossfade instead.
Saving the manifest reloads its clips without restarting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := args[0]
		_, root, clips, err := loadRig(path)
		if err != nil {
			return err
		}
		w, err := animator.NewManifestWatcher(path)
		if err != nil {
			return err
		}
		defer w.Close()

		p := newPreview(path, root, clips, cfg, w)
		ebiten.SetWindowTitle("animctl: " + path)
		ebiten.SetWindowSize(screenW, screenH)
		return ebiten.RunGame(p)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

// previewGame is the ebiten.Game behind the preview window.
type previewGame struct {
	path    string
	root    *animator.Node
	clips   *animator.ClipSet
	session *animator.Session
	ticker  *animator.Ticker
	watcher *animator.ManifestWatcher
	status  string
	live    bool
}

func newPreview(path string, root *animator.Node, clips *animator.ClipSet, cfg animator.Config, w *animator.ManifestWatcher) *previewGame {
	tk := animator.NewTicker()
	g := &previewGame{
		path:    path,
		root:    root,
		clips:   clips,
		ticker:  tk,
		watcher: w,
	}
	g.session = animator.NewSession(root, clips, animator.WithConfig(cfg), animator.WithFrameSource(tk))
	g.session.OnAnimationFinished(func(e animator.FinishedEvent) {
		g.status = "finished " + e.Clip
	})
	tk.OnUpdate(func(t animator.Tick) {
		if t.Live {
			g.session.Update(t.Delta)
		}
	})
	return g
}

func (g *previewGame) Update() error {
	if ok, err := g.watcher.ReloadInto(g.path, g.clips); err != nil {
		g.status = "reload failed: " + err.Error()
	} else if ok {
		g.status = "reloaded"
		if g.live {
			g.session.Start()
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.toggleLive()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace) && !g.live:
		g.session.Play()
	}

	for i := 0; i < 9; i++ {
		if !inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			continue
		}
		if g.live {
			g.session.Mix(g.session.Registry().Name(i))
		} else {
			g.session.SetSelection(i)
		}
	}

	g.ticker.Advance(1 / float64(ebiten.TPS()))
	return nil
}

func (g *previewGame) toggleLive() {
	g.live = !g.live
	g.ticker.SetRunning(g.live)
	if g.live {
		g.session.Awake()
		g.session.Start()
		g.status = "live"
		return
	}
	g.session.Close()
	g.status = "editor"
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1a, 0x1a, 0x26, 0xff})
	g.drawSkeleton(screen)
	ebitenutil.DebugPrint(screen, g.hud())
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func (g *previewGame) hud() string {
	s := g.session
	reg := s.Registry()
	var b strings.Builder
	mode := "editor"
	if g.live {
		mode = "live"
	}
	fmt.Fprintf(&b, "%s  mode=%s  [%s]  TPS %.0f\n", g.path, mode, s.PlayLabel(), ebiten.ActualTPS())
	names := s.Options()
	for i, name := range names {
		marker := " "
		if i == s.Selected() {
			marker = ">"
		}
		a := reg.Get(name)
		switch {
		case a == nil && reg.Has(name):
			fmt.Fprintf(&b, "%s %d %-10s (empty)\n", marker, i+1, name)
		case a == nil:
			fmt.Fprintf(&b, "%s %d %-10s\n", marker, i+1, name)
		default:
			fmt.Fprintf(&b, "%s %d %-10s w=%.2f t=%.2f\n", marker, i+1, name, a.EffectiveWeight(), a.Time())
		}
	}
	if g.status != "" {
		b.WriteString(g.status + "\n")
	}
	return b.String()
}

// drawSkeleton draws bones in the X/Y plane, each linked to its parent bone.
func (g *previewGame) drawSkeleton(screen *ebiten.Image) {
	ox, oy := float32(screenW/2), float32(screenH*3/4)
	project := func(p animator.Vec3) (float32, float32) {
		return ox + float32(p.X*pixelsPer), oy - float32(p.Y*pixelsPer)
	}
	bone := color.RGBA{0xf0, 0xc0, 0x40, 0xff}
	link := color.RGBA{0x80, 0x80, 0xa0, 0xff}

	world := animator.WorldPositions(g.root)
	for n, p := range world {
		x, y := project(p)
		if parent := animator.ParentBone(n); parent != nil {
			px, py := project(world[parent])
			vector.StrokeLine(screen, px, py, x, y, 2, link, true)
		}
	}
	for _, p := range world {
		x, y := project(p)
		vector.DrawFilledCircle(screen, x, y, 5, bone, true)
	}
}
