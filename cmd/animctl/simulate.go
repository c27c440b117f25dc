package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/phanxgames/animator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	simFrames  int
	simDelta   float64
	simMixes   []string
	simEvery   int
	simMetrics bool
	simScript  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <manifest>",
	Short: "Run a headless blend simulation",
	Long: `simulate starts a session on the manifest and steps it frame by frame,
printing the active and base clips, every weight and the root bone position.

Mix requests are given as name@frame, for example --mix run@10 --mix jump@40.
A weight can be added as name@frame:weight to re-weight instead.
--script runs a YAML playback script (see animator.Script) alongside.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, root, clips, err := loadRig(args[0])
		if err != nil {
			return err
		}
		schedule, err := parseMixes(simMixes)
		if err != nil {
			return err
		}
		var script *animator.Script
		if simScript != "" {
			data, err := os.ReadFile(simScript)
			if err != nil {
				return err
			}
			if script, err = animator.LoadScript(data); err != nil {
				return err
			}
		}
		return runSimulation(cmd.OutOrStdout(), root, clips, cfg, schedule, script)
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simFrames, "frames", 120, "number of frames to simulate")
	simulateCmd.Flags().Float64Var(&simDelta, "dt", 1.0/60, "seconds per frame")
	simulateCmd.Flags().StringArrayVar(&simMixes, "mix", nil, "mix request name@frame[:weight] (repeatable)")
	simulateCmd.Flags().IntVar(&simEvery, "every", 10, "print every n frames (mix frames are always printed)")
	simulateCmd.Flags().BoolVar(&simMetrics, "metrics", false, "print session counters at the end")
	simulateCmd.Flags().StringVar(&simScript, "script", "", "playback script YAML")
	rootCmd.AddCommand(simulateCmd)
}

type mixRequest struct {
	clip   string
	frame  int
	weight float64
	set    bool
}

// parseMixes decodes name@frame[:weight] requests, ordered by frame.
func parseMixes(specs []string) ([]mixRequest, error) {
	out := make([]mixRequest, 0, len(specs))
	for _, s := range specs {
		name, at, ok := strings.Cut(s, "@")
		if !ok || name == "" {
			return nil, fmt.Errorf("mix %q: want name@frame", s)
		}
		req := mixRequest{clip: name}
		frame, weight, hasWeight := strings.Cut(at, ":")
		n, err := strconv.Atoi(frame)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("mix %q: bad frame %q", s, frame)
		}
		req.frame = n
		if hasWeight {
			w, err := strconv.ParseFloat(weight, 64)
			if err != nil {
				return nil, fmt.Errorf("mix %q: bad weight %q", s, weight)
			}
			req.weight, req.set = w, true
		}
		out = append(out, req)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].frame < out[j].frame })
	return out, nil
}

func runSimulation(w io.Writer, root *animator.Node, clips *animator.ClipSet, cfg animator.Config, schedule []mixRequest, script *animator.Script) error {
	reg := prometheus.NewRegistry()
	tk := animator.NewTicker()
	tk.SetRunning(true)
	s := animator.NewSession(root, clips,
		animator.WithConfig(cfg),
		animator.WithFrameSource(tk),
		animator.WithMetrics(animator.NewMetrics(reg)),
	)
	s.OnAnimationFinished(func(e animator.FinishedEvent) {
		fmt.Fprintf(w, "        finished %s\n", e.Clip)
	})
	s.Start()

	sub := tk.OnUpdate(func(t animator.Tick) { s.Update(t.Delta) })
	defer sub.Stop()

	next := 0
	for frame := 0; frame < simFrames; frame++ {
		mixed := false
		if script != nil && !script.Done() {
			script.Step(s)
			mixed = true
		}
		for next < len(schedule) && schedule[next].frame == frame {
			req := schedule[next]
			if req.set {
				s.MixWith(req.clip, animator.MixOptions{Transition: cfg.Transition, Weight: req.weight, Warp: cfg.Warp})
			} else {
				s.Mix(req.clip)
			}
			mixed = true
			next++
		}
		tk.Advance(simDelta)
		if mixed || simEvery > 0 && frame%simEvery == 0 || frame == simFrames-1 {
			printFrame(w, frame, s)
		}
	}

	if simMetrics {
		return printCounters(w, reg)
	}
	return nil
}

func printFrame(w io.Writer, frame int, s *animator.Session) {
	reg := s.Registry()
	var b strings.Builder
	fmt.Fprintf(&b, "%5d  active=%-8s base=%-8s", frame, reg.NameOf(s.Active()), reg.NameOf(s.Base()))
	for _, name := range reg.Names() {
		if reg.Get(name) == nil {
			continue
		}
		fmt.Fprintf(&b, " %s=%.2f", name, s.Weight(name))
	}
	if rb := s.RootBone(); rb != nil {
		p := rb.Position
		fmt.Fprintf(&b, "  root=(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
	}
	fmt.Fprintln(w, b.String())
}

func printCounters(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s%s %v\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s%s %v\n", mf.GetName(), labels, m.GetGauge().GetValue())
			}
		}
	}
	return nil
}
