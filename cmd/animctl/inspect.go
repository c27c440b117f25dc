package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/phanxgames/animator"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest>",
	Short: "List the bones and clips of a manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, clips, err := loadRig(args[0])
		if err != nil {
			return err
		}
		printInspect(cmd.OutOrStdout(), m, clips)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printInspect(w io.Writer, m *animator.Manifest, clips *animator.ClipSet) {
	fmt.Fprintf(w, "skeleton %s\n", m.Skeleton.Name)
	fmt.Fprintf(w, "  bones: %s\n", strings.Join(m.BoneNames(), ", "))
	fmt.Fprintf(w, "clips (%d):\n", clips.Len())
	for i, name := range clips.Names() {
		c := clips.Clip(name)
		if c == nil {
			fmt.Fprintf(w, "  %d %-12s (empty)\n", i, name)
			continue
		}
		clamp := ""
		if c.ClampWhenFinished {
			clamp = " clamp"
		}
		fmt.Fprintf(w, "  %d %-12s %6.2fs %-8s tracks=%d%s\n",
			i, name, c.Duration, c.Loop, len(c.Tracks), clamp)
	}
}
