package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/animator"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "animctl",
	Short: "animctl drives animation manifests outside a game",
	Long: `animctl loads a skeleton and clip manifest (YAML) and lets you list its
clips, run a headless blend simulation, or open a live preview window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		animator.Configure(animator.LogConfig{Level: logLevel, Component: "animctl"})
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn); defaults to $ANIMATOR_LOG")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "session config YAML")
}

// loadConfig returns the --config file, or the defaults when none is given.
func loadConfig() (animator.Config, error) {
	if configPath == "" {
		return animator.DefaultConfig(), nil
	}
	return animator.LoadConfig(configPath)
}

// loadRig reads the manifest at path and builds its skeleton and clip set.
func loadRig(path string) (*animator.Manifest, *animator.Node, *animator.ClipSet, error) {
	m, err := animator.LoadManifest(path)
	if err != nil {
		return nil, nil, nil, err
	}
	clips, err := m.ClipSet()
	if err != nil {
		return nil, nil, nil, err
	}
	return m, m.BuildSkeleton(), clips, nil
}
