package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/sketchboard/internal/config"
)

// cli carries the state shared by all subcommands
type cli struct {
	configPath string
	logPath    string
	settings   []string
	cfg        *config.Config
	logFile    *os.File
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "sketchboard",
		Short:        "Share, inspect and replay freehand drawings",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logFile != nil {
				c.logFile.Close()
			}
		},
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Config file (default ~/.config/sketchboard/config.toml)")
	root.PersistentFlags().StringVar(&c.logPath, "log", "", "Write log output to this file")
	root.PersistentFlags().StringArrayVar(&c.settings, "set", nil, "Override a setting for this run (key=value, repeatable)")

	root.AddCommand(encodeCmd(c))
	root.AddCommand(decodeCmd(c))
	root.AddCommand(statsCmd(c))
	root.AddCommand(layersCmd(c))
	root.AddCommand(configCmd(c))
	root.AddCommand(versionCmd())
	return root
}

// setup configures logging and loads the config file
func (c *cli) setup() error {
	if c.logPath != "" {
		logFile, err := os.Create(c.logPath)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		c.logFile = logFile
		log.SetOutput(logFile)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetOutput(io.Discard)
	}

	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFromFile(c.configPath)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	for _, s := range c.settings {
		key, value, err := config.ParseAssignment(s)
		if err != nil {
			return fmt.Errorf("invalid --set: %w", err)
		}
		log.Printf("Session setting %s = %s", key, value)
		c.cfg.Set(key, value)
	}
	return nil
}
