package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-papyrus/internal/config"
)

// defaultConfigName is the name `config path` searches for without --config.
const defaultConfigName = "papyrus"

// runConfig prints the effective configuration or where it is searched.
func runConfig(args []string, env *Environment) error {
	var common commonFlags
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printConfigUsage(env.Stderr) }
	addCommonFlags(fs, &common)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, errHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	positional := fs.Args()
	if len(positional) != 1 {
		printConfigUsage(env.Stderr)
		return fmt.Errorf("%w: config takes one subcommand", ErrUsage)
	}

	envCfg := loadEnvConfig(env.Getenv, env.Stderr)

	switch positional[0] {
	case "show":
		cfg, err := loadConfig(common, envCfg)
		if err != nil {
			return err
		}
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return err
	case "path":
		name := common.config
		if name == "" {
			name = envCfg.ConfigPath
		}
		if name == "" {
			name = defaultConfigName
		}
		for _, p := range config.SearchPaths(name) {
			fmt.Fprintln(env.Stdout, p)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown config command %q", ErrUsage, positional[0])
	}
}
