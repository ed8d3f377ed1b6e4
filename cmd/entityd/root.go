package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"entityd/internal/config"
	"entityd/internal/modelstore"
	"entityd/internal/nlp"
	"entityd/internal/observability"
)

// globalFlags are shared by every subcommand and override file/env config.
type globalFlags struct {
	configPath string
	dotenv     string
	logLevel   string
	logFormat  string
	backend    string
	modelDir   string
	modelName  string
	modelURL   string
	remoteURL  string
}

func newRootCmd() *cobra.Command { return newRootCmdWith(&globalFlags{}) }

// newRootCmdWith builds the command tree writing flag values into g.
func newRootCmdWith(g *globalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:           "entityd",
		Short:         "Named-entity, noun and noun-chunk extraction over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Config file (.yaml|.yml|.json|.toml)")
	pf.StringVar(&g.dotenv, "env-file", ".env", "dotenv file with ENTITYD_* variables (skipped if missing)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (default info)")
	pf.StringVar(&g.logFormat, "log-format", "", "Log format: json|console (default json)")
	pf.StringVar(&g.backend, "backend", "", "NLP backend: prose|remote (default prose)")
	pf.StringVar(&g.modelDir, "model-dir", "", "Directory holding downloaded models")
	pf.StringVar(&g.modelName, "model-name", "", "Model directory name under --model-dir (empty uses the built-in model)")
	pf.StringVar(&g.modelURL, "model-url", "", "Archive URL to fetch the model from when it is missing")
	pf.StringVar(&g.remoteURL, "remote-url", "", "Base URL of the NLP server for --backend=remote")

	root.AddCommand(newServeCmd(g), newExtractCmd(g), newModelCmd(g))
	return root
}

// loadConfig resolves configuration: file, then dotenv/env, then flags, then defaults.
func loadConfig(cmd *cobra.Command, g *globalFlags, apply func(*config.Config)) (config.Config, error) {
	var cfg config.Config
	if g.configPath != "" {
		c, err := config.Load(g.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	if err := config.LoadEnv(&cfg, g.dotenv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("log-level", &cfg.LogLevel, g.logLevel)
	set("log-format", &cfg.LogFormat, g.logFormat)
	set("backend", &cfg.Backend, g.backend)
	set("model-dir", &cfg.ModelDir, g.modelDir)
	set("model-name", &cfg.ModelName, g.modelName)
	set("model-url", &cfg.ModelURL, g.modelURL)
	set("remote-url", &cfg.RemoteURL, g.remoteURL)
	if apply != nil {
		apply(&cfg)
	}

	if err := cfg.Finalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	return observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
}

func storeOptions(cfg config.Config, log zerolog.Logger) modelstore.Options {
	return modelstore.Options{
		Dir:     cfg.ModelDir,
		Name:    cfg.ModelName,
		URL:     cfg.ModelURL,
		Retries: cfg.DownloadRetries,
		Timeout: cfg.DownloadTimeout.Std(),
		Logger:  log,
	}
}

// openBackend loads the configured model, fetching it first when needed.
func openBackend(ctx context.Context, cfg config.Config, log zerolog.Logger) (nlp.Backend, error) {
	opts := nlp.Options{
		Kind:          cfg.Backend,
		RemoteURL:     cfg.RemoteURL,
		RemoteTimeout: cfg.RemoteTimeout.Std(),
	}
	if cfg.Backend == nlp.KindProse && cfg.ModelName != "" {
		path, err := modelstore.Ensure(ctx, storeOptions(cfg, log))
		if err != nil {
			return nil, err
		}
		opts.ModelPath = path
	}
	start := time.Now()
	b, err := nlp.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("backend", b.Name()).Dur("dur", time.Since(start)).Msg("model loaded")
	return b, nil
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
