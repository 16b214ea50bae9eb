package main

import (
	"fmt"
	"log/slog"

	"clipkit/internal/config"
	"clipkit/internal/logging"
	"clipkit/internal/media/video"
)

// commandContext lazily resolves configuration and logging shared by every
// subcommand.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	cfg    *config.Config
	logger *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var logger *slog.Logger
	if c.logLevelFlag != nil && *c.logLevelFlag != "" {
		logger, err = logging.New(logging.Options{
			Level:  *c.logLevelFlag,
			Format: cfg.Logging.Format,
			LogDir: cfg.Logging.LogDir,
		})
	} else {
		logger, err = logging.NewFromConfig(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	c.logger = logger
	return logger, nil
}

// videoOptions translates configuration into handle options.
func (c *commandContext) videoOptions() ([]video.Option, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return []video.Option{
		video.WithFFmpeg(cfg.FFmpegBinary()),
		video.WithFFprobe(cfg.FFprobeBinary()),
		video.WithTempRoot(cfg.Paths.TempDir),
	}, nil
}

func (c *commandContext) openVideo(path string) (*video.Video, error) {
	opts, err := c.videoOptions()
	if err != nil {
		return nil, err
	}
	return video.Open(path, opts...)
}
