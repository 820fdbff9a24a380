package main

import (
	"context"
	"os"
	"strings"

	"transcribe/internal/app"
	"transcribe/internal/config"
	"transcribe/internal/logging"
)

type commandContext struct {
	driverFlag *string
	sqliteFlag *string

	cfg *config.AppConfig
	app *app.App
}

func newCommandContext(driverFlag, sqliteFlag *string) *commandContext {
	return &commandContext{driverFlag: driverFlag, sqliteFlag: sqliteFlag}
}

// config loads the environment configuration with flag overrides applied.
func (c *commandContext) config() *config.AppConfig {
	if c.cfg != nil {
		return c.cfg
	}
	cfg := config.Load()
	if c.driverFlag != nil && strings.TrimSpace(*c.driverFlag) != "" {
		cfg.Database.Driver = strings.TrimSpace(*c.driverFlag)
	}
	if c.sqliteFlag != nil && strings.TrimSpace(*c.sqliteFlag) != "" {
		cfg.Database.SQLitePath = strings.TrimSpace(*c.sqliteFlag)
	}
	c.cfg = cfg
	return cfg
}

// ensureApp opens the application once per invocation. Logs go to stderr so
// command output stays parseable.
func (c *commandContext) ensureApp(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg := c.config()
	loc := logLocation(cfg.LogTimezone)
	a, err := app.Open(ctx, cfg, logging.New(os.Stderr, loc), loc)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *commandContext) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}
