package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/odmkit/webodm-client/internal/client"
	"github.com/odmkit/webodm-client/internal/config"
	"github.com/odmkit/webodm-client/internal/platform"
	"github.com/odmkit/webodm-client/internal/workflow"
)

type commandContext struct {
	configFlag *string
	serverFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, serverFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		if path == "" {
			defaultPath, err := config.DefaultPath()
			if err != nil {
				c.configErr = err
				return
			}
			path = defaultPath
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if override := strings.TrimSpace(*c.serverFlag); override != "" {
			cfg.Server.URL = override
		}
		c.config = &cfg
	})
	return c.config, c.configErr
}

// tokenPath is where the session token is persisted between runs.
func (c *commandContext) tokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(configDir, "webodm", "token"), nil
}

func (c *commandContext) readToken() string {
	path, err := c.tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c *commandContext) writeToken(token string) error {
	path, err := c.tokenPath()
	if err != nil {
		return err
	}
	if err := platform.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

func (c *commandContext) clearToken() error {
	path, err := c.tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// newClient builds a transport client from config, restoring any persisted
// token onto its session.
func (c *commandContext) newClient() (*client.Client, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}
	api := client.New(cfg.Server.URL,
		client.WithHTTPClient(httpClient),
		client.WithToken(c.readToken()),
	)
	return api, cfg, nil
}

// newWorkflow builds the orchestrator and the client it runs on.
func (c *commandContext) newWorkflow() (*workflow.Service, *client.Client, *config.Config, error) {
	api, cfg, err := c.newClient()
	if err != nil {
		return nil, nil, nil, err
	}
	return workflow.NewService(api), api, cfg, nil
}
