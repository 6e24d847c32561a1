package config

import "fmt"

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8000"
	}
}

func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server addr must not be empty")
	}
	return nil
}
