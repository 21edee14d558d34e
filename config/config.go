// Package config reads the strip switch of the compactor.
//
// The switch is set at up to three levels, main, server and location. A level
// that leaves it unset inherits the value of the level enclosing it, and the
// main level defaults to disabled.
//
//	strip: false
//	servers:
//	  - names: ["example.com", "*.example.org"]
//	    strip: true
//	    locations:
//	      - path: "/raw/**"
//	        strip: false
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v2"
)

// Config is the main level.
type Config struct {
	Strip   *bool     `yaml:"strip,omitempty"`
	Servers []*Server `yaml:"servers,omitempty"`
}

// Server applies to requests whose host matches one of Names.
type Server struct {
	Names     []string    `yaml:"names"`
	Strip     *bool       `yaml:"strip,omitempty"`
	Locations []*Location `yaml:"locations,omitempty"`
}

// Location applies to request paths matching Path.
type Location struct {
	Path  string `yaml:"path"`
	Strip *bool  `yaml:"strip,omitempty"`
}

var (
	errNoServerNames = errors.New("server must have at least one name")
	errNoPath        = errors.New("location must have a path")
)

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", path, err)
	}
	return cfg, nil
}

// Parse parses and validates a config. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for i, s := range c.Servers {
		if len(s.Names) == 0 {
			return fmt.Errorf("servers[%d]: %w", i, errNoServerNames)
		}
		for _, name := range s.Names {
			if !doublestar.ValidatePattern(strings.ToLower(name)) {
				return fmt.Errorf("servers[%d]: invalid name pattern %q: %w", i, name, doublestar.ErrBadPattern)
			}
		}
		for j, l := range s.Locations {
			if l.Path == "" {
				return fmt.Errorf("servers[%d].locations[%d]: %w", i, j, errNoPath)
			}
			if !doublestar.ValidatePattern(l.Path) {
				return fmt.Errorf("servers[%d].locations[%d]: invalid path pattern %q: %w", i, j, l.Path, doublestar.ErrBadPattern)
			}
		}
	}
	return nil
}

// Enabled resolves the switch for a request to host and path.
// host may carry a port, which is ignored.
func (c *Config) Enabled(host, path string) bool {
	enabled := false
	if c == nil {
		return enabled
	}
	if c.Strip != nil {
		enabled = *c.Strip
	}

	s := c.server(host)
	if s == nil {
		return enabled
	}
	if s.Strip != nil {
		enabled = *s.Strip
	}

	if l := s.location(path); l != nil && l.Strip != nil {
		enabled = *l.Strip
	}
	return enabled
}

// server returns the first server with a name matching host.
func (c *Config) server(host string) *Server {
	host = strings.ToLower(stripPort(host))
	for _, s := range c.Servers {
		for _, name := range s.Names {
			if ok, _ := doublestar.Match(strings.ToLower(name), host); ok {
				return s
			}
		}
	}
	return nil
}

// location returns the matching location with the longest pattern.
func (s *Server) location(path string) *Location {
	var best *Location
	for _, l := range s.Locations {
		if ok, _ := doublestar.Match(l.Path, path); !ok {
			continue
		}
		if best == nil || len(l.Path) > len(best.Path) {
			best = l
		}
	}
	return best
}

func stripPort(host string) string {
	if strings.HasPrefix(host, "[") {
		if i := strings.IndexByte(host, ']'); i > 0 {
			return host[1:i]
		}
		return host
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 && strings.IndexByte(host, ':') == i {
		return host[:i]
	}
	return host
}
