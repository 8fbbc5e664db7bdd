// Package node wires wire.Parser, identity, and ledger into a runnable
// process: it owns the UDP socket, the process's key material, and the
// store, and implements wire.Visitor to dispatch decoded messages into
// ledger. None of this is specified by spec.md (it explicitly keeps the
// "node supervisor" and "socket I/O" external to the protocol core) --
// this package is the supervisor spec.md assumes exists.
package node

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"

	"github.com/996BC/latticenet/identity"
	"github.com/996BC/latticenet/utils"
	"github.com/996BC/latticenet/wire"
)

// Config mirrors the teacher's cmd/anti996/config.go JSON-file shape:
// one flat struct, unmarshaled then verified field by field, no env vars.
// cmd/latticenode's flags only name the file to load and the optional
// metrics listen address; every other setting lives here.
type Config struct {
	Network   string    `json:"network"`
	IP        string    `json:"ip"`
	Port      int       `json:"port"`
	TCPPort   int       `json:"tcp_port"`
	Seeds     []string  `json:"seeds"`
	LogLevel  int       `json:"log_level"`
	DataPath  string    `json:"data_path"`
	Key       KeyConfig `json:"key"`
	Threshold string    `json:"work_threshold"`
}

type KeyConfig struct {
	Type int    `json:"type"`
	Path string `json:"path"`
}

// ParseConfig reads and validates a node config file.
func ParseConfig(path string) (*Config, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("node: missing config file")
	}
	if err := utils.AccessCheck(path); err != nil {
		return nil, err
	}

	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("node: read config file: %w", err)
	}

	conf := &Config{}
	if err := json.Unmarshal(content, conf); err != nil {
		return nil, fmt.Errorf("node: parse config: %w", err)
	}
	if err := verifyConfig(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func verifyConfig(c *Config) error {
	if _, err := networkTag(c.Network); err != nil {
		return err
	}
	if ip := net.ParseIP(c.IP); ip == nil {
		return fmt.Errorf("node: invalid ip: %s", c.IP)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("node: invalid port: %d", c.Port)
	}
	if c.TCPPort < 0 || c.TCPPort > 65535 {
		return fmt.Errorf("node: invalid tcp_port: %d", c.TCPPort)
	}
	if c.LogLevel < utils.LogErrorLevel || c.LogLevel > utils.LogDebugLevel {
		return fmt.Errorf("node: invalid log level: %d", c.LogLevel)
	}
	if err := utils.AccessCheck(c.DataPath); err != nil {
		return err
	}
	if c.Key.Type != identity.PlainKeyType && c.Key.Type != identity.SealKeyType {
		return fmt.Errorf("node: invalid key type: %d", c.Key.Type)
	}
	if err := utils.AccessCheck(c.Key.Path); err != nil {
		return err
	}
	if len(c.Threshold) != 16 {
		return fmt.Errorf("node: work_threshold must be 16 hex characters")
	}
	return nil
}

func networkTag(name string) (wire.NetworkTag, error) {
	switch name {
	case "test":
		return wire.NetworkTest, nil
	case "beta":
		return wire.NetworkBeta, nil
	case "live":
		return wire.NetworkLive, nil
	default:
		return 0, fmt.Errorf("node: invalid network: %q", name)
	}
}

// LoadKey restores this node's identity from Config.Key, prompting for a
// passphrase if the key is sealed.
func LoadKey(c *Config) (*identity.KeyPair, error) {
	switch c.Key.Type {
	case identity.PlainKeyType:
		return identity.RestorePKey(c.Key.Path)
	case identity.SealKeyType:
		return identity.RestoreSKey(c.Key.Path)
	default:
		return nil, fmt.Errorf("node: invalid key type: %d", c.Key.Type)
	}
}

// parseSeeds turns "host:port" strings into endpoints, skipping any that
// don't parse -- matching the teacher's parseSeeds, which tolerates a
// bad seed line rather than refusing to start.
func parseSeeds(seeds []string) []wire.Endpoint {
	var result []wire.Endpoint
	for _, s := range seeds {
		e, err := wire.ParseEndpoint(s)
		if err != nil {
			continue
		}
		result = append(result, e)
	}
	return result
}
