package node

import (
	"os"
	"testing"

	"github.com/996BC/latticenet/identity"
)

func validConfig(t *testing.T, dataPath, keyPath string) *Config {
	return &Config{
		Network:   "live",
		IP:        "0.0.0.0",
		Port:      7075,
		LogLevel:  1,
		DataPath:  dataPath,
		Key:       KeyConfig{Type: identity.PlainKeyType, Path: keyPath},
		Threshold: "ffffffc000000000",
	}
}

func TestVerifyConfigAcceptsWellFormed(t *testing.T) {
	dataDir := t.TempDir()
	keyFile := dataDir + "/.pKey"
	if err := os.WriteFile(keyFile, []byte("placeholder"), 0600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	conf := validConfig(t, dataDir, keyFile)
	if err := verifyConfig(conf); err != nil {
		t.Fatalf("expected a well-formed config to verify: %v", err)
	}
}

func TestVerifyConfigRejectsBadNetwork(t *testing.T) {
	dataDir := t.TempDir()
	conf := validConfig(t, dataDir, dataDir)
	conf.Network = "mainnet" // not one of test/beta/live
	if err := verifyConfig(conf); err == nil {
		t.Fatal("expected an unrecognized network to be rejected")
	}
}

func TestVerifyConfigRejectsBadPort(t *testing.T) {
	dataDir := t.TempDir()
	conf := validConfig(t, dataDir, dataDir)
	conf.Port = 70000
	if err := verifyConfig(conf); err == nil {
		t.Fatal("expected an out-of-range port to be rejected")
	}
}

func TestVerifyConfigRejectsShortThreshold(t *testing.T) {
	dataDir := t.TempDir()
	conf := validConfig(t, dataDir, dataDir)
	conf.Threshold = "ff"
	if err := verifyConfig(conf); err == nil {
		t.Fatal("expected a short work_threshold to be rejected")
	}
}

func TestParseThreshold(t *testing.T) {
	got, err := parseThreshold("ffffffc000000000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != 0xffffffc000000000 {
		t.Fatalf("expected 0xffffffc000000000, got 0x%x", got)
	}
}

func TestParseSeedsSkipsUnparseable(t *testing.T) {
	seeds := parseSeeds([]string{"192.168.1.1:7075", "not-an-endpoint", "10.0.0.1:9000"})
	if len(seeds) != 2 {
		t.Fatalf("expected 2 parsed seeds, got %d", len(seeds))
	}
	if seeds[0].Port() != 7075 || seeds[1].Port() != 9000 {
		t.Fatalf("unexpected seed ports: %v, %v", seeds[0].Port(), seeds[1].Port())
	}
}
