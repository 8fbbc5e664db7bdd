package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/996BC/latticenet/utils"
)

// The pKey is the plain (unsealed) identity seed stored on disk, for
// operators who accept the risk in exchange for not being prompted on
// every start.
const (
	PlainKeyType = 1
	PlainKey     = ".pKey"
)

// NewPKey generates a fresh identity for a node, then saves it unsealed.
func NewPKey(path string) (*KeyPair, error) {
	keyFile := path + "/" + PlainKey
	if err := checkBeforeNewKey(path, keyFile); err != nil {
		return nil, err
	}

	var seed [ed25519.SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	kp := keyPairFromSeed(seed)

	if err := saveOnDisk([]byte(utils.ToHex(kp.Seed[:])), keyFile); err != nil {
		return nil, err
	}
	return kp, nil
}

// OpenSKey unseals an sKey and writes it back out as a plain pKey.
func OpenSKey(skeyPath string, outputPath string) error {
	keyFile := outputPath + "/" + PlainKey
	if err := checkBeforeNewKey(outputPath, keyFile); err != nil {
		return err
	}

	kp, err := RestoreSKey(skeyPath)
	if err != nil {
		return err
	}

	return saveOnDisk([]byte(utils.ToHex(kp.Seed[:])), keyFile)
}

// RestorePKey restores the identity key pair from a plain key file.
func RestorePKey(path string) (*KeyPair, error) {
	keyFile := path + "/" + PlainKey
	hexSeed, err := readKeyFile(keyFile)
	if err != nil {
		return nil, err
	}

	seedBytes, err := utils.FromHex(string(hexSeed))
	if err != nil {
		return nil, err
	}
	if len(seedBytes) != ed25519.SeedSize {
		return nil, errors.New("pKey file does not hold a valid ed25519 seed")
	}

	var seed [ed25519.SeedSize]byte
	copy(seed[:], seedBytes)
	return keyPairFromSeed(seed), nil
}

func checkBeforeNewKey(path string, file string) error {
	if err := utils.AccessCheck(path); err != nil {
		return err
	}

	if err := utils.AccessCheck(file); err == nil {
		return fmt.Errorf("file %s already exists, remove it before creating a new one in the same directory", file)
	}

	return nil
}

func readKeyFile(file string) ([]byte, error) {
	if err := utils.AccessCheck(file); err != nil {
		return nil, err
	}

	content, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return []byte(strings.TrimSpace(string(content))), nil
}

func saveOnDisk(content []byte, file string) error {
	return ioutil.WriteFile(file, content, 0600)
}
