// Package identity manages a node's long-lived ed25519 identity: sealing
// it at rest, loading it back, and driving the node_id_handshake that
// proves possession of it to a peer.
package identity

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/howeyc/gopass"
	"golang.org/x/crypto/scrypt"

	"github.com/996BC/latticenet/utils"
)

// The sKey is the sealed ed25519 seed stored on disk. It's safer than
// plain key storage: the aes key used to encrypt the seed is derived
// from a user passphrase by scrypt, following the teacher's skey shape
// but sealing an ed25519 seed(32) instead of a secp256k1 scalar.
const (
	SealKeyType = 2
	SealKey     = ".sKey"

	version1   = 1
	kdfName    = "scrypt"
	dkLen      = 32
	scryptN    = 262144
	scryptP    = 1
	scryptR    = 8
	saltLen    = 32
	cryptoName = "aes-256-gcm"
)

type skeyJSON struct {
	Version    int         `json:"version"`
	KdfName    string      `json:"kdfName"`
	KDF        interface{} `json:"kdf"`
	CryptoName string      `json:"cryptoName"`
	Crypto     interface{} `json:"crypto"`
}

type scryptKDF struct {
	DkLen int    `json:"dkLen"`
	N     int    `json:"n"`
	P     int    `json:"p"`
	R     int    `json:"r"`
	Salt  string `json:"salt"`
}

type aes256GcmCrypto struct {
	CipherText string `json:"cipherText"`
	Nonce      string `json:"nonce"`
}

// KeyPair is a node's identity: an ed25519 seed plus its derived keys.
// Account is the 32-byte public key as it appears on the wire
// (node_id_handshake response, confirm_ack vote account).
type KeyPair struct {
	Seed    [ed25519.SeedSize]byte
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

func keyPairFromSeed(seed [ed25519.SeedSize]byte) *KeyPair {
	priv := ed25519.NewKeyFromSeed(seed[:])
	return &KeyPair{
		Seed:    seed,
		Public:  priv.Public().(ed25519.PublicKey),
		Private: priv,
	}
}

// Account returns the 32-byte wire account identifier for this key pair.
func (k *KeyPair) Account() [32]byte {
	var a [32]byte
	copy(a[:], k.Public)
	return a
}

// Sign produces the 64-byte wire signature over msg.
func (k *KeyPair) Sign(msg []byte) [64]byte {
	var sig [64]byte
	copy(sig[:], ed25519.Sign(k.Private, msg))
	return sig
}

// VerifyAccount checks a signature against a raw 32-byte account, for
// peers whose KeyPair we don't hold.
func VerifyAccount(account [32]byte, msg []byte, signature [64]byte) bool {
	return ed25519.Verify(ed25519.PublicKey(account[:]), msg, signature[:])
}

// NewSKey generates a fresh identity for a node, then seals and saves it
// under path.
func NewSKey(path string) (*KeyPair, error) {
	keyFile := path + "/" + SealKey
	if err := checkBeforeNewKey(path, keyFile); err != nil {
		return nil, err
	}

	var seed [ed25519.SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	kp := keyPairFromSeed(seed)

	if err := genSKeyAndSaveIt(kp, keyFile); err != nil {
		return nil, err
	}
	return kp, nil
}

// ReNewSKey generates a new sKey from an existing old sKey, re-sealed
// under a (possibly new) passphrase.
func ReNewSKey(oldKeyPath string, newKeyPath string) error {
	newKeyFile := newKeyPath + "/" + SealKey
	if err := utils.AccessCheck(newKeyPath); err != nil {
		return err
	}

	kp, err := RestoreSKey(oldKeyPath)
	if err != nil {
		return err
	}

	return genSKeyAndSaveIt(kp, newKeyFile)
}

// RestoreSKey restores the identity key pair from a sealed file on disk,
// prompting for the passphrase that unseals it.
func RestoreSKey(path string) (*KeyPair, error) {
	keyFile := path + "/" + SealKey
	jsonBytes, err := readKeyFile(keyFile)
	if err != nil {
		return nil, err
	}

	ks, kdf, aesCrypto, err := jsonUnMarshal(jsonBytes)
	if err != nil {
		return nil, err
	}

	fmt.Printf("Input your passphrase to decrypt your key:")
	pass, err := gopass.GetPasswdMasked()
	if err != nil {
		return nil, fmt.Errorf("get passphrase failed: %v", err)
	}

	return aesDecrypt(pass, ks, kdf, aesCrypto)
}

func genSKeyAndSaveIt(kp *KeyPair, outputFile string) error {
	pass, err := getPassphrase()
	if err != nil {
		return err
	}

	sealedContent, err := seal(pass, kp.Seed[:])
	if err != nil {
		return err
	}

	return saveOnDisk(sealedContent, outputFile)
}

func getPassphrase() ([]byte, error) {
	fmt.Printf("Input your passphrase(please remember it):")
	pass1, err := gopass.GetPasswdMasked()
	if err != nil {
		return nil, fmt.Errorf("get passphrase failed: %v", err)
	} else if len(pass1) < 8 {
		return nil, fmt.Errorf("password should be at least 8 characters")
	}
	fmt.Printf("Repeat it:")
	pass2, err := gopass.GetPasswdMasked()
	if err != nil {
		return nil, fmt.Errorf("get passphrase failed: %v", err)
	}
	if !bytes.Equal(pass1, pass2) {
		return nil, errors.New("inconsistent input")
	}

	return pass1, nil
}

func seal(passphrase []byte, seed []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	dk, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, dkLen)
	if err != nil {
		return nil, err
	}

	nonce, cipherText, err := aesEncrypt(seed, dk)
	if err != nil {
		return nil, err
	}

	return jsonMarshal(utils.ToHex(nonce), utils.ToHex(cipherText), utils.ToHex(salt))
}

func aesEncrypt(plaintext []byte, key []byte) (nonceRet, cipherTextRet []byte, err error) {
	if len(key) != 32 {
		return nil, nil, fmt.Errorf("AES key must be 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	nonce := make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	cipherText := aesgcm.Seal(nil, nonce, plaintext, nil)
	return nonce, cipherText, nil
}

func jsonMarshal(nonce, cipherText, salt string) ([]byte, error) {
	kdf := &scryptKDF{DkLen: dkLen, N: scryptN, P: scryptP, R: scryptR, Salt: salt}
	aesCrypto := &aes256GcmCrypto{CipherText: cipherText, Nonce: nonce}
	ks := skeyJSON{Version: version1, KdfName: kdfName, KDF: kdf, CryptoName: cryptoName, Crypto: aesCrypto}
	return json.MarshalIndent(ks, "", "  ")
}

func jsonUnMarshal(jsonBytes []byte) (*skeyJSON, *scryptKDF, *aes256GcmCrypto, error) {
	ks := &skeyJSON{}
	kdf := &scryptKDF{}
	aesCrypto := &aes256GcmCrypto{}
	ks.KDF = kdf
	ks.Crypto = aesCrypto
	if err := json.Unmarshal(jsonBytes, &ks); err != nil {
		return nil, nil, nil, err
	}
	if err := checkSealParams(ks, kdf, aesCrypto); err != nil {
		return nil, nil, nil, err
	}
	return ks, kdf, aesCrypto, nil
}

func checkSealParams(ks *skeyJSON, kdf *scryptKDF, aesCrypto *aes256GcmCrypto) error {
	if ks.Version != version1 {
		return fmt.Errorf("unrecognized version: %d", ks.Version)
	}
	if ks.KdfName != kdfName {
		return fmt.Errorf("unrecognized kdf: %s", ks.KdfName)
	}
	if ks.CryptoName != cryptoName {
		return fmt.Errorf("unrecognized crypto: %s", ks.CryptoName)
	}
	if kdf.DkLen != dkLen || kdf.N != scryptN || kdf.P != scryptP || kdf.R != scryptR {
		return fmt.Errorf("unrecognized kdf parameters")
	}
	if len(kdf.Salt) == 0 || len(aesCrypto.CipherText) == 0 || len(aesCrypto.Nonce) == 0 {
		return fmt.Errorf("the essential content is missing")
	}
	return nil
}

func aesDecrypt(pass []byte, ks *skeyJSON, kdf *scryptKDF, aesCrypto *aes256GcmCrypto) (*KeyPair, error) {
	salt, _ := utils.FromHex(kdf.Salt)
	dk, err := scrypt.Key(pass, salt, kdf.N, kdf.R, kdf.P, kdf.DkLen)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(dk)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce, _ := utils.FromHex(aesCrypto.Nonce)
	cipherText, _ := utils.FromHex(aesCrypto.CipherText)
	plainText, err := aesgcm.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return nil, err
	}
	if len(plainText) != ed25519.SeedSize {
		return nil, fmt.Errorf("recovered seed has wrong length: %d", len(plainText))
	}

	var seed [ed25519.SeedSize]byte
	copy(seed[:], plainText)
	return keyPairFromSeed(seed), nil
}
