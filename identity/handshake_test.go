package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/996BC/latticenet/wire"
)

func genKeyPair(t *testing.T) *KeyPair {
	var seed [ed25519.SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		t.Fatalf("generate seed: %v", err)
	}
	return keyPairFromSeed(seed)
}

func TestHandshakeQueryRespondVerify(t *testing.T) {
	server := NewHandshake(genKeyPair(t))
	client := NewHandshake(genKeyPair(t))

	query, cookie, err := client.Query(wire.NetworkLive)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if query.Query == nil || *query.Query != cookie {
		t.Fatal("query message should carry the returned cookie")
	}

	resp, _, err := server.Respond(wire.NetworkLive, query, false)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if resp.Response == nil {
		t.Fatal("expected a response")
	}

	if !client.VerifyResponse(cookie, resp.Response) {
		t.Fatal("expected the server's response to verify against the original cookie")
	}
}

func TestHandshakeRespondWithChallengeBack(t *testing.T) {
	server := NewHandshake(genKeyPair(t))
	client := NewHandshake(genKeyPair(t))

	query, _, _ := client.Query(wire.NetworkLive)
	resp, ourCookie, err := server.Respond(wire.NetworkLive, query, true)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if resp.Query == nil || *resp.Query != ourCookie {
		t.Fatal("expected the challenge-back cookie to be attached")
	}
	if resp.Response == nil {
		t.Fatal("expected both query and response set")
	}
}

func TestVerifyResponseRejectsWrongCookie(t *testing.T) {
	server := NewHandshake(genKeyPair(t))
	client := NewHandshake(genKeyPair(t))

	query, cookie, _ := client.Query(wire.NetworkLive)
	resp, _, _ := server.Respond(wire.NetworkLive, query, false)

	wrongCookie := cookie
	wrongCookie[0] ^= 0xFF
	if client.VerifyResponse(wrongCookie, resp.Response) {
		t.Fatal("a response signed over a different cookie must not verify")
	}
}
