package wire

// fixtures_test.go holds the fake capability implementations and the
// New*Params / Gen*FromParams / Check* builders the rest of this
// package's tests share.

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"math/rand"
)

func errorf(prefix string, expect interface{}, result interface{}) error {
	return fmt.Errorf("%s check failed: expect %v, result %v", prefix, expect, result)
}

func randHash() [32]byte {
	var h [32]byte
	rand.Read(h[:])
	return h
}

func randSig() [64]byte {
	var s [64]byte
	rand.Read(s[:])
	return s
}

// fakeBlock is a minimal Block: a type tag plus an arbitrary payload,
// content-addressed by sha256 so distinct payloads never collide in the
// uniquer tests. None of this is wire format -- wire never looks inside
// a Block, only at its Hash and Serialize.
type fakeBlock struct {
	blockType BlockType
	payload   []byte
}

func (b *fakeBlock) Hash() [32]byte { return sha256.Sum256(b.payload) }

func (b *fakeBlock) Serialize(w io.Writer) error {
	if len(b.payload) > 255 {
		return fmt.Errorf("fakeBlock: payload too long for test fixture encoding")
	}
	if _, err := w.Write([]byte{byte(len(b.payload))}); err != nil {
		return err
	}
	_, err := w.Write(b.payload)
	return err
}

type fakeBlockCodec struct{}

func (fakeBlockCodec) Deserialize(r io.Reader, t BlockType) (Block, error) {
	var n [1]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, err
	}
	payload := make([]byte, n[0])
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return &fakeBlock{blockType: t, payload: payload}, nil
}

// fakeVote is a minimal Vote: either a hash list or a wrapped block, per
// whichever DeserializeHashes/DeserializeBlock built it.
type fakeVote struct {
	account   [32]byte
	signature [64]byte
	sequence  uint64
	hashes    [][32]byte
	block     Block
}

func (v *fakeVote) Account() [32]byte { return v.account }

func (v *fakeVote) Hash() [32]byte {
	h := sha256.New()
	h.Write(v.account[:])
	h.Write(v.signature[:])
	var seq [8]byte
	for i := range seq {
		seq[i] = byte(v.sequence >> (8 * i))
	}
	h.Write(seq[:])
	for _, hash := range v.hashes {
		h.Write(hash[:])
	}
	if v.block != nil {
		var buf bytes.Buffer
		v.block.Serialize(&buf)
		h.Write(buf.Bytes())
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (v *fakeVote) Serialize(w io.Writer) error {
	if _, err := w.Write(v.account[:]); err != nil {
		return err
	}
	if _, err := w.Write(v.signature[:]); err != nil {
		return err
	}
	var seq [8]byte
	for i := range seq {
		seq[i] = byte(v.sequence >> (8 * i))
	}
	if _, err := w.Write(seq[:]); err != nil {
		return err
	}
	if v.block != nil {
		return v.block.Serialize(w)
	}
	for _, hash := range v.hashes {
		if _, err := w.Write(hash[:]); err != nil {
			return err
		}
	}
	return nil
}

type fakeVoteCodec struct{}

func (fakeVoteCodec) DeserializeHashes(account [32]byte, signature [64]byte, sequence uint64, hashes [][32]byte) (Vote, error) {
	return &fakeVote{account: account, signature: signature, sequence: sequence, hashes: hashes}, nil
}

func (fakeVoteCodec) DeserializeBlock(account [32]byte, signature [64]byte, sequence uint64, block Block) (Vote, error) {
	return &fakeVote{account: account, signature: signature, sequence: sequence, block: block}, nil
}

// fakeWorkVerifier always returns Sufficient's configured verdict,
// regardless of which block it is asked about.
type fakeWorkVerifier struct {
	sufficient bool
}

func (f fakeWorkVerifier) Sufficient(Block) bool { return f.sufficient }

// recordingVisitor remembers the last message handed to each method, so
// tests can assert both "which callback fired" and "with what".
type recordingVisitor struct {
	NopVisitor
	keepalive       *Keepalive
	publish         *Publish
	confirmReq      *ConfirmReq
	confirmAck      *ConfirmAck
	bulkPull        *BulkPull
	bulkPullAccount *BulkPullAccount
	bulkPullBlocks  *BulkPullBlocks
	bulkPush        *BulkPush
	frontierReq     *FrontierReq
	nodeIDHandshake *NodeIDHandshake
}

func (v *recordingVisitor) Keepalive(k *Keepalive)             { v.keepalive = k }
func (v *recordingVisitor) Publish(p *Publish)                 { v.publish = p }
func (v *recordingVisitor) ConfirmReq(c *ConfirmReq)           { v.confirmReq = c }
func (v *recordingVisitor) ConfirmAck(c *ConfirmAck)           { v.confirmAck = c }
func (v *recordingVisitor) BulkPull(b *BulkPull)               { v.bulkPull = b }
func (v *recordingVisitor) BulkPullAccount(b *BulkPullAccount) { v.bulkPullAccount = b }
func (v *recordingVisitor) BulkPullBlocks(b *BulkPullBlocks)   { v.bulkPullBlocks = b }
func (v *recordingVisitor) BulkPush(b *BulkPush)               { v.bulkPush = b }
func (v *recordingVisitor) FrontierReq(f *FrontierReq)         { v.frontierReq = f }
func (v *recordingVisitor) NodeIDHandshake(n *NodeIDHandshake) { v.nodeIDHandshake = n }

// newTestParser builds a Parser with permissive fixture capabilities
// (work always sufficient, no uniquing, no metrics) plus the given
// visitor, wired for networkTag at the given minimum supported version.
func newTestParser(networkTag NetworkTag, minVersion uint8, visitor Visitor) *Parser {
	return NewParser(
		StaticNetworkConstants{Tag: networkTag, MinSupportedVersion: minVersion},
		fakeBlockCodec{},
		fakeVoteCodec{},
		fakeWorkVerifier{sufficient: true},
		nil,
		nil,
		visitor,
		nil,
	)
}
