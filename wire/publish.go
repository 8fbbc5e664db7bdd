package wire

import "io"

// Publish announces a block to the network. The block's wire type comes
// from the header's block-type nibble.
type Publish struct {
	Header MessageHeader
	Block  Block
}

// NewPublish builds an outgoing publish for block, setting the header's
// block-type nibble.
func NewPublish(network NetworkTag, blockType BlockType, block Block) *Publish {
	h := NewHeader(network, TypePublish)
	h.BlockTypeSet(blockType)
	return &Publish{Header: h, Block: block}
}

// DeserializePublish decodes the block named by header's nibble, checks it
// against verifier if non-nil (returning ErrInsufficientWork on failure),
// and interns it via uniquer (nil uniquer skips interning, e.g. in tests).
func DeserializePublish(r io.Reader, header MessageHeader, codec BlockCodec, verifier WorkVerifier, uniquer *BlockUniquer) (*Publish, error) {
	block, err := codec.Deserialize(r, header.BlockType())
	if err != nil {
		return nil, err
	}
	if verifier != nil && !verifier.Sufficient(block) {
		return nil, ErrInsufficientWork
	}
	if uniquer != nil {
		block = uniquer.Unique(block)
	}
	return &Publish{Header: header, Block: block}, nil
}

func (p *Publish) Serialize(w io.Writer) error {
	if err := p.Header.Serialize(w); err != nil {
		return err
	}
	return p.Block.Serialize(w)
}

func (p *Publish) Visit(v Visitor) { v.Publish(p) }

// Equal compares by block hash, not pointer identity, per spec.md 4.C.
func (p *Publish) Equal(o *Publish) bool {
	return o != nil && p.Block.Hash() == o.Block.Hash()
}
