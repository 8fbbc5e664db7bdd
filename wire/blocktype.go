package wire

// BlockType is the 4-bit code embedded in a header's extensions word
// (mask 0x0f00). It names which block variant a publish/confirm_req
// payload carries, or -- for the first block of a confirm_ack's vote --
// whether the vote carries hashes (not_a_block) or a full block.
type BlockType uint8

const (
	BlockTypeInvalid BlockType = iota
	BlockTypeNotABlock
	BlockTypeSend
	BlockTypeReceive
	BlockTypeOpen
	BlockTypeChange
	BlockTypeState
)

func (t BlockType) String() string {
	switch t {
	case BlockTypeInvalid:
		return "invalid"
	case BlockTypeNotABlock:
		return "not_a_block"
	case BlockTypeSend:
		return "send"
	case BlockTypeReceive:
		return "receive"
	case BlockTypeOpen:
		return "open"
	case BlockTypeChange:
		return "change"
	case BlockTypeState:
		return "state"
	default:
		return "unknown"
	}
}

// Known reports whether t is one of the block types this repo's codec
// recognizes. Readers MUST tolerate unknown nibbles by rejecting the
// message, never by crashing (spec.md 3): the parser calls this before
// dispatching to BlockCodec.
func (t BlockType) Known() bool {
	switch t {
	case BlockTypeNotABlock, BlockTypeSend, BlockTypeReceive,
		BlockTypeOpen, BlockTypeChange, BlockTypeState:
		return true
	default:
		return false
	}
}
