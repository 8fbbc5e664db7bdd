package wire

// Visitor is the polymorphic dispatch surface the parser hands finished
// messages to: one method per variant, taking a pointer to the decoded
// message (the structs themselves hold any shared payload by reference). There is no return channel -- side effects like
// enqueueing the message for processing are internal to the
// implementation.
//
// Implementers MUST NOT retain raw references past the callback unless
// they also retain the message's shared payload handle (the Block / Vote
// it carries), since the uniquer may otherwise let the content expire.
type Visitor interface {
	Keepalive(*Keepalive)
	Publish(*Publish)
	ConfirmReq(*ConfirmReq)
	ConfirmAck(*ConfirmAck)
	BulkPull(*BulkPull)
	BulkPullAccount(*BulkPullAccount)
	BulkPullBlocks(*BulkPullBlocks)
	BulkPush(*BulkPush)
	FrontierReq(*FrontierReq)
	NodeIDHandshake(*NodeIDHandshake)
}

// NopVisitor implements Visitor with no-op methods. Embed it to implement
// only the variants you care about.
type NopVisitor struct{}

func (NopVisitor) Keepalive(*Keepalive)               {}
func (NopVisitor) Publish(*Publish)                   {}
func (NopVisitor) ConfirmReq(*ConfirmReq)             {}
func (NopVisitor) ConfirmAck(*ConfirmAck)             {}
func (NopVisitor) BulkPull(*BulkPull)                 {}
func (NopVisitor) BulkPullAccount(*BulkPullAccount)   {}
func (NopVisitor) BulkPullBlocks(*BulkPullBlocks)     {}
func (NopVisitor) BulkPush(*BulkPush)                 {}
func (NopVisitor) FrontierReq(*FrontierReq)           {}
func (NopVisitor) NodeIDHandshake(*NodeIDHandshake)   {}
