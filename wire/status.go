package wire

// ParseStatus is the terminal outcome of a single deserialize_buffer call.
// Errors are never raised upward (spec.md 7): DeserializeBuffer returns
// the status to the caller.
type ParseStatus int

const (
	StatusSuccess ParseStatus = iota
	StatusInsufficientWork
	StatusInvalidHeader
	StatusInvalidMessageType
	StatusInvalidKeepaliveMessage
	StatusInvalidPublishMessage
	StatusInvalidConfirmReqMessage
	StatusInvalidConfirmAckMessage
	StatusInvalidNodeIDHandshakeMessage
	StatusOutdatedVersion
	StatusInvalidMagic
	StatusInvalidNetwork
)

// String yields the stable human label used only for logging and metrics,
// matching spec.md 7's status_string().
func (s ParseStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInsufficientWork:
		return "insufficient_work"
	case StatusInvalidHeader:
		return "invalid_header"
	case StatusInvalidMessageType:
		return "invalid_message_type"
	case StatusInvalidKeepaliveMessage:
		return "invalid_keepalive_message"
	case StatusInvalidPublishMessage:
		return "invalid_publish_message"
	case StatusInvalidConfirmReqMessage:
		return "invalid_confirm_req_message"
	case StatusInvalidConfirmAckMessage:
		return "invalid_confirm_ack_message"
	case StatusInvalidNodeIDHandshakeMessage:
		return "invalid_node_id_handshake_message"
	case StatusOutdatedVersion:
		return "outdated_version"
	case StatusInvalidMagic:
		return "invalid_magic"
	case StatusInvalidNetwork:
		return "invalid_network"
	default:
		return "unknown"
	}
}
