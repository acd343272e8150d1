package discovery

// Log messages
const (
	LogMsgDiscoveryMade = "Discovery made"
)
