package watering

// Log messages
const (
	LogMsgWatered     = "Plant watered"
	LogMsgWaterAll    = "Watered all thirsty plants"
	LogMsgWaterFailed = "Plant could not be watered"
)
