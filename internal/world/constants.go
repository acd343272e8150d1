package world

// Grid and query defaults
const (
	// CellSize is the edge length of a grid bucket
	CellSize = 50.0

	// HitRadius is the tap tolerance used by At
	HitRadius = 30.0

	// NearbyRadius is the default radius of Nearby
	NearbyRadius = 100.0
)

// Area dimensions
const (
	AreaWidth  = 1000.0
	AreaHeight = 800.0
)

// Log messages
const (
	LogMsgSkippedObject = "Skipped world object while indexing"
	LogMsgAreaUnlocked  = "Area unlocked"
	LogMsgAreaVisited   = "Area visited for the first time"
)
