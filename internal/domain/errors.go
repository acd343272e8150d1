package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Watering errors
	ErrMsgNotNeeded       = "water not needed"
	ErrMsgCooldownActive  = "watering on cooldown"
	ErrMsgAlreadyComplete = "plant is fully grown"

	// Friendship errors
	ErrMsgUnknownAction      = "unknown interaction"
	ErrMsgDailyLimitReached  = "daily limit reached"
	ErrMsgNotEligible        = "not eligible"
	ErrMsgResidentNotFound   = "resident not found"
	ErrMsgInvalidName        = "invalid name"
	ErrMsgGiftNotInInventory = "gift not in inventory"

	// Quest errors
	ErrMsgNotYetCompletable = "quest not yet completable"
	ErrMsgQuestNotFound     = "quest not found"

	// Daily errors
	ErrMsgAlreadyClaimed = "bonus already claimed"

	// Persistence errors
	ErrMsgPersistenceFailure = "persistence failure"
	ErrMsgForeignDocument    = "document belongs to another application"
	ErrMsgMalformedDocument  = "malformed document"
	ErrMsgNotFound           = "not found"
	ErrMsgQuotaExceeded      = "storage quota exceeded"

	// World errors
	ErrMsgPlantNotFound      = "plant not found"
	ErrMsgAreaLocked         = "area is locked"
	ErrMsgUnknownArea        = "unknown area"
	ErrMsgInsufficientSeeds  = "insufficient seeds"
	ErrMsgUnknownSeedKind    = "unknown seed kind"
	ErrMsgPositionOutOfBound = "position outside area"
	ErrMsgPositionOccupied   = "position occupied"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
)

var (
	// Watering errors
	ErrNotNeeded       = errors.New(ErrMsgNotNeeded)
	ErrCooldownActive  = errors.New(ErrMsgCooldownActive)
	ErrAlreadyComplete = errors.New(ErrMsgAlreadyComplete)

	// Friendship errors
	ErrUnknownAction      = errors.New(ErrMsgUnknownAction)
	ErrDailyLimitReached  = errors.New(ErrMsgDailyLimitReached)
	ErrNotEligible        = errors.New(ErrMsgNotEligible)
	ErrResidentNotFound   = errors.New(ErrMsgResidentNotFound)
	ErrInvalidName        = errors.New(ErrMsgInvalidName)
	ErrGiftNotInInventory = errors.New(ErrMsgGiftNotInInventory)

	// Quest errors
	ErrNotYetCompletable = errors.New(ErrMsgNotYetCompletable)
	ErrQuestNotFound     = errors.New(ErrMsgQuestNotFound)

	// Daily errors
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)

	// Persistence errors
	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)
	ErrForeignDocument    = errors.New(ErrMsgForeignDocument)
	ErrMalformedDocument  = errors.New(ErrMsgMalformedDocument)
	ErrNotFound           = errors.New(ErrMsgNotFound)
	ErrQuotaExceeded      = errors.New(ErrMsgQuotaExceeded)

	// World errors
	ErrPlantNotFound      = errors.New(ErrMsgPlantNotFound)
	ErrAreaLocked         = errors.New(ErrMsgAreaLocked)
	ErrUnknownArea        = errors.New(ErrMsgUnknownArea)
	ErrInsufficientSeeds  = errors.New(ErrMsgInsufficientSeeds)
	ErrUnknownSeedKind    = errors.New(ErrMsgUnknownSeedKind)
	ErrPositionOccupied   = errors.New(ErrMsgPositionOccupied)
	ErrPositionOutOfBound = errors.New(ErrMsgPositionOutOfBound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
