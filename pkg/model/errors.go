package model

const (
	PlacementNotFoundErrorCode    = "PLACEMENT_NOT_FOUND"
	InvalidBreakpointErrorCode    = "INVALID_BREAKPOINT"
	InvalidContainerKindErrorCode = "INVALID_CONTAINER_KIND"
	ParseErrorCode                = "PARSE_ERROR"
	SessionNotFoundErrorCode      = "SESSION_NOT_FOUND"
	GeneralErrorCode              = "GENERAL"
)

const (
	// StaticReason means the value came from the author's configuration.
	StaticReason = "STATIC"
	// DefaultReason means the author left the placement unset.
	DefaultReason = "DEFAULT"
)

type NotificationType string

const (
	NotificationCreate NotificationType = "write"
	NotificationDelete NotificationType = "delete"
	NotificationUpdate NotificationType = "update"
)
