package tui

import "errors"

// ErrMissingModuleService is returned when the module service is not provided.
var ErrMissingModuleService = errors.New("tui: module service is required")

// ErrMissingConversationService is returned when the conversation service is not provided.
var ErrMissingConversationService = errors.New("tui: conversation service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
