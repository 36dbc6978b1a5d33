package thicket

import "errors"

var (
	// ErrDuplicateID is returned when an id is already held by another live entity.
	ErrDuplicateID = errors.New("thicket: duplicate id")
	// ErrInvalidParameter is returned by setters given a value outside their domain.
	ErrInvalidParameter = errors.New("thicket: invalid parameter")
	// ErrNoRenderer is returned by Engine.Init when Settings carries no Renderer.
	ErrNoRenderer = errors.New("thicket: no renderer")
	// ErrAlreadyInitialized is returned by a second call to Engine.Init.
	ErrAlreadyInitialized = errors.New("thicket: engine already initialized")
	// ErrAssetNotFound is returned when a file queued for loading cannot be read.
	ErrAssetNotFound = errors.New("thicket: asset not found")
)
