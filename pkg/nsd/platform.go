package nsd

import (
	"context"
	"errors"
)

var (
	ErrUnknownHandle = errors.New("unknown handle")
	ErrNoServiceType = errors.New("no service type given")
	ErrNoServiceName = errors.New("no service name given")
)

// BrowseHandle identifies a running browse of a Platform.
type BrowseHandle uint64

// AdvertiseHandle identifies a running advertisement of a Platform.
type AdvertiseHandle uint64

// Platform is the multicast DNS service discovery primitive sessions are
// built on. All handlers may be called on arbitrary goroutines, possibly
// concurrently, and possibly before the call that registered them returned.
type Platform interface {
	// Browse starts looking for instances of the given service type. An
	// error is only returned if the browse could not be set up at all.
	// Later failures are reported as BrowseFailed.
	Browse(serviceType string, handler func(BrowseEvent)) (BrowseHandle, error)

	// StopBrowse stops the browse. The handler receives BrowseStopped
	// once the browse has shut down.
	StopBrowse(h BrowseHandle) error

	// Resolve looks up host, port and attributes of the given record and
	// calls the handler exactly once unless ctx is cancelled first.
	Resolve(ctx context.Context, record ServiceRecord, handler func(ResolveEvent))

	// Advertise publishes the given record. Whether that succeeded is
	// reported asynchronously through the handler.
	Advertise(record ServiceRecord, handler func(RegistrationEvent)) (AdvertiseHandle, error)

	// StopAdvertise withdraws the advertisement.
	StopAdvertise(h AdvertiseHandle) error
}
