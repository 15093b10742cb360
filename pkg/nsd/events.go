package nsd

// BrowseEvent is emitted by a running browse. The concrete types are
// Found, Lost, BrowseFailed and BrowseStopped.
type BrowseEvent interface {
	browseEvent()
}

// Found is emitted when a service instance appeared. The record is not
// necessarily resolved.
type Found struct {
	Record ServiceRecord
}

// Lost is emitted when a service instance disappeared.
type Lost struct {
	Record ServiceRecord
}

// BrowseFailed is emitted if the browse could not be started or died.
// No further events follow.
type BrowseFailed struct {
	ServiceType string
	Err         error
}

// BrowseStopped is the last event of a browse that was stopped.
type BrowseStopped struct {
	ServiceType string
}

func (Found) browseEvent()         {}
func (Lost) browseEvent()          {}
func (BrowseFailed) browseEvent()  {}
func (BrowseStopped) browseEvent() {}

// ResolveEvent is the outcome of a single resolve attempt, either
// Resolved or ResolveFailed.
type ResolveEvent interface {
	resolveEvent()
}

type Resolved struct {
	Record ServiceRecord
}

type ResolveFailed struct {
	Record ServiceRecord
	Err    error
}

func (Resolved) resolveEvent()      {}
func (ResolveFailed) resolveEvent() {}

// RegistrationEvent is emitted for an advertisement. The concrete types
// are Registered, RegistrationFailed, Unregistered and
// UnregistrationFailed.
type RegistrationEvent interface {
	registrationEvent()
}

type Registered struct {
	Record ServiceRecord
}

type RegistrationFailed struct {
	Record ServiceRecord
	Err    error
}

type Unregistered struct {
	Record ServiceRecord
}

type UnregistrationFailed struct {
	Record ServiceRecord
	Err    error
}

func (Registered) registrationEvent()           {}
func (RegistrationFailed) registrationEvent()   {}
func (Unregistered) registrationEvent()         {}
func (UnregistrationFailed) registrationEvent() {}
