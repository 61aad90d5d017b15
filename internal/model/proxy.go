// Package model defines shared types for the proxy.
package model

import "context"

// ResourceKind identifies the category of upstream resource a route addresses.
type ResourceKind int

const (
	ResourceUUID ResourceKind = iota
	ResourcePrivateTalks
	ResourceSpeakers
	ResourceRooms
	ResourceSchedules
	ResourceTalk
)

// ResourceKinds lists every kind in declaration order.
var ResourceKinds = []ResourceKind{
	ResourceUUID,
	ResourcePrivateTalks,
	ResourceSpeakers,
	ResourceRooms,
	ResourceSchedules,
	ResourceTalk,
}

func (k ResourceKind) String() string {
	switch k {
	case ResourceUUID:
		return "uuid"
	case ResourcePrivateTalks:
		return "private_talks"
	case ResourceSpeakers:
		return "speakers"
	case ResourceRooms:
		return "rooms"
	case ResourceSchedules:
		return "schedules"
	case ResourceTalk:
		return "talk"
	}
	return "unknown"
}

// ForwardRequest is one inbound request translated for the upstream.
// Parameter values are kept exactly as the caller sent them.
type ForwardRequest struct {
	Ctx         context.Context
	Resource    ResourceKind
	PathParams  map[string]string
	QueryParams map[string]string
}

// ForwardResult is what gets written back to the caller.
type ForwardResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
}
