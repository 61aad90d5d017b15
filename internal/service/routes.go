package service

import (
	"net/http"

	"devoxx-dashboard-proxy/internal/model"
)

// Content types written on success and on fallback.
const (
	ContentTypeText = "text/plain"
	ContentTypeJSON = "application/json"
)

// Route describes one proxied endpoint: where it listens, which upstream
// resource it addresses and what it answers when the upstream is unreachable.
type Route struct {
	Name          string
	Path          string
	Resource      model.ResourceKind
	Authenticated bool
	ContentType   string
	Fallback      string

	target func(base string, fr *model.ForwardRequest) string
}

// Routes is the fixed set of proxied endpoints.
//
// A missing query parameter composes as an empty value (?email=); the
// upstream rejects it like any other malformed id, so leave it unvalidated.
//
// Only the user-specific routes carry the upstream credential. The public
// conference routes have always been called anonymously; keep it that way
// until product confirms otherwise.
var Routes = []*Route{
	{
		Name:          "uuid",
		Path:          "/uuid",
		Resource:      model.ResourceUUID,
		Authenticated: true,
		ContentType:   ContentTypeText,
		Fallback:      "UUID not returned for email address given",
		target: func(base string, fr *model.ForwardRequest) string {
			return base + "?email=" + fr.QueryParams["email"]
		},
	},
	{
		Name:          "scheduled",
		Path:          "/scheduled",
		Resource:      model.ResourcePrivateTalks,
		Authenticated: true,
		ContentType:   ContentTypeJSON,
		Fallback:      "Scheduled talks not returned for email address given",
		target: func(base string, fr *model.ForwardRequest) string {
			return base + "/" + fr.QueryParams["uuid"] + "/scheduled"
		},
	},
	{
		Name:          "favored",
		Path:          "/favored",
		Resource:      model.ResourcePrivateTalks,
		Authenticated: true,
		ContentType:   ContentTypeJSON,
		Fallback:      "Favored Talks not returned for email address given",
		target: func(base string, fr *model.ForwardRequest) string {
			return base + "/" + fr.QueryParams["uuid"] + "/favored"
		},
	},
	{
		Name:        "schedules",
		Path:        "/api/conferences/DV17/schedules/",
		Resource:    model.ResourceSchedules,
		ContentType: ContentTypeJSON,
		Fallback:    "Schedule Not available",
		target:      baseOnly,
	},
	{
		Name:        "rooms",
		Path:        "/api/conferences/DV17/rooms",
		Resource:    model.ResourceRooms,
		ContentType: ContentTypeJSON,
		Fallback:    "Schedule Not available",
		target:      baseOnly,
	},
	{
		Name:        "speakers",
		Path:        "/api/conferences/DV17/speakers",
		Resource:    model.ResourceSpeakers,
		ContentType: ContentTypeJSON,
		Fallback:    "Schedule Not available",
		target:      baseOnly,
	},
	{
		Name:        "speaker",
		Path:        "/api/conferences/DV17/speakers/:speakerId",
		Resource:    model.ResourceSpeakers,
		ContentType: ContentTypeJSON,
		Fallback:    "No speaker was returned for the supplied speaker id",
		target: func(base string, fr *model.ForwardRequest) string {
			return base + "/" + fr.PathParams["speakerId"]
		},
	},
	{
		Name:        "talk",
		Path:        "/api/conferences/DV17/talk",
		Resource:    model.ResourceTalk,
		ContentType: ContentTypeJSON,
		Fallback:    "No talk was returned for the supplied id",
		target: func(base string, fr *model.ForwardRequest) string {
			return base + "?talkId=" + fr.QueryParams["talkId"]
		},
	},
}

func baseOnly(base string, _ *model.ForwardRequest) string {
	return base
}

// FallbackResult is the fixed answer for a request whose upstream call failed.
func (r *Route) FallbackResult() *model.ForwardResult {
	return &model.ForwardResult{
		StatusCode:  http.StatusNotFound,
		Body:        []byte(r.Fallback),
		ContentType: r.ContentType,
	}
}
