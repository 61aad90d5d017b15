package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"devoxx-dashboard-proxy/internal/model"
)

// Environment profile names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DashboardOrigin is the browser origin of the production MyDevoxx dashboard.
const DashboardOrigin = "https://mydevoxx-dashboard.eu-gb.mybluemix.net"

const (
	mockHost = "https://aston-wiremock.eu-gb.mybluemix.net"
	liveHost = "http://cfp.devoxx.co.uk"

	conferencePath = "/api/conferences/DV17"
)

var (
	// ErrUnknownEnvironment is returned for a profile name other than development or production.
	ErrUnknownEnvironment = errors.New("unknown environment")
	// ErrMissingCredentials is returned when the production profile has no upstream credential.
	ErrMissingCredentials = errors.New("production profile requires devoxx username and password")
)

// Credential is the HTTP Basic credential presented to the upstream.
type Credential struct {
	Username string
	Password string
}

// Validate implements validation.Validatable.
func (c Credential) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// Profile is the resolved, read-only deployment configuration shared by all requests.
type Profile struct {
	Name           string
	BaseURLs       map[model.ResourceKind]string
	Credential     Credential
	AllowedOrigins map[string]struct{}
}

// Validate implements validation.Validatable.
func (p *Profile) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.In(EnvDevelopment, EnvProduction)),
		validation.Field(&p.BaseURLs, validation.Required, validation.Length(len(model.ResourceKinds), len(model.ResourceKinds)), validation.Each(validation.Required, is.URL)),
		validation.Field(&p.Credential),
		validation.Field(&p.AllowedOrigins, validation.Required),
	)
}

// BaseURL returns the upstream base URL for kind.
func (p *Profile) BaseURL(kind model.ResourceKind) string {
	return p.BaseURLs[kind]
}

// AllowsOrigin reports whether origin may be echoed back in Access-Control-Allow-Origin.
func (p *Profile) AllowsOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	_, ok := p.AllowedOrigins[origin]
	return ok
}

// UpstreamHost returns scheme://host of the upstream, for status reporting.
func (p *Profile) UpstreamHost() string {
	u, err := url.Parse(p.BaseURL(model.ResourceUUID))
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// ResolveProfile builds the profile for env. Resolution is deterministic and
// reads nothing beyond its arguments. In production the credential must be
// complete; in development a fixed mock credential is used and cred is ignored.
func ResolveProfile(env string, cred Credential, extraOrigins []string) (*Profile, error) {
	var p *Profile
	switch strings.ToLower(env) {
	case EnvDevelopment, "":
		p = &Profile{
			Name:           EnvDevelopment,
			BaseURLs:       baseURLs(mockHost, mockHost),
			Credential:     Credential{Username: "test@test.com", Password: "test"},
			AllowedOrigins: originSet(DashboardOrigin, "https://localhost:3000", "http://localhost:3000"),
		}
	case EnvProduction:
		if err := cred.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
		}
		p = &Profile{
			Name:           EnvProduction,
			BaseURLs:       baseURLs(liveHost, liveHost+"/api/proposals"),
			Credential:     cred,
			AllowedOrigins: originSet(DashboardOrigin),
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
	}

	for _, o := range extraOrigins {
		p.AllowedOrigins[o] = struct{}{}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return p, nil
}

// NewProfile resolves the profile selected by cfg.
func NewProfile(cfg *Config, logger *slog.Logger) (*Profile, error) {
	p, err := ResolveProfile(cfg.App.Environment, Credential{
		Username: cfg.Devoxx.Username,
		Password: cfg.Devoxx.Password,
	}, cfg.CORS.ExtraOrigins)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger.Info("resolved environment profile",
		"environment", p.Name,
		"upstream", p.UpstreamHost(),
		"allowed_origins", len(p.AllowedOrigins),
	)
	logger.Debug("upstream credential", "username", p.Credential.Username)
	return p, nil
}

func baseURLs(host, privateBase string) map[model.ResourceKind]string {
	return map[model.ResourceKind]string{
		model.ResourceUUID:         host + "/uuid",
		model.ResourcePrivateTalks: privateBase,
		model.ResourceSpeakers:     host + conferencePath + "/speakers",
		model.ResourceRooms:        host + conferencePath + "/rooms",
		model.ResourceSchedules:    host + conferencePath + "/schedules",
		model.ResourceTalk:         host + conferencePath + "/talk",
	}
}

func originSet(origins ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		set[o] = struct{}{}
	}
	return set
}
