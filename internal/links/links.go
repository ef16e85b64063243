// Package links builds the outbound deep links shown on each result card.
package links

import (
	"bytes"
	"io"
	"log"
	"net/url"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

const (
	whatsAppBase   = "https://wa.me/"
	directionsBase = "https://www.google.com/maps/dir/"
	travelMode     = "driving"
)

// DefaultMessageTemplate is the message pre-filled in the leader's chat.
const DefaultMessageTemplate = "Olá {{.LeaderNames}}, sou {{.DisplayName}}. Quero visitar seu LifeGroup! Meu zap é {{.ContactNumber}}."

// MessageVars are the values interpolated into the chat message.
type MessageVars struct {
	LeaderNames   string
	DisplayName   string
	ContactNumber string
}

type Builder struct {
	message          *template.Template
	countryQualifier string
}

// NewBuilder parses tmpl (DefaultMessageTemplate when blank). countryQualifier is appended
// to every meeting address used as a directions destination.
func NewBuilder(tmpl, countryQualifier string) (*Builder, error) {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultMessageTemplate
	}
	t, err := template.New("message").Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return nil, errors.Wrap(err, "parse message template")
	}
	if err := t.Execute(io.Discard, MessageVars{}); err != nil {
		return nil, errors.Wrap(err, "render message template")
	}
	return &Builder{message: t, countryQualifier: countryQualifier}, nil
}

// Message renders the chat text for vars.
func (b *Builder) Message(vars MessageVars) (string, error) {
	var buf bytes.Buffer
	if err := b.message.Execute(&buf, vars); err != nil {
		return "", errors.Wrap(err, "render message template")
	}
	return buf.String(), nil
}

// ContactLink returns the wa.me link for phone. When hasPhone is false no link exists and
// the caller shows a "no contact" affordance instead.
func (b *Builder) ContactLink(phone string, hasPhone bool, vars MessageVars) (string, bool) {
	if !hasPhone || phone == "" {
		return "", false
	}
	msg, err := b.Message(vars)
	if err != nil {
		log.Printf("[Links]: unable to render contact message: %v", err)
		return "", false
	}
	return whatsAppBase + phone + "?text=" + Escape(msg), true
}

// DirectionsLink returns a Google Maps driving route from the user's typed address to the
// meeting address.
func (b *Builder) DirectionsLink(origin, destination string) string {
	if b.countryQualifier != "" {
		destination = destination + ", " + b.countryQualifier
	}
	params := []string{
		"api=1",
		"origin=" + Escape(origin),
		"destination=" + Escape(destination),
		"travelmode=" + travelMode,
	}
	return directionsBase + "?" + strings.Join(params, "&")
}

// Escape percent-encodes s for use as a query value. Every reserved and non-ASCII byte
// is encoded and spaces become %20.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
