package background

import (
	"context"
	"fmt"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/beacon-api/consts"
	"github.com/bitmark-inc/beacon-api/external/expo"
	"github.com/bitmark-inc/beacon-api/geo"
	"github.com/bitmark-inc/beacon-api/schema"
	"github.com/bitmark-inc/beacon-api/utils"
)

const dispatcherLogPrefix = "dispatcher"

// DispatchError describes a batch which could not be handed to the gateway
type DispatchError struct {
	Messages int
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("fail to dispatch %d messages: %s", e.Messages, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

type DispatcherOption func(*Dispatcher)

// WithAddressResolver appends a readable address to emergency notifications
func WithAddressResolver(resolver geo.AddressResolver) DispatcherOption {
	return func(d *Dispatcher) {
		d.resolver = resolver
	}
}

// WithLanguage sets the language of emergency notifications
func WithLanguage(lang string) DispatcherOption {
	return func(d *Dispatcher) {
		d.lang = lang
	}
}

// Dispatcher fans a notification out to responders. Delivery is best
// effort: failures are reported but never returned to the caller.
type Dispatcher struct {
	gateway  PushGateway
	registry *Registry
	resolver geo.AddressResolver
	lang     string

	batches  tally.Counter
	messages tally.Counter
	failures tally.Counter
	rejected tally.Counter
}

func NewDispatcher(gateway PushGateway, registry *Registry, scope tally.Scope, opts ...DispatcherOption) *Dispatcher {
	if scope == nil {
		scope = tally.NoopScope
	}
	scope = scope.SubScope("dispatch")

	d := &Dispatcher{
		gateway:  gateway,
		registry: registry,
		lang:     consts.DefaultLanguage,
		batches:  scope.Counter("batches"),
		messages: scope.Counter("messages"),
		failures: scope.Counter("failures"),
		rejected: scope.Counter("rejected"),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Notify sends the same notification to every token in one batch
func (d *Dispatcher) Notify(ctx context.Context, tokens []string, title, body string, data map[string]interface{}) {
	if len(tokens) == 0 {
		return
	}

	messages := make([]expo.Message, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, expo.Message{
			To:        token,
			Title:     title,
			Body:      body,
			Data:      data,
			Sound:     expo.SoundDefault,
			Priority:  expo.PriorityHigh,
			ChannelID: consts.EmergencyChannelID,
		})
	}

	d.batches.Inc(1)
	d.messages.Inc(int64(len(messages)))

	tickets, err := d.gateway.Push(ctx, messages)
	if err != nil {
		d.report(&DispatchError{Messages: len(messages), Err: err})
		return
	}

	for i, ticket := range tickets {
		if ticket.OK() {
			continue
		}
		d.rejected.Inc(1)
		log.WithField("prefix", dispatcherLogPrefix).
			WithField("token", tokenAt(tokens, i)).
			WithField("details", ticket.Details).
			Warnf("push message rejected: %s", ticket.Message)
	}
}

// BroadcastEmergency notifies every registered responder of an emergency
func (d *Dispatcher) BroadcastEmergency(ctx context.Context, e schema.Emergency) {
	logger := log.WithField("prefix", dispatcherLogPrefix).WithField("emergency_id", e.ID)

	tokens, err := d.registry.ListTokens(ctx)
	if err != nil {
		d.report(&DispatchError{Err: err})
		return
	}

	if len(tokens) == 0 {
		logger.Info("no responder to notify")
		return
	}

	title, body := d.emergencyMessage(ctx, e)
	d.Notify(ctx, tokens, title, body, map[string]interface{}{
		"id":       e.ID,
		"category": e.Category,
		"lat":      e.Latitude,
		"lng":      e.Longitude,
	})

	logger.WithField("responders", len(tokens)).Info("emergency broadcasted")
}

func (d *Dispatcher) emergencyMessage(ctx context.Context, e schema.Emergency) (string, string) {
	loc := utils.NewLocalizer(d.lang)

	title, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID: "notification.emergency.title",
		TemplateData: map[string]interface{}{
			"Category": e.Category,
		},
	})
	if err != nil {
		title = fmt.Sprintf("Emergency: %s", e.Category)
	}

	lat := formatCoordinate(e.Latitude)
	lng := formatCoordinate(e.Longitude)
	body, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID: "notification.emergency.body",
		TemplateData: map[string]interface{}{
			"Latitude":  lat,
			"Longitude": lng,
		},
	})
	if err != nil {
		body = fmt.Sprintf("Location: %s, %s", lat, lng)
	}

	if d.resolver == nil {
		return title, body
	}

	address, err := d.resolver.ResolveAddress(ctx, e.Latitude, e.Longitude)
	if err != nil {
		log.WithField("prefix", dispatcherLogPrefix).WithError(err).Debug("fail to resolve emergency address")
		return title, body
	}

	withAddress, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID: "notification.emergency.address",
		TemplateData: map[string]interface{}{
			"Body":    body,
			"Address": address,
		},
	})
	if err != nil {
		return title, body + "\n" + address
	}

	return title, withAddress
}

func (d *Dispatcher) report(err error) {
	d.failures.Inc(1)
	log.WithField("prefix", dispatcherLogPrefix).WithError(err).Error("fail to dispatch notification")
	sentry.CaptureException(err)
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', consts.CoordinatePrecision, 64)
}

func tokenAt(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}
