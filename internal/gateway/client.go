// Package gateway is the HTTP access layer for the experience engine
// service. It is a pure pass-through: request and response bodies mirror
// the service's JSON contract and no workflow logic lives here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/harriothq/experience-console/internal/platform/errors"
)

// defaultTimeout bounds a single gateway call when the caller does not
// supply its own http.Client.
const defaultTimeout = 10 * time.Second

// errorBodyLimit caps how much of an error response body is kept for the
// error message.
const errorBodyLimit = 512

// Client calls the experience engine over HTTP JSON.
type Client struct {
	baseURL string
	httpc   *http.Client
	tracer  trace.Tracer
}

// NewClient creates a gateway client for the given base URL. A nil
// httpc falls back to a client with a default timeout.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpc:   httpc,
		tracer:  otel.Tracer("experience-console/gateway"),
	}
}

// Predict requests a segment and lifetime-value estimate for a profile.
func (c *Client) Predict(ctx context.Context, profile TravelerProfile) (PredictionResult, error) {
	var out PredictionResult
	err := c.call(ctx, "predict", http.MethodPost, "/predict", profile, &out)
	return out, err
}

// GenerateOffer requests marketing copy for a segment and travel purpose.
func (c *Client) GenerateOffer(ctx context.Context, req OfferRequest) (Offer, error) {
	var out Offer
	err := c.call(ctx, "generate-offer", http.MethodPost, "/generate-offer", req, &out)
	return out, err
}

// PriceEvent computes an event-driven room-rate adjustment.
func (c *Client) PriceEvent(ctx context.Context, req EventPricingRequest) (EventPricingResult, error) {
	var out EventPricingResult
	err := c.call(ctx, "price-event", http.MethodPost, "/event-pricing", req, &out)
	return out, err
}

// ListEvents fetches local events for a city. date is an optional
// ISO-8601 day string; empty means the service picks its default window.
func (c *Client) ListEvents(ctx context.Context, city, date string) (EventsResult, error) {
	path := "/events/" + url.PathEscape(strings.TrimSpace(city))
	if date = strings.TrimSpace(date); date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var out EventsResult
	err := c.call(ctx, "list-events", http.MethodGet, path, nil, &out)
	return out, err
}

// Audience fetches the campaign audience and its aggregate stats.
func (c *Client) Audience(ctx context.Context) (AudienceResult, error) {
	var out AudienceResult
	err := c.call(ctx, "get-audience", http.MethodGet, "/campaigns/audiences/q2-business-local", nil, &out)
	return out, err
}

// SendCampaign delivers a composed campaign. The receipt shape is owned
// by the service and returned verbatim.
func (c *Client) SendCampaign(ctx context.Context, req CampaignSendRequest) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.call(ctx, "send-campaign", http.MethodPost, "/campaigns/send", req, &out)
	return out, err
}

// call issues one JSON request and decodes the response into out.
// Transport failures map to KindUnavailable, non-2xx responses and
// undecodable bodies to KindUpstream.
func (c *Client) call(ctx context.Context, capability, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "gateway."+capability,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("gateway.capability", capability)),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", capability, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", capability, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		span.RecordError(err)
		return apperrors.E(apperrors.KindUnavailable, fmt.Sprintf("%s: %v", capability, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := readErrorBody(resp.Body)
		msg := fmt.Sprintf("%s returned %s", capability, resp.Status)
		if detail != "" {
			msg += ": " + detail
		}
		return apperrors.E(apperrors.KindUpstream, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return apperrors.E(apperrors.KindUpstream, fmt.Sprintf("decode %s response: %v", capability, err))
	}
	return nil
}

func readErrorBody(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, errorBodyLimit))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
