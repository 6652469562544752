package http

import (
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/address"
)

// The dispatch endpoint is called by three different producers and each one
// wraps the same two parameters differently. classifyDispatchPayload sorts
// an inbound body into exactly one shape; anything else is rejected.
const (
	toolCallRole       = "tool_call_invocation"
	toolCallName       = "get_eta"
	metricsBatchAction = "record_metrics_batch"
)

var errUnrecognizedPayload = errors.New("unrecognized request payload")

type payloadKind int

const (
	payloadDirect payloadKind = iota
	payloadGateway
	payloadMetricsBatch
)

// dispatchPayload is the classified request. For payloadMetricsBatch only
// metrics is set; for the other kinds address and company carry whatever the
// producer sent, empty values included, so the command layer reports the
// missing parameter.
type dispatchPayload struct {
	kind    payloadKind
	address string
	company string
	metrics []address.MetricEvent
}

type rawPayload struct {
	Action  string           `json:"action"`
	Metrics []metricEventDTO `json:"metrics"`
	Address string           `json:"address"`
	Company string           `json:"company"`
	Args    *toolArgs        `json:"args"`
	Call    *gatewayCall     `json:"call"`
}

type toolArgs struct {
	Address string `json:"address"`
	Company string `json:"company"`
}

type gatewayCall struct {
	TranscriptWithToolCalls []transcriptItem `json:"transcript_with_tool_calls"`
}

// transcriptItem is one entry of a gateway call transcript. Arguments is a
// JSON-encoded string, not a nested object.
type transcriptItem struct {
	Role      string `json:"role"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type metricEventDTO struct {
	Variant   string `json:"variant"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

func classifyDispatchPayload(body []byte) (dispatchPayload, error) {
	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return dispatchPayload{}, errUnrecognizedPayload
	}

	switch {
	case raw.Action == metricsBatchAction:
		return dispatchPayload{kind: payloadMetricsBatch, metrics: toMetricEvents(raw.Metrics)}, nil
	case raw.Action != "":
		return dispatchPayload{}, errUnrecognizedPayload
	case raw.Args != nil:
		return dispatchPayload{kind: payloadGateway, address: raw.Args.Address, company: raw.Args.Company}, nil
	case raw.Call != nil:
		return classifyTranscript(raw.Call.TranscriptWithToolCalls)
	case raw.Address != "" || raw.Company != "":
		return dispatchPayload{kind: payloadDirect, address: raw.Address, company: raw.Company}, nil
	default:
		return dispatchPayload{}, errUnrecognizedPayload
	}
}

// classifyTranscript scans a gateway transcript for the dispatch tool call
// and decodes its arguments. A transcript without that call is rejected.
func classifyTranscript(items []transcriptItem) (dispatchPayload, error) {
	for _, item := range items {
		if item.Role != toolCallRole || item.Name != toolCallName {
			continue
		}

		var args toolArgs
		if err := json.Unmarshal([]byte(item.Arguments), &args); err != nil {
			return dispatchPayload{}, errUnrecognizedPayload
		}

		return dispatchPayload{kind: payloadGateway, address: args.Address, company: args.Company}, nil
	}

	return dispatchPayload{}, errUnrecognizedPayload
}

func toMetricEvents(dtos []metricEventDTO) []address.MetricEvent {
	events := make([]address.MetricEvent, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, address.MetricEvent{
			Variant:   address.VariantKind(dto.Variant),
			Success:   dto.Success,
			Timestamp: parseMetricTimestamp(dto.Timestamp),
		})
	}
	return events
}

// parseMetricTimestamp falls back to the receive time when the producer sent
// no usable timestamp.
func parseMetricTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Now()
	}
	return ts
}
