package resources

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/telcobridge/capgate/internal/capability"
)

// Message is the declared output shape for single-message reads.
type Message struct {
	ID         string   `json:"id,omitempty"`
	RecordType string   `json:"record_type,omitempty"`
	Direction  string   `json:"direction,omitempty"`
	Type       string   `json:"type,omitempty"`
	From       string   `json:"from,omitempty"`
	To         []string `json:"to,omitempty"`
	Text       string   `json:"text,omitempty"`
	Status     string   `json:"status,omitempty"`
	SentAt     string   `json:"sent_at,omitempty"`
	ReceivedAt string   `json:"received_at,omitempty"`
}

// Messages adapts the messages resource.
type Messages struct {
	*capability.Adapter
}

// NewMessages creates the messages adapter.
func NewMessages(transport capability.Transport, logger *slog.Logger) *Messages {
	return &Messages{Adapter: capability.NewAdapter(capability.AdapterConfig{
		Resource:  "messages",
		Transport: transport,
		Logger:    logger,
	})}
}

// Send submits an outbound message from a JSON payload.
func (m *Messages) Send(ctx context.Context, payload string) string {
	const op = "messages.send"

	if err := capability.RequireJSON("payload", payload); err != nil {
		return m.Classify(ctx, op, err)
	}

	return m.Passthrough(ctx, op, http.MethodPost, "/v2/messages", payload)
}

// Get fetches one message by id.
func (m *Messages) Get(ctx context.Context, id string) string {
	const op = "messages.get"

	if err := capability.RequireNonEmpty("message_id", id); err != nil {
		return m.Classify(ctx, op, err)
	}

	return capability.Typed[Message](m.Adapter, ctx, op, http.MethodGet,
		"/v2/messages/"+url.PathEscape(id), "")
}

// List fetches one page of messages.
func (m *Messages) List(ctx context.Context, page, pageSize string) string {
	const op = "messages.list"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return m.Classify(ctx, op, err)
	}

	return m.Passthrough(ctx, op, http.MethodGet, withQuery("/v2/messages", q), "")
}

// SendGroupMMS submits a group MMS message from a JSON payload.
func (m *Messages) SendGroupMMS(ctx context.Context, payload string) string {
	const op = "messages.send_group_mms"

	if err := capability.RequireJSON("payload", payload); err != nil {
		return m.Classify(ctx, op, err)
	}

	return m.Passthrough(ctx, op, http.MethodPost, "/v2/messages/group_mms", payload)
}

// Register adds the message operations to the registry.
func (m *Messages) Register(reg *capability.Registry) error {
	return registerAll(reg, []capability.Invocation{
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "send",
				Description: "Send an outbound message from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("payload", "JSON document with from, to and text or media."),
				},
				Result: "Raw JSON of the accepted message.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.Send(ctx, args.Get("payload"))
			},
		},
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "get",
				Description: "Fetch a single message by its identifier.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("message_id", "Identifier of the message."),
				},
				Result: "Pretty-printed JSON for the message.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.Get(ctx, args.Get("message_id"))
			},
		},
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list",
				Description: "List messages one page at a time.",
				Parameters:  pagingParams(),
				Result:      "Raw JSON page of messages with paging metadata.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.List(ctx, args.Get("page"), args.Get("page_size"))
			},
		},
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "send_group_mms",
				Description: "Send a group MMS message from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("payload", "JSON document with from, the recipient list and media."),
				},
				Result: "Raw JSON of the accepted group message.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.SendGroupMMS(ctx, args.Get("payload"))
			},
		},
	})
}
