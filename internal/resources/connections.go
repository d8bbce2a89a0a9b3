package resources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/telcobridge/capgate/internal/capability"
	"github.com/telcobridge/capgate/internal/domain"
)

// Connection is the declared output shape for single-connection reads.
type Connection struct {
	ID                   string          `json:"id,omitempty"`
	RecordType           string          `json:"record_type,omitempty"`
	ConnectionName       string          `json:"connection_name,omitempty"`
	Status               string          `json:"status,omitempty"`
	Active               *bool           `json:"active,omitempty"`
	WebhookEventURL      string          `json:"webhook_event_url,omitempty"`
	Tags                 []string        `json:"tags,omitempty"`
	CreatedAt            string          `json:"created_at,omitempty"`
	UpdatedAt            string          `json:"updated_at,omitempty"`
	AdditionalAttributes *domain.AttrMap `json:"additional_attributes,omitempty"`
}

// Connections adapts the connections resource.
type Connections struct {
	*capability.Adapter
}

// NewConnections creates the connections adapter.
func NewConnections(transport capability.Transport, logger *slog.Logger) *Connections {
	return &Connections{Adapter: capability.NewAdapter(capability.AdapterConfig{
		Resource:  "connections",
		Transport: transport,
		Logger:    logger,
	})}
}

// List fetches one page of connections.
func (c *Connections) List(ctx context.Context, page, pageSize string) string {
	const op = "connections.list"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return c.Classify(ctx, op, err)
	}

	return c.Passthrough(ctx, op, http.MethodGet, withQuery("/v2/connections", q), "")
}

// Get fetches one connection by id.
func (c *Connections) Get(ctx context.Context, id string) string {
	const op = "connections.get"

	if err := capability.RequireNonEmpty("connection_id", id); err != nil {
		return c.Classify(ctx, op, err)
	}

	return capability.Typed[Connection](c.Adapter, ctx, op, http.MethodGet,
		"/v2/connections/"+url.PathEscape(id), "")
}

// Update replaces a connection's settings with the supplied JSON payload.
func (c *Connections) Update(ctx context.Context, id, payload string) string {
	const op = "connections.update"

	if err := capability.RequireNonEmpty("connection_id", id); err != nil {
		return c.Classify(ctx, op, err)
	}

	if err := capability.RequireJSON("payload", payload); err != nil {
		return c.Classify(ctx, op, err)
	}

	return c.Passthrough(ctx, op, http.MethodPut,
		"/v2/connections/"+url.PathEscape(id), payload)
}

// Delete removes a connection.
func (c *Connections) Delete(ctx context.Context, id string) string {
	const op = "connections.delete"

	if err := capability.RequireNonEmpty("connection_id", id); err != nil {
		return c.Classify(ctx, op, err)
	}

	return c.Confirm(ctx, op, http.MethodDelete,
		"/v2/connections/"+url.PathEscape(id),
		fmt.Sprintf("Connection %s has been deleted.", id))
}

// Register adds the connections operations to the registry.
func (c *Connections) Register(reg *capability.Registry) error {
	return registerAll(reg, []capability.Invocation{
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list",
				Description: "List connections one page at a time.",
				Parameters:  pagingParams(),
				Result:      "Raw JSON page of connections with total_count and paging metadata.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.List(ctx, args.Get("page"), args.Get("page_size"))
			},
		},
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "get",
				Description: "Fetch a single connection by its identifier.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("connection_id", "Identifier of the connection."),
				},
				Result: "Pretty-printed JSON for the connection.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.Get(ctx, args.Get("connection_id"))
			},
		},
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "update",
				Description: "Update a connection from a JSON settings payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("connection_id", "Identifier of the connection."),
					capability.RequiredParam("payload", "JSON document with the settings to apply."),
				},
				Result: "Raw JSON of the updated connection.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.Update(ctx, args.Get("connection_id"), args.Get("payload"))
			},
		},
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "delete",
				Description: "Delete a connection.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("connection_id", "Identifier of the connection."),
				},
				Result: "Human-readable confirmation naming the deleted connection.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.Delete(ctx, args.Get("connection_id"))
			},
		},
	})
}
