package resources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/telcobridge/capgate/internal/capability"
)

// CallControlApplication is the declared output shape for single-app reads.
type CallControlApplication struct {
	ID                      string `json:"id,omitempty"`
	RecordType              string `json:"record_type,omitempty"`
	ApplicationName         string `json:"application_name,omitempty"`
	Active                  *bool  `json:"active,omitempty"`
	WebhookEventURL         string `json:"webhook_event_url,omitempty"`
	WebhookEventFailoverURL string `json:"webhook_event_failover_url,omitempty"`
	AnchorsiteOverride      string `json:"anchorsite_override,omitempty"`
	CreatedAt               string `json:"created_at,omitempty"`
	UpdatedAt               string `json:"updated_at,omitempty"`
}

// CallControlApplications adapts the call_control_applications resource.
type CallControlApplications struct {
	*capability.Adapter
}

// NewCallControlApplications creates the call control applications adapter.
func NewCallControlApplications(transport capability.Transport, logger *slog.Logger) *CallControlApplications {
	return &CallControlApplications{Adapter: capability.NewAdapter(capability.AdapterConfig{
		Resource:  "call_control_applications",
		Transport: transport,
		Logger:    logger,
	})}
}

// List fetches one page of call control applications.
func (c *CallControlApplications) List(ctx context.Context, page, pageSize string) string {
	const op = "call_control_applications.list"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return c.Classify(ctx, op, err)
	}

	return c.Passthrough(ctx, op, http.MethodGet,
		withQuery("/v2/call_control_applications", q), "")
}

// Get fetches one call control application by id.
func (c *CallControlApplications) Get(ctx context.Context, id string) string {
	const op = "call_control_applications.get"

	if err := capability.RequireNonEmpty("application_id", id); err != nil {
		return c.Classify(ctx, op, err)
	}

	return capability.Typed[CallControlApplication](c.Adapter, ctx, op, http.MethodGet,
		"/v2/call_control_applications/"+url.PathEscape(id), "")
}

// Create provisions a call control application from a JSON payload.
func (c *CallControlApplications) Create(ctx context.Context, payload string) string {
	const op = "call_control_applications.create"

	if err := capability.RequireJSON("payload", payload); err != nil {
		return c.Classify(ctx, op, err)
	}

	return c.Passthrough(ctx, op, http.MethodPost, "/v2/call_control_applications", payload)
}

// Update applies a JSON settings payload to a call control application.
func (c *CallControlApplications) Update(ctx context.Context, id, payload string) string {
	const op = "call_control_applications.update"

	if err := capability.RequireNonEmpty("application_id", id); err != nil {
		return c.Classify(ctx, op, err)
	}

	if err := capability.RequireJSON("payload", payload); err != nil {
		return c.Classify(ctx, op, err)
	}

	return c.Passthrough(ctx, op, http.MethodPut,
		"/v2/call_control_applications/"+url.PathEscape(id), payload)
}

// Delete removes a call control application.
func (c *CallControlApplications) Delete(ctx context.Context, id string) string {
	const op = "call_control_applications.delete"

	if err := capability.RequireNonEmpty("application_id", id); err != nil {
		return c.Classify(ctx, op, err)
	}

	return c.Confirm(ctx, op, http.MethodDelete,
		"/v2/call_control_applications/"+url.PathEscape(id),
		fmt.Sprintf("Call control application %s has been deleted.", id))
}

// Register adds the call control application operations to the registry.
func (c *CallControlApplications) Register(reg *capability.Registry) error {
	return registerAll(reg, []capability.Invocation{
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list",
				Description: "List call control applications one page at a time.",
				Parameters:  pagingParams(),
				Result:      "Raw JSON page of call control applications with paging metadata.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.List(ctx, args.Get("page"), args.Get("page_size"))
			},
		},
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "get",
				Description: "Fetch a single call control application by its identifier.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("application_id", "Identifier of the application."),
				},
				Result: "Pretty-printed JSON for the application.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.Get(ctx, args.Get("application_id"))
			},
		},
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "create",
				Description: "Create a call control application from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("payload", "JSON document describing the application."),
				},
				Result: "Raw JSON of the created application.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.Create(ctx, args.Get("payload"))
			},
		},
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "update",
				Description: "Update a call control application from a JSON settings payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("application_id", "Identifier of the application."),
					capability.RequiredParam("payload", "JSON document with the settings to apply."),
				},
				Result: "Raw JSON of the updated application.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.Update(ctx, args.Get("application_id"), args.Get("payload"))
			},
		},
		{
			Resource: c.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "delete",
				Description: "Delete a call control application.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("application_id", "Identifier of the application."),
				},
				Result: "Human-readable confirmation naming the deleted application.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return c.Delete(ctx, args.Get("application_id"))
			},
		},
	})
}
