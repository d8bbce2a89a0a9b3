package resources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/telcobridge/capgate/internal/capability"
)

// PortingOrder is the declared output shape for single-order reads.
type PortingOrder struct {
	ID                  string   `json:"id,omitempty"`
	RecordType          string   `json:"record_type,omitempty"`
	Status              string   `json:"status,omitempty"`
	CustomerReference   string   `json:"customer_reference,omitempty"`
	PortingPhoneNumbers []string `json:"porting_phone_numbers,omitempty"`
	FocaDate            string   `json:"foc_date,omitempty"`
	CreatedAt           string   `json:"created_at,omitempty"`
	UpdatedAt           string   `json:"updated_at,omitempty"`
}

// PortingOrders adapts the porting_orders resource.
type PortingOrders struct {
	*capability.Adapter
}

// NewPortingOrders creates the porting orders adapter.
func NewPortingOrders(transport capability.Transport, logger *slog.Logger) *PortingOrders {
	return &PortingOrders{Adapter: capability.NewAdapter(capability.AdapterConfig{
		Resource:  "porting_orders",
		Transport: transport,
		Logger:    logger,
	})}
}

// List fetches one page of porting orders.
func (p *PortingOrders) List(ctx context.Context, page, pageSize string) string {
	const op = "porting_orders.list"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Passthrough(ctx, op, http.MethodGet, withQuery("/v2/porting_orders", q), "")
}

// Get fetches one porting order by id.
func (p *PortingOrders) Get(ctx context.Context, id string) string {
	const op = "porting_orders.get"

	if err := capability.RequireNonEmpty("porting_order_id", id); err != nil {
		return p.Classify(ctx, op, err)
	}

	return capability.Typed[PortingOrder](p.Adapter, ctx, op, http.MethodGet,
		"/v2/porting_orders/"+url.PathEscape(id), "")
}

// Create opens a porting order from a JSON payload.
func (p *PortingOrders) Create(ctx context.Context, payload string) string {
	const op = "porting_orders.create"

	if err := capability.RequireJSON("payload", payload); err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Passthrough(ctx, op, http.MethodPost, "/v2/porting_orders", payload)
}

// Update applies a JSON payload to a porting order.
func (p *PortingOrders) Update(ctx context.Context, id, payload string) string {
	const op = "porting_orders.update"

	if err := capability.RequireNonEmpty("porting_order_id", id); err != nil {
		return p.Classify(ctx, op, err)
	}

	if err := capability.RequireJSON("payload", payload); err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Passthrough(ctx, op, http.MethodPut,
		"/v2/porting_orders/"+url.PathEscape(id), payload)
}

// Delete cancels a porting order.
func (p *PortingOrders) Delete(ctx context.Context, id string) string {
	const op = "porting_orders.delete"

	if err := capability.RequireNonEmpty("porting_order_id", id); err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Confirm(ctx, op, http.MethodDelete,
		"/v2/porting_orders/"+url.PathEscape(id),
		fmt.Sprintf("Porting order %s has been cancelled.", id))
}

// Activate triggers number activation for a confirmed porting order.
func (p *PortingOrders) Activate(ctx context.Context, id string) string {
	const op = "porting_orders.activate"

	if err := capability.RequireNonEmpty("porting_order_id", id); err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Passthrough(ctx, op, http.MethodPost,
		"/v2/porting_orders/"+url.PathEscape(id)+"/actions/activate", "")
}

// ListActivationJobs fetches one page of activation jobs for an order.
func (p *PortingOrders) ListActivationJobs(ctx context.Context, id, page, pageSize string) string {
	const op = "porting_orders.list_activation_jobs"

	if err := capability.RequireNonEmpty("porting_order_id", id); err != nil {
		return p.Classify(ctx, op, err)
	}

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Passthrough(ctx, op, http.MethodGet,
		withQuery("/v2/porting_orders/"+url.PathEscape(id)+"/activation_jobs", q), "")
}

// Register adds the porting order operations to the registry.
func (p *PortingOrders) Register(reg *capability.Registry) error {
	return registerAll(reg, []capability.Invocation{
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list",
				Description: "List porting orders one page at a time.",
				Parameters:  pagingParams(),
				Result:      "Raw JSON page of porting orders with paging metadata.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.List(ctx, args.Get("page"), args.Get("page_size"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "get",
				Description: "Fetch a single porting order by its identifier.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("porting_order_id", "Identifier of the porting order."),
				},
				Result: "Pretty-printed JSON for the porting order.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.Get(ctx, args.Get("porting_order_id"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "create",
				Description: "Open a porting order from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("payload", "JSON document listing the numbers to port in."),
				},
				Result: "Raw JSON of the created porting order.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.Create(ctx, args.Get("payload"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "update",
				Description: "Update a porting order from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("porting_order_id", "Identifier of the porting order."),
					capability.RequiredParam("payload", "JSON document with the fields to apply."),
				},
				Result: "Raw JSON of the updated porting order.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.Update(ctx, args.Get("porting_order_id"), args.Get("payload"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "delete",
				Description: "Cancel a porting order.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("porting_order_id", "Identifier of the porting order."),
				},
				Result: "Human-readable confirmation naming the cancelled order.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.Delete(ctx, args.Get("porting_order_id"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "activate",
				Description: "Trigger number activation for a confirmed porting order.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("porting_order_id", "Identifier of the porting order."),
				},
				Result: "Raw JSON of the activation request.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.Activate(ctx, args.Get("porting_order_id"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list_activation_jobs",
				Description: "List activation jobs belonging to a porting order.",
				Parameters: append([]capability.ParameterDescriptor{
					capability.RequiredParam("porting_order_id", "Identifier of the porting order."),
				}, pagingParams()...),
				Result: "Raw JSON page of activation jobs.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.ListActivationJobs(ctx, args.Get("porting_order_id"),
					args.Get("page"), args.Get("page_size"))
			},
		},
	})
}
