package resources

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/telcobridge/capgate/internal/capability"
)

// NumberOrder is the declared output shape for single-order reads.
type NumberOrder struct {
	ID                 string             `json:"id,omitempty"`
	RecordType         string             `json:"record_type,omitempty"`
	Status             string             `json:"status,omitempty"`
	ConnectionID       string             `json:"connection_id,omitempty"`
	MessagingProfileID string             `json:"messaging_profile_id,omitempty"`
	PhoneNumbersCount  *int               `json:"phone_numbers_count,omitempty"`
	PhoneNumbers       []OrderPhoneNumber `json:"phone_numbers,omitempty"`
	CreatedAt          string             `json:"created_at,omitempty"`
	UpdatedAt          string             `json:"updated_at,omitempty"`
}

// OrderPhoneNumber is one number line inside a number order.
type OrderPhoneNumber struct {
	ID          string `json:"id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Status      string `json:"status,omitempty"`
}

// NumberOrders adapts the number_orders resource.
type NumberOrders struct {
	*capability.Adapter
}

// NewNumberOrders creates the number orders adapter.
func NewNumberOrders(transport capability.Transport, logger *slog.Logger) *NumberOrders {
	return &NumberOrders{Adapter: capability.NewAdapter(capability.AdapterConfig{
		Resource:  "number_orders",
		Transport: transport,
		Logger:    logger,
	})}
}

// List fetches one page of number orders.
func (n *NumberOrders) List(ctx context.Context, page, pageSize string) string {
	const op = "number_orders.list"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return n.Classify(ctx, op, err)
	}

	return n.Passthrough(ctx, op, http.MethodGet, withQuery("/v2/number_orders", q), "")
}

// Get fetches one number order by id.
func (n *NumberOrders) Get(ctx context.Context, id string) string {
	const op = "number_orders.get"

	if err := capability.RequireNonEmpty("order_id", id); err != nil {
		return n.Classify(ctx, op, err)
	}

	return capability.Typed[NumberOrder](n.Adapter, ctx, op, http.MethodGet,
		"/v2/number_orders/"+url.PathEscape(id), "")
}

// Create places a number order from a JSON payload.
func (n *NumberOrders) Create(ctx context.Context, payload string) string {
	const op = "number_orders.create"

	if err := capability.RequireJSON("payload", payload); err != nil {
		return n.Classify(ctx, op, err)
	}

	return n.Passthrough(ctx, op, http.MethodPost, "/v2/number_orders", payload)
}

// Update applies a JSON payload to a pending number order.
func (n *NumberOrders) Update(ctx context.Context, id, payload string) string {
	const op = "number_orders.update"

	if err := capability.RequireNonEmpty("order_id", id); err != nil {
		return n.Classify(ctx, op, err)
	}

	if err := capability.RequireJSON("payload", payload); err != nil {
		return n.Classify(ctx, op, err)
	}

	return n.Passthrough(ctx, op, http.MethodPut,
		"/v2/number_orders/"+url.PathEscape(id), payload)
}

// Register adds the number order operations to the registry.
func (n *NumberOrders) Register(reg *capability.Registry) error {
	return registerAll(reg, []capability.Invocation{
		{
			Resource: n.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list",
				Description: "List number orders one page at a time.",
				Parameters:  pagingParams(),
				Result:      "Raw JSON page of number orders with paging metadata.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return n.List(ctx, args.Get("page"), args.Get("page_size"))
			},
		},
		{
			Resource: n.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "get",
				Description: "Fetch a single number order by its identifier.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("order_id", "Identifier of the number order."),
				},
				Result: "Pretty-printed JSON for the number order.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return n.Get(ctx, args.Get("order_id"))
			},
		},
		{
			Resource: n.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "create",
				Description: "Place a number order from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("payload", "JSON document listing the phone numbers to order."),
				},
				Result: "Raw JSON of the created number order.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return n.Create(ctx, args.Get("payload"))
			},
		},
		{
			Resource: n.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "update",
				Description: "Update a pending number order from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("order_id", "Identifier of the number order."),
					capability.RequiredParam("payload", "JSON document with the fields to apply."),
				},
				Result: "Raw JSON of the updated number order.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return n.Update(ctx, args.Get("order_id"), args.Get("payload"))
			},
		},
	})
}
