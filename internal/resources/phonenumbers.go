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

// PhoneNumber is the declared output shape for single-number reads.
type PhoneNumber struct {
	ID                   string          `json:"id,omitempty"`
	RecordType           string          `json:"record_type,omitempty"`
	PhoneNumber          string          `json:"phone_number,omitempty"`
	Status               string          `json:"status,omitempty"`
	ConnectionID         string          `json:"connection_id,omitempty"`
	MessagingProfileID   string          `json:"messaging_profile_id,omitempty"`
	Tags                 []string        `json:"tags,omitempty"`
	CreatedAt            string          `json:"created_at,omitempty"`
	UpdatedAt            string          `json:"updated_at,omitempty"`
	AdditionalAttributes *domain.AttrMap `json:"additional_attributes,omitempty"`
}

// PhoneNumbers adapts the phone_numbers resource.
type PhoneNumbers struct {
	*capability.Adapter
}

// NewPhoneNumbers creates the phone numbers adapter.
func NewPhoneNumbers(transport capability.Transport, logger *slog.Logger) *PhoneNumbers {
	return &PhoneNumbers{Adapter: capability.NewAdapter(capability.AdapterConfig{
		Resource:  "phone_numbers",
		Transport: transport,
		Logger:    logger,
	})}
}

// List fetches one page of owned phone numbers.
func (p *PhoneNumbers) List(ctx context.Context, page, pageSize string) string {
	const op = "phone_numbers.list"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Passthrough(ctx, op, http.MethodGet, withQuery("/v2/phone_numbers", q), "")
}

// Get fetches one phone number by id.
func (p *PhoneNumbers) Get(ctx context.Context, id string) string {
	const op = "phone_numbers.get"

	if err := capability.RequireNonEmpty("phone_number_id", id); err != nil {
		return p.Classify(ctx, op, err)
	}

	return capability.Typed[PhoneNumber](p.Adapter, ctx, op, http.MethodGet,
		"/v2/phone_numbers/"+url.PathEscape(id), "")
}

// Update applies a JSON settings payload to a phone number.
func (p *PhoneNumbers) Update(ctx context.Context, id, payload string) string {
	const op = "phone_numbers.update"

	if err := capability.RequireNonEmpty("phone_number_id", id); err != nil {
		return p.Classify(ctx, op, err)
	}

	if err := capability.RequireJSON("payload", payload); err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Passthrough(ctx, op, http.MethodPut,
		"/v2/phone_numbers/"+url.PathEscape(id), payload)
}

// Delete releases a phone number.
func (p *PhoneNumbers) Delete(ctx context.Context, id string) string {
	const op = "phone_numbers.delete"

	if err := capability.RequireNonEmpty("phone_number_id", id); err != nil {
		return p.Classify(ctx, op, err)
	}

	return p.Confirm(ctx, op, http.MethodDelete,
		"/v2/phone_numbers/"+url.PathEscape(id),
		fmt.Sprintf("Phone number %s has been released.", id))
}

// ListAvailable searches the inventory of purchasable numbers. Country code
// and area code narrow the search when supplied.
func (p *PhoneNumbers) ListAvailable(ctx context.Context, countryCode, areaCode, page, pageSize string) string {
	const op = "phone_numbers.list_available"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return p.Classify(ctx, op, err)
	}

	if countryCode != "" {
		q.Set("filter[country_code]", countryCode)
	}

	if areaCode != "" {
		q.Set("filter[national_destination_code]", areaCode)
	}

	return p.Passthrough(ctx, op, http.MethodGet,
		withQuery("/v2/available_phone_numbers", q), "")
}

// Register adds the phone number operations to the registry.
func (p *PhoneNumbers) Register(reg *capability.Registry) error {
	return registerAll(reg, []capability.Invocation{
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list",
				Description: "List owned phone numbers one page at a time.",
				Parameters:  pagingParams(),
				Result:      "Raw JSON page of phone numbers with paging metadata.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.List(ctx, args.Get("page"), args.Get("page_size"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "get",
				Description: "Fetch a single phone number by its identifier.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("phone_number_id", "Identifier of the phone number."),
				},
				Result: "Pretty-printed JSON for the phone number.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.Get(ctx, args.Get("phone_number_id"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "update",
				Description: "Update a phone number from a JSON settings payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("phone_number_id", "Identifier of the phone number."),
					capability.RequiredParam("payload", "JSON document with the settings to apply."),
				},
				Result: "Raw JSON of the updated phone number.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.Update(ctx, args.Get("phone_number_id"), args.Get("payload"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "delete",
				Description: "Release a phone number from the account.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("phone_number_id", "Identifier of the phone number."),
				},
				Result: "Human-readable confirmation naming the released number.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.Delete(ctx, args.Get("phone_number_id"))
			},
		},
		{
			Resource: p.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list_available",
				Description: "Search purchasable phone numbers in the inventory.",
				Parameters: append([]capability.ParameterDescriptor{
					capability.OptionalParam("country_code", "Two-letter country code filter.", ""),
					capability.OptionalParam("area_code", "National destination code filter.", ""),
				}, pagingParams()...),
				Result: "Raw JSON page of available phone numbers.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return p.ListAvailable(ctx, args.Get("country_code"), args.Get("area_code"),
					args.Get("page"), args.Get("page_size"))
			},
		},
	})
}
