package resources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/telcobridge/capgate/internal/capability"
)

// MessagingProfile is the declared output shape for single-profile reads.
type MessagingProfile struct {
	ID                      string   `json:"id,omitempty"`
	RecordType              string   `json:"record_type,omitempty"`
	Name                    string   `json:"name,omitempty"`
	Enabled                 *bool    `json:"enabled,omitempty"`
	WebhookURL              string   `json:"webhook_url,omitempty"`
	WebhookAPIVersion       string   `json:"webhook_api_version,omitempty"`
	WhitelistedDestinations []string `json:"whitelisted_destinations,omitempty"`
	CreatedAt               string   `json:"created_at,omitempty"`
	UpdatedAt               string   `json:"updated_at,omitempty"`
}

// MessagingProfiles adapts the messaging_profiles resource.
type MessagingProfiles struct {
	*capability.Adapter
}

// NewMessagingProfiles creates the messaging profiles adapter.
func NewMessagingProfiles(transport capability.Transport, logger *slog.Logger) *MessagingProfiles {
	return &MessagingProfiles{Adapter: capability.NewAdapter(capability.AdapterConfig{
		Resource:  "messaging_profiles",
		Transport: transport,
		Logger:    logger,
	})}
}

// List fetches one page of messaging profiles.
func (m *MessagingProfiles) List(ctx context.Context, page, pageSize string) string {
	const op = "messaging_profiles.list"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return m.Classify(ctx, op, err)
	}

	return m.Passthrough(ctx, op, http.MethodGet, withQuery("/v2/messaging_profiles", q), "")
}

// Get fetches one messaging profile by id.
func (m *MessagingProfiles) Get(ctx context.Context, id string) string {
	const op = "messaging_profiles.get"

	if err := capability.RequireNonEmpty("profile_id", id); err != nil {
		return m.Classify(ctx, op, err)
	}

	return capability.Typed[MessagingProfile](m.Adapter, ctx, op, http.MethodGet,
		"/v2/messaging_profiles/"+url.PathEscape(id), "")
}

// Create provisions a messaging profile from a JSON payload.
func (m *MessagingProfiles) Create(ctx context.Context, payload string) string {
	const op = "messaging_profiles.create"

	if err := capability.RequireJSON("payload", payload); err != nil {
		return m.Classify(ctx, op, err)
	}

	return m.Passthrough(ctx, op, http.MethodPost, "/v2/messaging_profiles", payload)
}

// Update applies a JSON settings payload to a messaging profile.
func (m *MessagingProfiles) Update(ctx context.Context, id, payload string) string {
	const op = "messaging_profiles.update"

	if err := capability.RequireNonEmpty("profile_id", id); err != nil {
		return m.Classify(ctx, op, err)
	}

	if err := capability.RequireJSON("payload", payload); err != nil {
		return m.Classify(ctx, op, err)
	}

	return m.Passthrough(ctx, op, http.MethodPut,
		"/v2/messaging_profiles/"+url.PathEscape(id), payload)
}

// Delete removes a messaging profile.
func (m *MessagingProfiles) Delete(ctx context.Context, id string) string {
	const op = "messaging_profiles.delete"

	if err := capability.RequireNonEmpty("profile_id", id); err != nil {
		return m.Classify(ctx, op, err)
	}

	return m.Confirm(ctx, op, http.MethodDelete,
		"/v2/messaging_profiles/"+url.PathEscape(id),
		fmt.Sprintf("Messaging profile %s has been deleted.", id))
}

// ListPhoneNumbers fetches one page of numbers assigned to a profile.
func (m *MessagingProfiles) ListPhoneNumbers(ctx context.Context, id, page, pageSize string) string {
	const op = "messaging_profiles.list_phone_numbers"

	if err := capability.RequireNonEmpty("profile_id", id); err != nil {
		return m.Classify(ctx, op, err)
	}

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return m.Classify(ctx, op, err)
	}

	return m.Passthrough(ctx, op, http.MethodGet,
		withQuery("/v2/messaging_profiles/"+url.PathEscape(id)+"/phone_numbers", q), "")
}

// Register adds the messaging profile operations to the registry.
func (m *MessagingProfiles) Register(reg *capability.Registry) error {
	return registerAll(reg, []capability.Invocation{
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list",
				Description: "List messaging profiles one page at a time.",
				Parameters:  pagingParams(),
				Result:      "Raw JSON page of messaging profiles with paging metadata.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.List(ctx, args.Get("page"), args.Get("page_size"))
			},
		},
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "get",
				Description: "Fetch a single messaging profile by its identifier.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("profile_id", "Identifier of the messaging profile."),
				},
				Result: "Pretty-printed JSON for the messaging profile.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.Get(ctx, args.Get("profile_id"))
			},
		},
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "create",
				Description: "Create a messaging profile from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("payload", "JSON document describing the profile."),
				},
				Result: "Raw JSON of the created messaging profile.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.Create(ctx, args.Get("payload"))
			},
		},
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "update",
				Description: "Update a messaging profile from a JSON settings payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("profile_id", "Identifier of the messaging profile."),
					capability.RequiredParam("payload", "JSON document with the settings to apply."),
				},
				Result: "Raw JSON of the updated messaging profile.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.Update(ctx, args.Get("profile_id"), args.Get("payload"))
			},
		},
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "delete",
				Description: "Delete a messaging profile.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("profile_id", "Identifier of the messaging profile."),
				},
				Result: "Human-readable confirmation naming the deleted profile.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.Delete(ctx, args.Get("profile_id"))
			},
		},
		{
			Resource: m.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list_phone_numbers",
				Description: "List phone numbers assigned to a messaging profile.",
				Parameters: append([]capability.ParameterDescriptor{
					capability.RequiredParam("profile_id", "Identifier of the messaging profile."),
				}, pagingParams()...),
				Result: "Raw JSON page of assigned phone numbers.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return m.ListPhoneNumbers(ctx, args.Get("profile_id"),
					args.Get("page"), args.Get("page_size"))
			},
		},
	})
}
