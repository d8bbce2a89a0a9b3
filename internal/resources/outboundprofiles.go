package resources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/telcobridge/capgate/internal/capability"
)

// OutboundVoiceProfile is the declared output shape for single-profile reads.
type OutboundVoiceProfile struct {
	ID                      string   `json:"id,omitempty"`
	RecordType              string   `json:"record_type,omitempty"`
	Name                    string   `json:"name,omitempty"`
	Enabled                 *bool    `json:"enabled,omitempty"`
	TrafficType             string   `json:"traffic_type,omitempty"`
	ServicePlan             string   `json:"service_plan,omitempty"`
	ConcurrentCallLimit     *int     `json:"concurrent_call_limit,omitempty"`
	WhitelistedDestinations []string `json:"whitelisted_destinations,omitempty"`
	CreatedAt               string   `json:"created_at,omitempty"`
	UpdatedAt               string   `json:"updated_at,omitempty"`
}

// OutboundVoiceProfiles adapts the outbound_voice_profiles resource.
type OutboundVoiceProfiles struct {
	*capability.Adapter
}

// NewOutboundVoiceProfiles creates the outbound voice profiles adapter.
func NewOutboundVoiceProfiles(transport capability.Transport, logger *slog.Logger) *OutboundVoiceProfiles {
	return &OutboundVoiceProfiles{Adapter: capability.NewAdapter(capability.AdapterConfig{
		Resource:  "outbound_voice_profiles",
		Transport: transport,
		Logger:    logger,
	})}
}

// List fetches one page of outbound voice profiles.
func (o *OutboundVoiceProfiles) List(ctx context.Context, page, pageSize string) string {
	const op = "outbound_voice_profiles.list"

	q, err := pageQuery(page, pageSize)
	if err != nil {
		return o.Classify(ctx, op, err)
	}

	return o.Passthrough(ctx, op, http.MethodGet,
		withQuery("/v2/outbound_voice_profiles", q), "")
}

// Get fetches one outbound voice profile by id.
func (o *OutboundVoiceProfiles) Get(ctx context.Context, id string) string {
	const op = "outbound_voice_profiles.get"

	if err := capability.RequireNonEmpty("profile_id", id); err != nil {
		return o.Classify(ctx, op, err)
	}

	return capability.Typed[OutboundVoiceProfile](o.Adapter, ctx, op, http.MethodGet,
		"/v2/outbound_voice_profiles/"+url.PathEscape(id), "")
}

// Create provisions an outbound voice profile from a JSON payload.
func (o *OutboundVoiceProfiles) Create(ctx context.Context, payload string) string {
	const op = "outbound_voice_profiles.create"

	if err := capability.RequireJSON("payload", payload); err != nil {
		return o.Classify(ctx, op, err)
	}

	return o.Passthrough(ctx, op, http.MethodPost, "/v2/outbound_voice_profiles", payload)
}

// Update applies a JSON settings payload to an outbound voice profile.
func (o *OutboundVoiceProfiles) Update(ctx context.Context, id, payload string) string {
	const op = "outbound_voice_profiles.update"

	if err := capability.RequireNonEmpty("profile_id", id); err != nil {
		return o.Classify(ctx, op, err)
	}

	if err := capability.RequireJSON("payload", payload); err != nil {
		return o.Classify(ctx, op, err)
	}

	return o.Passthrough(ctx, op, http.MethodPut,
		"/v2/outbound_voice_profiles/"+url.PathEscape(id), payload)
}

// Delete removes an outbound voice profile.
func (o *OutboundVoiceProfiles) Delete(ctx context.Context, id string) string {
	const op = "outbound_voice_profiles.delete"

	if err := capability.RequireNonEmpty("profile_id", id); err != nil {
		return o.Classify(ctx, op, err)
	}

	return o.Confirm(ctx, op, http.MethodDelete,
		"/v2/outbound_voice_profiles/"+url.PathEscape(id),
		fmt.Sprintf("Outbound voice profile %s has been deleted.", id))
}

// Register adds the outbound voice profile operations to the registry.
func (o *OutboundVoiceProfiles) Register(reg *capability.Registry) error {
	return registerAll(reg, []capability.Invocation{
		{
			Resource: o.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "list",
				Description: "List outbound voice profiles one page at a time.",
				Parameters:  pagingParams(),
				Result:      "Raw JSON page of outbound voice profiles with paging metadata.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return o.List(ctx, args.Get("page"), args.Get("page_size"))
			},
		},
		{
			Resource: o.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "get",
				Description: "Fetch a single outbound voice profile by its identifier.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("profile_id", "Identifier of the outbound voice profile."),
				},
				Result: "Pretty-printed JSON for the outbound voice profile.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return o.Get(ctx, args.Get("profile_id"))
			},
		},
		{
			Resource: o.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "create",
				Description: "Create an outbound voice profile from a JSON payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("payload", "JSON document describing the profile."),
				},
				Result: "Raw JSON of the created outbound voice profile.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return o.Create(ctx, args.Get("payload"))
			},
		},
		{
			Resource: o.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "update",
				Description: "Update an outbound voice profile from a JSON settings payload.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("profile_id", "Identifier of the outbound voice profile."),
					capability.RequiredParam("payload", "JSON document with the settings to apply."),
				},
				Result: "Raw JSON of the updated outbound voice profile.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return o.Update(ctx, args.Get("profile_id"), args.Get("payload"))
			},
		},
		{
			Resource: o.Resource(),
			Descriptor: capability.OperationDescriptor{
				Name:        "delete",
				Description: "Delete an outbound voice profile.",
				Parameters: []capability.ParameterDescriptor{
					capability.RequiredParam("profile_id", "Identifier of the outbound voice profile."),
				},
				Result: "Human-readable confirmation naming the deleted profile.",
			},
			Invoke: func(ctx context.Context, args capability.Arguments) string {
				return o.Delete(ctx, args.Get("profile_id"))
			},
		},
	})
}
