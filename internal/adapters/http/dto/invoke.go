package dto

import (
	"github.com/telcobridge/capgate/internal/capability"
)

// InvokeRequest is the body of an operation invocation. Arguments are
// matched by name against the operation's parameter descriptors; unknown
// keys are ignored.
type InvokeRequest struct {
	Arguments map[string]string `json:"arguments"`
}

// InvokeResponse carries the invocation result. The result is always a
// single string: a success payload or an "Error: ..." diagnosis.
type InvokeResponse struct {
	Resource  string `json:"resource"`
	Operation string `json:"operation"`
	Result    string `json:"result"`
}

// ParameterInfo describes one parameter of a discoverable operation.
type ParameterInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default,omitempty"`
}

// OperationInfo describes one discoverable operation.
type OperationInfo struct {
	Resource    string          `json:"resource"`
	Operation   string          `json:"operation"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
	Result      string          `json:"result"`
}

// CapabilitiesResponse lists every discoverable operation.
type CapabilitiesResponse struct {
	Operations []OperationInfo `json:"operations"`
}

// NewCapabilitiesResponse converts registered invocations into their
// discovery representation, preserving registration order.
func NewCapabilitiesResponse(invocations []*capability.Invocation) CapabilitiesResponse {
	ops := make([]OperationInfo, 0, len(invocations))

	for _, inv := range invocations {
		params := make([]ParameterInfo, 0, len(inv.Descriptor.Parameters))
		for _, p := range inv.Descriptor.Parameters {
			params = append(params, ParameterInfo{
				Name:        p.Name,
				Description: p.Description,
				Required:    p.Required,
				Default:     p.Default,
			})
		}

		ops = append(ops, OperationInfo{
			Resource:    inv.Resource,
			Operation:   inv.Descriptor.Name,
			Description: inv.Descriptor.Description,
			Parameters:  params,
			Result:      inv.Descriptor.Result,
		})
	}

	return CapabilitiesResponse{Operations: ops}
}
