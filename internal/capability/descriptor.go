// Package capability provides the generic machinery every resource adapter
// is built from: operation descriptors for discovery, argument validation,
// the fault-to-diagnosis classifier, the shared execution protocol, and the
// operation registry handed to the external invoker.
package capability

// ParameterDescriptor describes one input of an operation. Descriptors are
// built once at adapter construction and never mutated; they exist purely
// for self-description to the caller, not for dispatch.
type ParameterDescriptor struct {
	// Name is the argument name the validator checks and the invoker
	// supplies.
	Name string `json:"name"`

	// Description is human-readable documentation for discovery.
	Description string `json:"description"`

	// Required marks arguments the validator rejects when absent or blank.
	Required bool `json:"required"`

	// Default documents the value substituted when an optional argument is
	// omitted. Empty means "omitted entirely".
	Default string `json:"default,omitempty"`
}

// OperationDescriptor describes one callable operation of a resource.
type OperationDescriptor struct {
	// Name identifies the operation within its resource.
	Name string `json:"name"`

	// Description is human-readable documentation for discovery.
	Description string `json:"description"`

	// Parameters lists the inputs in call order.
	Parameters []ParameterDescriptor `json:"parameters"`

	// Result describes the shape of a successful result.
	Result string `json:"result"`
}

// RequiredParam builds a required parameter descriptor.
func RequiredParam(name, description string) ParameterDescriptor {
	return ParameterDescriptor{Name: name, Description: description, Required: true}
}

// OptionalParam builds an optional parameter descriptor with a documented
// default.
func OptionalParam(name, description, defaultValue string) ParameterDescriptor {
	return ParameterDescriptor{Name: name, Description: description, Default: defaultValue}
}
