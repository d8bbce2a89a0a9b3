// Package resources instantiates one capability adapter per backend REST
// resource. Each file binds a resource's operations to the shared execution
// protocol: declared parameters are validated, requests are built against
// the resource's base address, and every path out is a string.
package resources

import (
	"net/url"
	"strconv"

	"github.com/telcobridge/capgate/internal/capability"
)

// defaultPageSize is substituted when a caller omits page_size on a list
// operation. Paged responses pass through verbatim; no client-side
// traversal happens here, each page is one call.
const defaultPageSize = 10

// pageQuery builds the paging query parameters for list operations.
// An omitted page is left out of the query entirely; an omitted page_size
// gets the documented default.
func pageQuery(page, pageSize string) (url.Values, error) {
	q := url.Values{}

	n, err := capability.OptionalInt("page", page, 0)
	if err != nil {
		return nil, err
	}

	if n > 0 {
		q.Set("page[number]", strconv.Itoa(n))
	}

	size, err := capability.OptionalInt("page_size", pageSize, defaultPageSize)
	if err != nil {
		return nil, err
	}

	q.Set("page[size]", strconv.Itoa(size))

	return q, nil
}

// withQuery appends encoded query parameters to a path.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}

	return path + "?" + q.Encode()
}

// pagingParams returns the descriptors shared by every list operation.
func pagingParams() []capability.ParameterDescriptor {
	return []capability.ParameterDescriptor{
		capability.OptionalParam("page", "Page number to fetch; omitted when not set.", ""),
		capability.OptionalParam("page_size", "Records per page.", strconv.Itoa(defaultPageSize)),
	}
}

// registerAll registers a resource's invocations, stopping at the first
// error. Registration runs at startup and any failure is fatal.
func registerAll(reg *capability.Registry, entries []capability.Invocation) error {
	for i := range entries {
		if err := reg.Register(&entries[i]); err != nil {
			return err
		}
	}

	return nil
}
