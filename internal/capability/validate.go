package capability

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/telcobridge/capgate/internal/domain"
)

// RequireNonEmpty fails with a missing argument fault when value is empty or
// consists only of whitespace. It runs synchronously before any network call
// and never logs; the classifier owns the single log record per fault.
func RequireNonEmpty(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewMissingArgumentError(name)
	}

	return nil
}

// RequireJSON applies RequireNonEmpty and then checks that value parses as a
// syntactically valid JSON document. Semantic correctness is deliberately not
// checked; payloads pass through to the upstream verbatim.
func RequireJSON(name, value string) error {
	if err := RequireNonEmpty(name, value); err != nil {
		return err
	}

	var probe any
	if err := json.Unmarshal([]byte(value), &probe); err != nil {
		return domain.NewMalformedArgumentError(name, err.Error())
	}

	return nil
}

// OptionalInt parses an optional numeric argument, substituting def when the
// value is omitted. A non-numeric value is a malformed argument fault.
func OptionalInt(name, value string, def int) (int, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, domain.NewMalformedArgumentError(name, "must be an integer")
	}

	return n, nil
}
