package pickhero

import (
	"fmt"
	"net/url"
	"sort"
)

// IDType selects how an identifier in a resource path is matched by the
// warehouse API.
type IDType string

const (
	// IDAuto tries an internal ID match first, then external_id.
	IDAuto IDType = ""
	// IDInternal matches by internal ID only.
	IDInternal IDType = "internal"
	// IDExternal matches by external_id only.
	IDExternal IDType = "external"
)

// FormatID renders an identifier path segment with the prefix the API
// expects for the given match mode.
func FormatID(id string, idType IDType) string {
	switch idType {
	case IDInternal:
		return "id:" + id
	case IDExternal:
		return "external_id:" + id
	default:
		return id
	}
}

// ListParams describes filtering, sorting, and relation loading for list
// endpoints.
type ListParams struct {
	// Filters become filter[<key>]=<value> pairs; empty values are skipped.
	Filters map[string]string
	// Sort is a field name, optionally prefixed with "-" for descending.
	Sort string
	// Include is a comma separated list of relations to embed.
	Include string
}

// Values encodes the parameters as a URL query. Filter keys are emitted in
// sorted order so requests are stable in logs and tests.
func (p ListParams) Values() url.Values {
	values := url.Values{}

	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := p.Filters[k]; v != "" {
			values.Set(fmt.Sprintf("filter[%s]", k), v)
		}
	}

	if p.Sort != "" {
		values.Set("sort", p.Sort)
	}
	if p.Include != "" {
		values.Set("include", p.Include)
	}
	return values
}
