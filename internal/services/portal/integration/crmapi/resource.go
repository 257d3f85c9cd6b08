package crmapi

import (
	"net/url"
	"strconv"
	"strings"
)

// Resource names a CRM collection exposed by the API.
type Resource string

const (
	ResourceCompanies     Resource = "companies"
	ResourceContacts      Resource = "contacts"
	ResourceContactGroups Resource = "contact-groups"
	ResourceCampaigns     Resource = "campaigns"
	ResourceSurveys       Resource = "surveys"
	ResourceTasks         Resource = "tasks"
	ResourceTemplates     Resource = "templates"
	ResourceAccounts      Resource = "accounts"
)

// Resources returns every listable collection.
func Resources() []Resource {
	return []Resource{
		ResourceCompanies,
		ResourceContacts,
		ResourceContactGroups,
		ResourceCampaigns,
		ResourceSurveys,
		ResourceTasks,
		ResourceTemplates,
		ResourceAccounts,
	}
}

// ParseResource resolves raw into a known collection.
func ParseResource(raw string) (Resource, bool) {
	candidate := Resource(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Resources() {
		if candidate == known {
			return known, true
		}
	}
	return "", false
}

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// ListQuery selects one page of a collection.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	// Filter is an AIP-160 expression forwarded to the API as is.
	Filter string
}

// Normalize clamps paging to the ranges the API accepts.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PageSize <= 0:
		q.PageSize = defaultPageSize
	case q.PageSize > maxPageSize:
		q.PageSize = maxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Filter = strings.TrimSpace(q.Filter)
	return q
}

// Values encodes the normalized query string.
func (q ListQuery) Values() url.Values {
	q = q.Normalize()
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Filter != "" {
		values.Set("filter", q.Filter)
	}
	return values
}

// ListQueryFromValues reads paging parameters from a portal request query.
func ListQueryFromValues(values url.Values) ListQuery {
	page, _ := strconv.Atoi(values.Get("page"))
	size, _ := strconv.Atoi(values.Get("pageSize"))
	return ListQuery{
		Page:     page,
		PageSize: size,
		Search:   values.Get("search"),
		Filter:   values.Get("filter"),
	}.Normalize()
}

// Record is one item of a collection as returned by the API.
type Record map[string]any

// ID returns the record identifier.
func (r Record) ID() string {
	return r.Field("id")
}

// Field formats one attribute for display. Missing values are empty.
func (r Record) Field(name string) string {
	value, ok := r[name]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, Record{"v": item}.Field("v"))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
		return ""
	default:
		return ""
	}
}

// Page is one page of a collection.
type Page struct {
	Items    []Record `json:"items"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

// HasNext reports whether another page follows.
func (p Page) HasNext() bool {
	return p.PageSize > 0 && p.Page*p.PageSize < p.Total
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Page > 1
}
