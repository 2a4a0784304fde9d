package billing

import (
	"errors"
	"strconv"
	"strings"
)

var errNotPaginated = errors.New("method did not return a paginated list payload")

// AsItemList extracts list items from a response that is either a bare
// list or an object wrapping one under a list/data/items member.
func AsItemList(result any) []any {
	if items, ok := result.([]any); ok {
		return items
	}
	object, ok := result.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range []string{"list", "data", "items"} {
		if items, ok := object[key].([]any); ok {
			return items
		}
	}
	return nil
}

// paginationMeta reads total-pages/total-count metadata under its
// several upstream spellings; zero means absent.
func paginationMeta(result any) (pages, total int) {
	object, ok := result.(map[string]any)
	if !ok {
		return 0, 0
	}
	for _, key := range []string{"pages", "total_pages"} {
		if n, ok := metaInt(object[key]); ok {
			pages = n
			break
		}
	}
	for _, key := range []string{"total", "total_results", "count"} {
		if n, ok := metaInt(object[key]); ok {
			total = n
			break
		}
	}
	return pages, total
}

func metaInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	}
	return 0, false
}

// FetchPaginated harvests every page of a list endpoint through the
// first method alias that serves a paginated payload. page/per_page are
// merged into basePayload unless the caller pinned them. Paging stops
// on an empty page, on reported pages/total metadata, or on a short
// page (fewer items than perPage — the end-of-data heuristic for
// upstreams that report no totals). An alias whose first page is a
// non-list object is rejected and the next alias is tried; an empty
// alias list yields an empty result, not an error.
func (c *Client) FetchPaginated(scope Scope, methods []string, basePayload map[string]any, perPage, maxPages int) ([]any, error) {
	var lastErr error

	for _, method := range methods {
		collected, err := c.harvestAlias(scope, method, basePayload, perPage, maxPages)
		if err != nil {
			lastErr = err
			continue
		}
		return collected, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return []any{}, nil
}

func (c *Client) harvestAlias(scope Scope, method string, basePayload map[string]any, perPage, maxPages int) ([]any, error) {
	collected := []any{}
	for page := 1; page <= maxPages; page++ {
		payload := make(map[string]any, len(basePayload)+2)
		for key, value := range basePayload {
			payload[key] = value
		}
		if _, pinned := payload["page"]; !pinned {
			payload["page"] = page
		}
		if _, pinned := payload["per_page"]; !pinned {
			payload["per_page"] = perPage
		}

		result, err := c.Call(scope, method, payload)
		if err != nil {
			return nil, err
		}
		items := AsItemList(result)

		if page == 1 && len(items) == 0 {
			if _, isObject := result.(map[string]any); isObject {
				return nil, errNotPaginated
			}
		}
		if len(items) == 0 {
			break
		}
		collected = append(collected, items...)

		pages, total := paginationMeta(result)
		if pages > 0 && page >= pages {
			break
		}
		if total > 0 && len(collected) >= total {
			break
		}
		if len(items) < perPage {
			break
		}
	}
	return collected, nil
}
