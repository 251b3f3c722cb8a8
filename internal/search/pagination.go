package search

// PageLink is one element of the rendered pagination strip: either a page
// number (possibly the current one) or an ellipsis gap.
type PageLink struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// TotalPages returns the page count for a result set
func TotalPages(totalCount, perPage int) int {
	if totalCount <= 0 || perPage <= 0 {
		return 0
	}
	return (totalCount + perPage - 1) / perPage
}

// PageWindow computes the windowed page list: a contiguous window of up to 5
// pages centered on current and clamped to [1, total], a leading link to
// page 1 when the window starts past it (with an ellipsis only when there is
// an actual gap), and symmetrically a trailing ellipsis and last-page link.
func PageWindow(current, total int) []PageLink {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - 2
	end := current + 2
	if start < 1 {
		end += 1 - start
		start = 1
	}
	if end > total {
		start -= end - total
		end = total
	}
	if start < 1 {
		start = 1
	}

	var links []PageLink
	if start > 1 {
		links = append(links, PageLink{Page: 1})
		if start > 2 {
			links = append(links, PageLink{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		links = append(links, PageLink{Page: p, Current: p == current})
	}
	if end < total {
		if end < total-1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Page: total})
	}
	return links
}
