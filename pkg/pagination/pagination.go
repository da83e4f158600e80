package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many items any listing can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Limit  int
	Offset int
}

// FromRequest reads limit and offset query parameters, tolerating
// missing or malformed values.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	return Normalize(Params{Limit: limit, Offset: offset})
}

// Normalize enforces the configured default and maximum limits.
func Normalize(p Params) Params {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Window clamps the page bounds to the collection size. HasMore is true
// when items remain past the window.
func Window(total int, p Params) (start, end int, hasMore bool) {
	p = Normalize(p)
	if p.Offset >= total {
		return total, total, false
	}
	start = p.Offset
	end = start + p.Limit
	if end > total {
		end = total
	}
	return start, end, end < total
}
