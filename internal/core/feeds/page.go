package feeds

import (
	"strconv"

	"Quill/internal/core/posts"
)

// DefaultPageSize is the number of posts per feed page unless
// configured otherwise.
const DefaultPageSize = 10

// Page is one window of a feed plus the metadata a caller needs to
// render pagination controls.
type Page struct {
	Posts      []*posts.Post `json:"posts"`
	Number     int           `json:"number"`
	Size       int           `json:"size"`
	TotalPosts int           `json:"totalPosts"`
	TotalPages int           `json:"totalPages"`
	HasNext    bool          `json:"hasNext"`
	HasPrev    bool          `json:"hasPrev"`
}

// PrevNumber is the preceding page number, for pagination links
func (p *Page) PrevNumber() int { return p.Number - 1 }

// NextNumber is the following page number, for pagination links
func (p *Page) NextNumber() int { return p.Number + 1 }

// ParsePageParam turns a raw ?page= query value into a page number.
// Missing, non-numeric, zero or negative values all yield page 1; a bad
// page parameter is never an error the caller sees.
func ParsePageParam(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// totalPages computes ceil(total/size), with a minimum of one page so
// an empty feed still renders page 1.
func totalPages(total, size int) int {
	if total <= 0 {
		return 1
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// clampPage bounds a requested page number to [1, totalPages].
// Requests past the end land on the last page rather than erroring.
func clampPage(number, totalPages int) int {
	if number < 1 {
		return 1
	}
	if number > totalPages {
		return totalPages
	}
	return number
}
