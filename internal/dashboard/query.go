package dashboard

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/baharkarakas/contact-manager/internal/models"
)

type SortKey string

const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(s)); k {
	case SortByName, SortByDate:
		return k, true
	}
	return "", false
}

func ParseOrder(s string) (Order, bool) {
	switch o := Order(strings.ToLower(s)); o {
	case Asc, Desc:
		return o, true
	}
	return "", false
}

// Query is the admin view state: search term plus sort selection.
type Query struct {
	Search string
	SortBy SortKey
	Order  Order
}

func DefaultQuery() Query {
	return Query{SortBy: SortByDate, Order: Desc}
}

// Toggle selects key. Selecting the active key flips the order; a new key
// starts ascending.
func (q Query) Toggle(key SortKey) Query {
	if q.SortBy == key {
		if q.Order == Asc {
			q.Order = Desc
		} else {
			q.Order = Asc
		}
		return q
	}
	q.SortBy = key
	q.Order = Asc
	return q
}

// Filter keeps contacts whose name or email contains term ignoring case, or
// whose phone contains term verbatim. An empty term keeps everything.
func Filter(contacts []models.Contact, term string) []models.Contact {
	out := make([]models.Contact, 0, len(contacts))
	if term == "" {
		return append(out, contacts...)
	}
	lower := strings.ToLower(term)
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), lower) ||
			strings.Contains(strings.ToLower(c.Email), lower) ||
			strings.Contains(c.Phone, term) {
			out = append(out, c)
		}
	}
	return out
}

// Sort returns a sorted copy. Names compare with English collation, dates by
// instant. Equal elements keep their input order in both directions.
func Sort(contacts []models.Contact, key SortKey, order Order) []models.Contact {
	out := slices.Clone(contacts)
	if out == nil {
		out = []models.Contact{}
	}

	var cmp func(a, b models.Contact) int
	switch key {
	case SortByName:
		col := collate.New(language.English)
		cmp = func(a, b models.Contact) int { return col.CompareString(a.Name, b.Name) }
	default:
		cmp = func(a, b models.Contact) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
	if order == Desc {
		asc := cmp
		cmp = func(a, b models.Contact) int { return -asc(a, b) }
	}

	slices.SortStableFunc(out, cmp)
	return out
}

// Apply is the visible list for q: filter, then sort. contacts is not modified.
func Apply(contacts []models.Contact, q Query) []models.Contact {
	return Sort(Filter(contacts, q.Search), q.SortBy, q.Order)
}
