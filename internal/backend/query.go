package backend

// Query is one term of a document listing: equality, ordering, paging
// or free-text search. The wire form mirrors the backend's JSON query
// encoding.
type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func Equal(attribute string, values ...any) Query {
	return Query{Method: "equal", Attribute: attribute, Values: values}
}

func OrderAsc(attribute string) Query {
	return Query{Method: "orderAsc", Attribute: attribute}
}

func OrderDesc(attribute string) Query {
	return Query{Method: "orderDesc", Attribute: attribute}
}

func Limit(n int) Query {
	return Query{Method: "limit", Values: []any{n}}
}

func CursorAfter(documentID string) Query {
	return Query{Method: "cursorAfter", Values: []any{documentID}}
}

func Search(attribute, term string) Query {
	return Query{Method: "search", Attribute: attribute, Values: []any{term}}
}
