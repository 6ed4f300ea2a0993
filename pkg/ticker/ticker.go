package ticker

// Kind marks where a fragment of text came from.
type Kind string

const (
	KindTitle   Kind = "title"
	KindBody    Kind = "body"
	KindComment Kind = "comment"
)

// Fragment is one piece of free text pulled from a post or comment.
type Fragment struct {
	Text   string
	PostID string
	Kind   Kind
}

// Mention is one ranked entry: a symbol and how many times it was counted.
type Mention struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}
