package reddit

// Post is one submission pulled from a subreddit listing. Body is plain text:
// rendered HTML bodies are flattened before they leave this package.
type Post struct {
	ID    string
	Title string
	Body  string
}

// tokenResponse is the OAuth2 app-only grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

// listing mirrors Reddit's Listing envelope. The same child shape covers both
// submissions and comments; unused fields stay empty.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []child `json:"children"`
	} `json:"data"`
}

type child struct {
	Kind string    `json:"kind"`
	Data childData `json:"data"`
}

type childData struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Selftext     string `json:"selftext"`
	SelftextHTML string `json:"selftext_html"`
	Body         string `json:"body"`
	BodyHTML     string `json:"body_html"`
}
