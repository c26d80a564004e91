package scraper

// RenderResult is the rendered-page snapshot handed to the extraction engine.
type RenderResult struct {
	// HTML is the fully rendered page markup.
	HTML string

	// Title is the document title as the browser saw it.
	Title string

	// StatusCode is the HTTP status of the navigation, 0 when unknown.
	StatusCode int

	// FinalURL is the URL after redirects; image URLs resolve against it.
	FinalURL string

	// FetchMethod records how the page was fetched: "browser" or "http".
	FetchMethod string
}
