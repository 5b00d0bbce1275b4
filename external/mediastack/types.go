package mediastack

// newsEnvelope is either {"pagination":...,"data":[...]} or {"error":{...}}.
type newsEnvelope struct {
	Data  *[]articleRow `json:"data"`
	Error *apiError     `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type articleRow struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
	PublishedAt string `json:"published_at"`
}
