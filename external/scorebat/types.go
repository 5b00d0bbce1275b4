package scorebat

// feedEnvelope is either {"response": [...]} or {"error": ...}.
type feedEnvelope struct {
	Response *[]feedItem `json:"response"`
	Error    any         `json:"error"`
}

type feedItem struct {
	Title          string      `json:"title"`
	Competition    string      `json:"competition"`
	CompetitionURL string      `json:"competitionUrl"`
	Thumbnail      string      `json:"thumbnail"`
	Date           string      `json:"date"`
	MatchStatus    string      `json:"matchstatus"`
	Videos         []feedVideo `json:"videos"`
}

type feedVideo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Embed string `json:"embed"`
}
