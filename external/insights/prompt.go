package insights

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/goalquest/internal/domain/prediction"
)

// RenderPrompt builds the analyst prompt sent alongside the structured input.
func RenderPrompt(req prediction.Request) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(parts ...string) {
		for _, part := range parts {
			_, _ = buf.WriteString(part)
		}
		_ = buf.WriteByte('\n')
	}

	line("You are an AI football analyst providing pre-match insights for upcoming games.")
	line()
	line("Analyze the provided data, including past results and team statistics, to predict the outcome of the match.")
	line("Provide a confidence level for your prediction, and suggest a potential bet.")
	line()
	line("Team 1: ", req.Team1Name)
	line("Team 2: ", req.Team2Name)
	line("Match Date: ", req.MatchDate)
	line("League: ", req.LeagueName)
	line("Past Results: ", req.PastResults)
	line("Team 1 Stats: ", req.Team1Stats)
	line("Team 2 Stats: ", req.Team2Stats)
	line()
	line("Format your response as:")
	line("Prediction: [predicted outcome]")
	line("Confidence: [0-100]")
	line("Suggested Bet: [suggested bet]")
	line("Reasoning: [reasoning]")

	return buf.String()
}

type resultBody struct {
	Prediction   string `json:"prediction"`
	Confidence   any    `json:"confidence"`
	SuggestedBet string `json:"suggestedBet"`
	Reasoning    string `json:"reasoning"`
}

// ParseResult accepts either a JSON object or the labelled text format.
func ParseResult(raw []byte) (prediction.Result, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return prediction.Result{}, crerr.New("insights response is empty")
	}

	var result prediction.Result
	if strings.HasPrefix(text, "{") {
		var body resultBody
		if err := sonic.UnmarshalString(text, &body); err != nil {
			return prediction.Result{}, crerr.Wrap(err, "decode insights response")
		}
		result = prediction.Result{
			Prediction:   strings.TrimSpace(body.Prediction),
			Confidence:   confidenceValue(body.Confidence),
			SuggestedBet: strings.TrimSpace(body.SuggestedBet),
			Reasoning:    strings.TrimSpace(body.Reasoning),
		}
	} else {
		result = parseLabelled(text)
	}

	if result.Prediction == "" {
		return prediction.Result{}, crerr.New("insights response has no prediction")
	}
	result.Confidence = prediction.ClampConfidence(result.Confidence)
	return result, nil
}

// parseLabelled reads "Label: value" lines. Unlabelled lines continue the
// previous field, so multi-line reasoning survives.
func parseLabelled(text string) prediction.Result {
	var (
		result  prediction.Result
		current *string
		conf    string
	)
	for _, rawLine := range strings.Split(text, "\n") {
		lineText := strings.TrimSpace(rawLine)
		label, value, found := strings.Cut(lineText, ":")
		if found {
			switch strings.ToLower(strings.TrimSpace(label)) {
			case "prediction":
				current = &result.Prediction
			case "confidence":
				current = &conf
			case "suggested bet":
				current = &result.SuggestedBet
			case "reasoning":
				current = &result.Reasoning
			default:
				found = false
			}
			if found {
				*current = strings.TrimSpace(value)
				continue
			}
		}
		if current != nil && lineText != "" {
			if *current != "" {
				*current += " "
			}
			*current += lineText
		}
	}
	result.Confidence = confidenceValue(conf)
	return result
}

func confidenceValue(v any) int {
	switch typed := v.(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case string:
		digits := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(typed), "%"))
		if n, err := strconv.ParseFloat(digits, 64); err == nil {
			return int(n)
		}
	}
	return 0
}
