package sentiment

import "strings"

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
	Unknown  Sentiment = "unknown"
)

// Token families matched against raw classifier labels. Order matters:
// families are tried positive, negative, neutral, and the first hit wins.
// Keep these lists in one place; every label the backend ever stores goes
// through Normalize.
var (
	positiveTokens = []string{"positive", "pozitif", "pos", "label_1"}
	negativeTokens = []string{"negative", "negatif", "neg", "label_0"}
	neutralTokens  = []string{"neutral", "nötr", "notr"}
)

// Normalize maps an arbitrary external label onto the canonical vocabulary.
// Matching is case-insensitive and substring-based.
func Normalize(rawLabel string) Sentiment {
	label := strings.ToLower(strings.TrimSpace(rawLabel))
	if label == "" {
		return Unknown
	}

	for _, tok := range positiveTokens {
		if strings.Contains(label, tok) {
			return Positive
		}
	}
	for _, tok := range negativeTokens {
		if strings.Contains(label, tok) {
			return Negative
		}
	}
	for _, tok := range neutralTokens {
		if strings.Contains(label, tok) {
			return Neutral
		}
	}
	return Unknown
}

// ClampScore passes a confidence through unchanged when it is in [0,1] and
// collapses anything else to 0.
func ClampScore(raw float64) float64 {
	if raw < 0 || raw > 1 {
		return 0
	}
	return raw
}
