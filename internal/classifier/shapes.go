package classifier

import "encoding/json"

// The classifier endpoint has returned several different JSON shapes over
// time depending on the hosted model and platform version. Each shape gets
// its own matcher; parseResponse tries them in a fixed order and the first
// match wins. New provider shapes are handled by appending a matcher here,
// not by branching inside the client.
type shapeMatcher func(body []byte) (label string, score float64, ok bool)

var shapeMatchers = []shapeMatcher{
	matchFlatArray,
	matchNestedArray,
	matchDataObject,
}

func parseResponse(body []byte) (string, float64, bool) {
	for _, match := range shapeMatchers {
		if label, score, ok := match(body); ok {
			return label, score, true
		}
	}
	return "", 0, false
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// best picks the highest-score candidate from a non-empty slice.
func best(candidates []labelScore) (string, float64, bool) {
	top := -1
	for i, c := range candidates {
		if c.Label == "" {
			continue
		}
		if top < 0 || c.Score > candidates[top].Score {
			top = i
		}
	}
	if top < 0 {
		return "", 0, false
	}
	return candidates[top].Label, candidates[top].Score, true
}

// matchFlatArray handles [{"label":"positive","score":0.9}, ...].
func matchFlatArray(body []byte) (string, float64, bool) {
	var candidates []labelScore
	if err := json.Unmarshal(body, &candidates); err != nil || len(candidates) == 0 {
		return "", 0, false
	}
	return best(candidates)
}

// matchNestedArray handles [[{"label":"positive","score":0.9}, ...]].
func matchNestedArray(body []byte) (string, float64, bool) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err != nil || len(nested) == 0 || len(nested[0]) == 0 {
		return "", 0, false
	}
	return best(nested[0])
}

// matchDataObject handles {"data": ["positive", 0.87, ...]}: the first two
// elements of the data array are the label and the score.
func matchDataObject(body []byte) (string, float64, bool) {
	var wrapper struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil || len(wrapper.Data) < 2 {
		return "", 0, false
	}

	var label string
	if err := json.Unmarshal(wrapper.Data[0], &label); err != nil || label == "" {
		return "", 0, false
	}
	var score float64
	if err := json.Unmarshal(wrapper.Data[1], &score); err != nil {
		return "", 0, false
	}
	return label, score, true
}
