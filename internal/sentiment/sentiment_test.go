package sentiment

import "testing"

func TestNormalize_TokenFamilies(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Sentiment
	}{
		{"positive", Positive},
		{"POSITIVE", Positive},
		{"Pozitif", Positive},
		{"LABEL_1", Positive},
		{"5 stars, very positive", Positive},
		{"negative", Negative},
		{"Negatif", Negative},
		{"NEG", Negative},
		{"label_0", Negative},
		{"neutral", Neutral},
		{"Nötr", Neutral},
		{"notr", Neutral},
		{"", Unknown},
		{"   ", Unknown},
		{"happy", Unknown},
		{"label_2", Unknown},
		{"sarcastic", Unknown},
	}

	for _, tc := range cases {
		if got := Normalize(tc.raw); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalize_OrderingPositiveBeforeNegative(t *testing.T) {
	t.Parallel()

	// A label containing tokens from two families resolves to the first
	// family in match order.
	if got := Normalize("positive-negative mix"); got != Positive {
		t.Fatalf("expected Positive for mixed label, got %q", got)
	}
}

func TestClampScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  float64
		want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{-0.1, 0},
		{1.1, 0},
		{42, 0},
	}

	for _, tc := range cases {
		if got := ClampScore(tc.raw); got != tc.want {
			t.Fatalf("ClampScore(%v) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
