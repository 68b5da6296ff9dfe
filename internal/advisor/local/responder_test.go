package local_test

import (
	"context"
	"testing"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponder_KeywordMatching(t *testing.T) {
	r := local.New(0, 0)
	ctx := context.Background()

	tests := []struct {
		name     string
		question string
		keyword  string
	}{
		{"yield keyword", "How can I increase my YIELD this season?", "yield"},
		{"weather keyword", "will the weather hold for harvest", "weather"},
		{"soil keyword", "my soil looks dry", "soil"},
		{"pest keyword", "pest attack on cotton", "pest"},
		{"irrigation keyword", "best irrigation for rice", "irrigation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := r.Answer(ctx, advisor.Request{Question: tt.question, Language: "en"})
			require.NoError(t, err)

			expected, ok := local.AnswerFor(tt.keyword, "en")
			require.True(t, ok)
			assert.Equal(t, expected, resp.Text)
		})
	}
}

func TestResponder_GenericAnswer(t *testing.T) {
	r := local.New(0, 0)

	resp, err := r.Answer(context.Background(), advisor.Request{Question: "hello there", Language: "en"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "more detail")
}

func TestResponder_Localized(t *testing.T) {
	r := local.New(0, 0)

	resp, err := r.Answer(context.Background(), advisor.Request{Question: "soil health", Language: "hi"})
	require.NoError(t, err)

	expected, _ := local.AnswerFor("soil", "hi")
	assert.Equal(t, expected, resp.Text)
}

func TestResponder_DelayBounds(t *testing.T) {
	r := local.New(30*time.Millisecond, 60*time.Millisecond)

	start := time.Now()
	_, err := r.Answer(context.Background(), advisor.Request{Question: "yield"})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestResponder_CancelledDuringDelay(t *testing.T) {
	r := local.New(5*time.Second, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Answer(ctx, advisor.Request{Question: "yield"})
	assert.Error(t, err)
}
