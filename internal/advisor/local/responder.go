// Package local is the network-independent fallback responder: a fixed
// keyword-matched answer set over the farming domain, delayed by a
// random interval to read like asynchronous processing.
package local

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor"
)

type cannedAnswer struct {
	keyword string
	en      string
	hi      string
}

// First matching keyword wins; order is part of the contract.
var answers = []cannedAnswer{
	{
		keyword: "yield",
		en:      "Crop yield depends on soil health, seed quality, irrigation and weather. Share your crop and region and I can suggest ways to improve your expected yield.",
		hi:      "फसल की उपज मिट्टी के स्वास्थ्य, बीज की गुणवत्ता, सिंचाई और मौसम पर निर्भर करती है। अपनी फसल और क्षेत्र बताएं, मैं उपज बढ़ाने के उपाय सुझा सकता हूं।",
	},
	{
		keyword: "weather",
		en:      "Weather strongly affects sowing and harvest timing. Check the forecast before irrigation or spraying, and avoid fertilizer application right before heavy rain.",
		hi:      "मौसम बुवाई और कटाई के समय को प्रभावित करता है। सिंचाई या छिड़काव से पहले पूर्वानुमान देखें, और भारी बारिश से ठीक पहले उर्वरक न डालें।",
	},
	{
		keyword: "soil",
		en:      "Healthy soil needs balanced nutrients and organic matter. A soil test every season tells you the right fertilizer dose and whether pH correction is needed.",
		hi:      "स्वस्थ मिट्टी के लिए संतुलित पोषक तत्व और जैविक पदार्थ जरूरी हैं। हर मौसम में मिट्टी की जांच कराएं ताकि सही उर्वरक मात्रा और pH सुधार की जानकारी मिले।",
	},
	{
		keyword: "pest",
		en:      "For pest problems, first identify the pest before spraying. Integrated pest management with neem-based treatment and crop rotation reduces chemical use.",
		hi:      "कीट की समस्या में छिड़काव से पहले कीट की पहचान करें। नीम आधारित उपचार और फसल चक्र के साथ एकीकृत कीट प्रबंधन रसायनों का उपयोग घटाता है।",
	},
	{
		keyword: "irrigation",
		en:      "Irrigation should match the crop stage: light frequent watering for seedlings, deeper intervals near maturity. Drip systems save water and improve uptake.",
		hi:      "सिंचाई फसल की अवस्था के अनुसार करें: पौध के लिए हल्की और बार-बार, पकने के समय गहरी और अंतराल पर। ड्रिप प्रणाली पानी बचाती है।",
	},
}

const (
	genericEN = "Could you share more detail about your crop, region or the problem you are seeing? That helps me give a more specific answer."
	genericHI = "कृपया अपनी फसल, क्षेत्र या समस्या के बारे में और जानकारी दें। इससे मैं अधिक सटीक उत्तर दे पाऊंगा।"
)

// Responder implements advisor.Provider without any network dependency
type Responder struct {
	minDelay time.Duration
	maxDelay time.Duration
}

// New creates a responder with the given simulated processing delay
// bounds. Tests pass near-zero delays.
func New(minDelay, maxDelay time.Duration) *Responder {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Responder{minDelay: minDelay, maxDelay: maxDelay}
}

// Name returns the provider identifier
func (r *Responder) Name() string {
	return "local"
}

// IsConfigured always reports true; the responder has no setup
func (r *Responder) IsConfigured() bool {
	return true
}

// Answer returns the first keyword-matched canned answer, or a generic
// prompt for more detail, after the simulated delay.
func (r *Responder) Answer(ctx context.Context, req advisor.Request) (*advisor.Response, error) {
	start := time.Now()

	if err := r.sleep(ctx); err != nil {
		return nil, err
	}

	lowered := strings.ToLower(req.Question)
	text := generic(req.Language)
	for _, a := range answers {
		if strings.Contains(lowered, a.keyword) {
			text = a.localized(req.Language)
			break
		}
	}

	return &advisor.Response{
		Text:      text,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

func (r *Responder) sleep(ctx context.Context) error {
	delay := r.minDelay
	if span := r.maxDelay - r.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span) + 1))
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a cannedAnswer) localized(language string) string {
	if language == "hi" {
		return a.hi
	}
	return a.en
}

func generic(language string) string {
	if language == "hi" {
		return genericHI
	}
	return genericEN
}

// AnswerFor exposes the canned answer for a keyword, used by tests and
// by the analytics topic labels.
func AnswerFor(keyword, language string) (string, bool) {
	for _, a := range answers {
		if a.keyword == keyword {
			return a.localized(language), true
		}
	}
	return "", false
}
