package render

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"prompt-template-store/internal/domain/model"
)

// TokenEstimator counts tokens of rendered prompts so users can judge
// how much of a model's context a prompt will consume. Estimation is
// best-effort: a missing encoding degrades to zero, never an error.
type TokenEstimator struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
}

const encodingName = "cl100k_base"

func NewTokenEstimator() *TokenEstimator { return &TokenEstimator{} }

func (e *TokenEstimator) Estimate(prompt string) int {
	e.once.Do(func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err == nil {
			e.enc = enc
		}
	})
	if e.enc == nil {
		return 0
	}
	return len(e.enc.Encode(prompt, nil, nil))
}

// RenderWithTokens renders and attaches the token estimate. A nil
// estimator yields Tokens=0.
func RenderWithTokens(t *model.Template, values model.FieldValues, est *TokenEstimator) Result {
	prompt := Render(t, values)
	tokens := 0
	if est != nil {
		tokens = est.Estimate(prompt)
	}
	return Result{Prompt: prompt, Tokens: tokens}
}
