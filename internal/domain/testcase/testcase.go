package testcase

// FailedResponse replaces the AI response of a case whose chat call failed.
const FailedResponse = "error occurred"

// TestCase is one scripted question with its reference answer.
type TestCase struct {
	Question      string   `json:"question" yaml:"question"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer"`
	Keywords      []string `json:"keywords" yaml:"keywords"`
}

// Outcome is the scored result of asking one TestCase.
type Outcome struct {
	Question        string `json:"question"`
	AIResponse      string `json:"ai_response"`
	TextSimilarity  int    `json:"text_similarity"`
	KeywordCoverage int    `json:"keyword_coverage"`
	Error           bool   `json:"error"`
}

// NewOutcome records a successful answer with its two scores.
func NewOutcome(tc TestCase, response string, similarity, coverage int) Outcome {
	return Outcome{
		Question:        tc.Question,
		AIResponse:      response,
		TextSimilarity:  clamp(similarity),
		KeywordCoverage: clamp(coverage),
	}
}

// FailedOutcome records a case whose chat call did not complete.
func FailedOutcome(tc TestCase) Outcome {
	return Outcome{
		Question:   tc.Question,
		AIResponse: FailedResponse,
		Error:      true,
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
