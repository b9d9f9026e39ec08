package services

// The interview script is fixed at build time. Prompts advance one question
// per recorded response; any index past the end yields the closing statement.

var interviewQuestions = []string{
	"What type of electronics are you primarily looking for today?",
	"What's your budget range for this purchase?",
	"How will you primarily be using this device?",
	"Are there any specific features that are important to you?",
	"Do you have any brand preferences or requirements?",
}

const closingStatement = "Thank you for your responses. We're now generating your personalized recommendations. You'll receive them shortly on our website. Have a great day!"

// InterviewScript holds the ordered interview question list.
type InterviewScript struct {
	questions []string
	closing   string
}

// NewInterviewScript returns the standard electronics interview script.
func NewInterviewScript() *InterviewScript {
	return &InterviewScript{
		questions: interviewQuestions,
		closing:   closingStatement,
	}
}

// Prompt returns the prompt for the zero-based question index. done is true
// when the index is past the last question and the prompt is the closing
// statement.
func (s *InterviewScript) Prompt(index int) (string, bool) {
	if index < 0 || index >= len(s.questions) {
		return s.closing, true
	}
	return s.questions[index], false
}

// Len returns the number of interview questions.
func (s *InterviewScript) Len() int {
	return len(s.questions)
}
