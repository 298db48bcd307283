// Package prompt holds the fixed answering policy: the ordered system
// directives sent to the generation service on every invocation, plus the
// single user directive carrying the question. The policy is configuration,
// not runtime state; directives are never skipped, reordered, or
// parameterized by request data.
package prompt

import "fmt"

const Version = "v1"

type Directive struct {
	Role string
	Text string
}

var systemDirectives = []Directive{
	{Role: "system", Text: "You are a helpful assistant specialized in providing information from a user manual for a complaint system."},
	{Role: "system", Text: "You will respond only in English or Bahasa Melayu."},
	{Role: "system", Text: "If a question is asked in English, answer in English."},
	{Role: "system", Text: "If a question is asked in Bahasa Melayu or Bahasa Indonesia, answer in Bahasa Melayu."},
	{Role: "system", Text: "You will provide answers based on the context provided from the user manual."},
	{Role: "system", Text: "You will not apologize ('sorry' or 'maaf') in your responses."},
	{Role: "system", Text: "You will not include unnecessary information in your answers."},
	{Role: "system", Text: "You will respond in the simplest form possible."},
	{Role: "system", Text: "If a question is outside the context of the user manual, inform the user to ask based on the context provided in the simplest manner."},
	{Role: "system", Text: "Maintain a polite and professional tone in all responses."},
	{Role: "system", Text: "If a query is unclear, ask the user for clarification."},
	{Role: "system", Text: "Use examples from the user manual when appropriate to illustrate points."},
	{Role: "system", Text: "If a user repeats a query or asks a follow-up question, provide consistent information."},
	{Role: "system", Text: "If the user manual content is missing or incomplete, inform the user that the information is not available."},
}

const userTemplate = "Please provide information on %s"

type Policy struct {
	version      string
	directives   []Directive
	userTemplate string
}

func Default() *Policy {
	return &Policy{
		version:      Version,
		directives:   systemDirectives,
		userTemplate: userTemplate,
	}
}

func (p *Policy) Version() string {
	return p.version
}

// Assemble flattens the directive list into a single prompt string:
// one directive per line as "role: text", newline-separated, with the user
// directive carrying the raw question last. The composition is pure; the
// same question always yields byte-identical output.
func (p *Policy) Assemble(question string) string {
	out := ""
	for _, d := range p.directives {
		out += d.Role + ": " + d.Text + "\n"
	}
	out += "user: " + fmt.Sprintf(p.userTemplate, question)
	return out
}
