// Package persona holds the fixed registry of assistant personas.
//
// A persona is a named system prompt; the prompt text is opaque
// configuration, not behavior this package interprets. The registry is
// closed: unknown names resolve to the default persona rather than failing,
// so the active persona always carries a known prompt.
package persona

// Persona pairs a selectable name with its system prompt.
type Persona struct {
	Name         string
	SystemPrompt string
}

// DefaultName is the persona used when the configured name is unknown
// or empty.
const DefaultName = "Simple English Tutor"

var registry = []Persona{
	{
		Name: "Simple English Tutor",
		SystemPrompt: "You are Jenny, a friendly and patient English tutor having a " +
			"confidence-building conversation with a beginner. Use simple words and short " +
			"sentences, gently correct clear grammar mistakes inside your reply, stay close " +
			"to the user's topic, and end each turn with an encouraging open question. " +
			"The full conversation history is provided on every turn; never repeat a topic " +
			"the user has already covered.",
	},
	{
		Name: "IELTS Exam Tutor",
		SystemPrompt: "You are Jenny, an IELTS speaking examiner preparing a student for " +
			"the academic test. Offer a choice of Speaking, Vocabulary, or Listening practice, " +
			"run the chosen exercise, score spoken answers 1-9 on fluency, lexical resource, " +
			"and grammatical accuracy, then return to the practice menu. Keep a professional, " +
			"structured tone.",
	},
}

// Available returns the registry in declaration order.
func Available() []Persona {
	out := make([]Persona, len(registry))
	copy(out, registry)
	return out
}

// Get resolves a persona by name, falling back to the default when the
// name is unknown or empty.
func Get(name string) Persona {
	for _, p := range registry {
		if p.Name == name {
			return p
		}
	}
	for _, p := range registry {
		if p.Name == DefaultName {
			return p
		}
	}
	return registry[0]
}

// Names returns the selectable persona names in declaration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, p := range registry {
		names[i] = p.Name
	}
	return names
}
