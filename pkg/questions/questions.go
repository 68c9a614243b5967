// pkg/questions/questions.go
package questions

// Count is the fixed number of questions in the readiness check.
const Count = 10

// AdoptionOrder is the 1-based order of the question whose answer doubles as
// the adoption axis.
const AdoptionOrder = 4

// Question describes one slider question of the readiness check. Order is
// 1-based and fixed; answers are always collected in this order.
type Question struct {
	ID       string `json:"id"`
	Order    int    `json:"order"`
	Prompt   string `json:"prompt"`
	Category string `json:"category"`
}

var catalog = []Question{
	{ID: "q1", Order: 1, Prompt: "Leadership has a clear vision for how AI supports the business", Category: "Strategy"},
	{ID: "q2", Order: 2, Prompt: "Day-to-day work data is captured digitally and easy to access", Category: "Data"},
	{ID: "q3", Order: 3, Prompt: "Key business processes are documented and repeatable", Category: "Process"},
	{ID: "q4", Order: 4, Prompt: "AI tools are already used in everyday operations", Category: "Adoption"},
	{ID: "q5", Order: 5, Prompt: "Staff are comfortable trying new digital tools", Category: "People"},
	{ID: "q6", Order: 6, Prompt: "There is budget set aside for digital or AI initiatives", Category: "Strategy"},
	{ID: "q7", Order: 7, Prompt: "Data quality is reviewed and cleaned up regularly", Category: "Data"},
	{ID: "q8", Order: 8, Prompt: "Security and usage rules for external tools are in place", Category: "Governance"},
	{ID: "q9", Order: 9, Prompt: "Someone owns improvement of internal workflows", Category: "Process"},
	{ID: "q10", Order: 10, Prompt: "The team measures how long routine tasks take", Category: "People"},
}

// All returns the ten questions in wizard order.
func All() []Question {
	out := make([]Question, len(catalog))
	copy(out, catalog)
	return out
}

// ByOrder returns the question with the given 1-based order.
func ByOrder(order int) (Question, bool) {
	if order < 1 || order > Count {
		return Question{}, false
	}
	return catalog[order-1], true
}

// ByStep returns the question shown at the given 0-based wizard step.
func ByStep(step int) (Question, bool) {
	return ByOrder(step + 1)
}
