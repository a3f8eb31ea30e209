package progress

// Thresholds are the milestone percentages in ascending order.
var Thresholds = []int{25, 50, 75, 100}

var milestoneMessages = map[int]string{
	25:  "You're off to a great start!",
	50:  "Halfway there! Keep going.",
	75:  "Almost done! Your profile is looking strong.",
	100: "Perfect! Your profile is complete.",
}

// Milestone is a crossed threshold and its celebratory message.
type Milestone struct {
	Threshold int    `json:"threshold"`
	Message   string `json:"message"`
}

// Tracker remembers the last observed progress value.
type Tracker struct {
	previous int
}

// NewTracker starts tracking from initial.
func NewTracker(initial int) *Tracker {
	return &Tracker{previous: initial}
}

// Previous returns the last observed value.
func (t *Tracker) Previous() int {
	return t.previous
}

// Observe records current and returns the milestone crossed since the last
// call. When one update crosses several thresholds only the lowest is
// reported.
func (t *Tracker) Observe(current int) (Milestone, bool) {
	prev := t.previous
	t.previous = current
	return Crossed(prev, current)
}

// Crossed returns the first ascending threshold with prev < threshold <= current.
func Crossed(prev, current int) (Milestone, bool) {
	for _, th := range Thresholds {
		if prev < th && current >= th {
			return Milestone{Threshold: th, Message: milestoneMessages[th]}, true
		}
	}
	return Milestone{}, false
}
