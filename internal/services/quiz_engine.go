package services

import (
	"strings"

	mem "vigor/pkg/memcache"
	"vigor/pkg/utils"
)

// Engine drives a single quiz session through the fixed item sequence. It
// holds no per-session state itself; callers pass the TraversalState in and
// persist it through a QuizStateStore after every mutation.
type Engine struct {
	items []QuizItem
	byID  map[string]QuizItem
}

func NewEngine(items []QuizItem) *Engine {
	byID := make(map[string]QuizItem, len(items))
	for _, item := range items {
		byID[item.ID()] = item
	}
	return &Engine{items: items, byID: byID}
}

func (e *Engine) TotalSteps() int { return len(e.items) }

func (e *Engine) ItemAt(index int) QuizItem { return e.items[index] }

// Clamp repairs an out-of-range index restored from storage. Forward/backward
// movement elsewhere only ever steps by one, so this is the only place a
// random seek can appear.
func (e *Engine) Clamp(state *mem.TraversalState) {
	if state.CurrentIndex < 0 {
		state.CurrentIndex = 0
	}
	if state.CurrentIndex >= len(e.items) {
		state.CurrentIndex = len(e.items) - 1
	}
	if state.Answers == nil {
		state.Answers = make(map[string]interface{})
	}
}

// CanAdvanceItem reports whether the gate for one item is open. Info slides
// always pass. Non-required questions always pass. Required text and email
// questions need a non-empty trimmed string; every other required type needs
// a present, non-nil value.
func CanAdvanceItem(item QuizItem, answers map[string]interface{}) bool {
	if !item.IsQuestion() {
		return true
	}
	q := item.Question
	if !q.Required {
		return true
	}

	value, ok := answers[q.ID]
	if !ok || value == nil {
		return false
	}
	if q.Type == QuestionText || q.Type == QuestionEmail {
		s, ok := value.(string)
		return ok && strings.TrimSpace(s) != ""
	}
	return true
}

func (e *Engine) CanAdvance(state mem.TraversalState) bool {
	return CanAdvanceItem(e.items[state.CurrentIndex], state.Answers)
}

// Answer upserts one answer. Unknown ids are rejected; values for slider
// questions are kept numeric so scoring sees numbers, everything else is kept
// as sent.
func (e *Engine) Answer(state *mem.TraversalState, id string, value interface{}) error {
	item, ok := e.byID[id]
	if !ok || !item.IsQuestion() {
		return utils.ErrUnknownQuestion
	}
	state.Answers[id] = value
	return nil
}

// Advance moves one step forward. On the last item it does not move at all
// and reports atEnd=true so the caller can route to submission; everywhere
// else the gate must be open.
func (e *Engine) Advance(state *mem.TraversalState) (atEnd bool, err error) {
	if !e.CanAdvance(*state) {
		return false, utils.ErrAnswerRequired
	}
	if state.CurrentIndex == len(e.items)-1 {
		return true, nil
	}
	state.CurrentIndex++
	return false, nil
}

// Retreat moves one step back, never below zero.
func (e *Engine) Retreat(state *mem.TraversalState) {
	if state.CurrentIndex > 0 {
		state.CurrentIndex--
	}
}

func (e *Engine) ProgressPercent(state mem.TraversalState) float64 {
	return float64(state.CurrentIndex+1) / float64(len(e.items)) * 100
}

// AnsweredCount counts stored answers; it differs from the index because info
// slides never produce one.
func (e *Engine) AnsweredCount(state mem.TraversalState) int {
	return len(state.Answers)
}
