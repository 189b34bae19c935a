// Package progress derives learner completion from parsed units and a
// snapshot of what the learner has done. It performs no I/O; hosts load and
// store snapshots themselves.
package progress

import (
	"errors"
	"fmt"
	"math"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-coursemd/internal/coursemd"
	"github.com/goliatone/go-coursemd/internal/logging"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

const textCodeAssessmentsMissing = "UNIT_ASSESSMENTS_MISSING"

// ErrAssessmentsMissing is returned by Tracker.MarkComplete when the unit still
// has outstanding assessments.
var ErrAssessmentsMissing = errors.New("progress: unit has outstanding assessments")

// Snapshot records what a learner has finished, keyed by UnitKey.
type Snapshot struct {
	Units map[string]bool `json:"units"`
	Self  map[string]bool `json:"self"`
	Tutor map[string]bool `json:"tutor"`
}

// NewSnapshot returns a snapshot with all maps allocated.
func NewSnapshot() Snapshot {
	return Snapshot{
		Units: map[string]bool{},
		Self:  map[string]bool{},
		Tutor: map[string]bool{},
	}
}

// UnitKey identifies a unit within a course.
func UnitKey(module, unit int) string {
	return fmt.Sprintf("%d-%d", module, unit)
}

func keyOf(unit interfaces.Unit) string {
	return UnitKey(unit.Module, unit.Unit)
}

// IsUnitComplete reports whether the unit is marked complete and, when it
// carries tutor-marked questions, the tutor assessment has been signed off.
// Self assessments gate marking a unit complete but not completion itself.
func IsUnitComplete(unit interfaces.Unit, snap Snapshot) bool {
	key := keyOf(unit)
	if !snap.Units[key] {
		return false
	}
	if unit.HasTutorMarked() {
		return snap.Tutor[key]
	}
	return true
}

// MissingAssessments lists the assessment kinds that must be finished before
// the unit may be marked complete, self before tutor.
func MissingAssessments(unit interfaces.Unit, snap Snapshot) []interfaces.AssessmentKind {
	key := keyOf(unit)
	var missing []interfaces.AssessmentKind
	if unit.HasSelfAssessment() && !snap.Self[key] {
		missing = append(missing, interfaces.AssessmentSelf)
	}
	if unit.HasTutorMarked() && !snap.Tutor[key] {
		missing = append(missing, interfaces.AssessmentTutor)
	}
	return missing
}

// ModuleProgress counts completed units within one module.
type ModuleProgress struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// Complete reports whether every unit of the module is complete.
func (m ModuleProgress) Complete() bool {
	return m.Total > 0 && m.Completed == m.Total
}

// Summary aggregates completion across a course.
type Summary struct {
	Modules        []ModuleProgress `json:"modules"`
	CompletedUnits int              `json:"completedUnits"`
	TotalUnits     int              `json:"totalUnits"`
	Percent        int              `json:"percent"`
	CourseComplete bool             `json:"courseComplete"`
}

// CompletedModules returns the numbers of fully completed modules.
func (s Summary) CompletedModules() []int {
	var out []int
	for _, m := range s.Modules {
		if m.Complete() {
			out = append(out, m.Number)
		}
	}
	return out
}

// Summarize computes per-module and course completion. Percent is rounded to
// the nearest whole number and is zero for a course without units.
func Summarize(units []interfaces.Unit, titles map[int]string, snap Snapshot) Summary {
	var summary Summary
	for _, group := range coursemd.GroupModules(units, titles) {
		mp := ModuleProgress{Number: group.Number, Title: group.Title, Total: len(group.Units)}
		for _, unit := range group.Units {
			if IsUnitComplete(unit, snap) {
				mp.Completed++
			}
		}
		summary.Modules = append(summary.Modules, mp)
		summary.CompletedUnits += mp.Completed
		summary.TotalUnits += mp.Total
	}
	if summary.TotalUnits > 0 {
		summary.Percent = int(math.Round(float64(summary.CompletedUnits) * 100 / float64(summary.TotalUnits)))
		summary.CourseComplete = summary.CompletedUnits == summary.TotalUnits
	}
	return summary
}

// Tracker applies learner actions to a snapshot.
type Tracker struct {
	logger interfaces.Logger
}

// NewTracker builds a tracker. A nil logger falls back to the no-op logger.
func NewTracker(logger interfaces.Logger) *Tracker {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Tracker{logger: logger}
}

// MarkComplete records the unit as complete. It refuses while assessments are
// outstanding, returning ErrAssessmentsMissing wrapped with the missing kinds.
func (t *Tracker) MarkComplete(snap Snapshot, unit interfaces.Unit) (Snapshot, error) {
	key := keyOf(unit)
	if missing := MissingAssessments(unit, snap); len(missing) > 0 {
		t.logger.Warn("progress.unit.blocked", "unit", key, "missing", missing)
		err := fmt.Errorf("%w: unit %s requires %v", ErrAssessmentsMissing, key, missing)
		return snap, goerrors.Wrap(err, goerrors.CategoryValidation, "unit cannot be marked complete").
			WithTextCode(textCodeAssessmentsMissing)
	}
	next := snap.clone()
	next.Units[key] = true
	t.logger.Info("progress.unit.completed", "unit", key)
	return next, nil
}

// RecordAssessment marks an assessment kind done for the unit.
func (t *Tracker) RecordAssessment(snap Snapshot, unit interfaces.Unit, kind interfaces.AssessmentKind) Snapshot {
	key := keyOf(unit)
	next := snap.clone()
	switch kind {
	case interfaces.AssessmentSelf:
		next.Self[key] = true
	case interfaces.AssessmentTutor:
		next.Tutor[key] = true
	default:
		t.logger.Warn("progress.assessment.unknown_kind", "unit", key, "kind", string(kind))
		return snap
	}
	t.logger.Debug("progress.assessment.recorded", "unit", key, "kind", string(kind))
	return next
}

func (s Snapshot) clone() Snapshot {
	out := NewSnapshot()
	for k, v := range s.Units {
		out.Units[k] = v
	}
	for k, v := range s.Self {
		out.Self[k] = v
	}
	for k, v := range s.Tutor {
		out.Tutor[k] = v
	}
	return out
}
