package subm

// Verdict is the closed set of judging outcomes, shared by per-test
// results and the aggregate submission status.
type Verdict string

const (
	VerdictAccepted          Verdict = "accepted"
	VerdictWrongAnswer       Verdict = "wrong_answer"
	VerdictTimeLimitExceeded Verdict = "time_limit_exceeded"
	VerdictCompilationError  Verdict = "compilation_error"
	VerdictRuntimeError      Verdict = "runtime_error"
	VerdictJudgeError        Verdict = "judge_error"
)

// transient stages exposed while a submission moves through the judge
const (
	StageInQueue  = "in_queue"
	StageTesting  = "testing"
	StageFinished = "finished"
)

func (v Verdict) Valid() bool {
	switch v {
	case VerdictAccepted, VerdictWrongAnswer, VerdictTimeLimitExceeded,
		VerdictCompilationError, VerdictRuntimeError, VerdictJudgeError:
		return true
	}
	return false
}

// IsErrorClass reports whether the verdict signals a fault rather than
// an incorrect answer. Error-class verdicts outrank wrong-answer and
// time-limit verdicts when aggregating.
func (v Verdict) IsErrorClass() bool {
	switch v {
	case VerdictCompilationError, VerdictRuntimeError, VerdictJudgeError:
		return true
	}
	return false
}

// Aggregate derives the submission verdict from the ordered per-test
// results. The verdict is accepted iff every case passed; otherwise the
// earliest failing attempted case decides, with an error-class verdict
// on an earlier case preempting a later wrong-answer or time-limit one.
func Aggregate(results []TestResult) Verdict {
	if len(results) == 0 {
		return VerdictJudgeError
	}
	allPassed := true
	for _, r := range results {
		if !r.Passed {
			allPassed = false
			break
		}
	}
	if allPassed {
		return VerdictAccepted
	}
	for _, r := range results {
		if r.Passed {
			continue
		}
		if !r.Attempted {
			// not attempted means an earlier case short-circuited;
			// keep scanning for the verdict that caused it
			continue
		}
		return r.Verdict
	}
	// every failing case was unattempted: the compile step failed
	return VerdictCompilationError
}
