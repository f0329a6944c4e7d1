package judge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/develevate/backend/contest"
	"github.com/develevate/backend/logger"
	"github.com/develevate/backend/subm"
	"github.com/google/uuid"
)

// SubmissionUpdate is the event published to a contest room when a
// submission finishes judging.
type SubmissionUpdate struct {
	ContestID uuid.UUID
	UserUUID  uuid.UUID
	ProblemID string
	Status    subm.Verdict
	Timestamp time.Time
}

// Publisher delivers submission updates to contest viewers.
// Delivery is best-effort; a failure never affects the judged result.
type Publisher interface {
	PublishSubmissionUpdate(upd SubmissionUpdate) error
}

// ArtifactStore archives captured output of judged submissions.
// s3bucket.S3Bucket implements it.
type ArtifactStore interface {
	Upload(content []byte, key string, mediaType string) (string, error)
}

// JudgeSrvc evaluates submissions against a problem's test cases and
// persists the result. Each submission is judged sequentially across
// its cases in its own execution workspace.
type JudgeSrvc struct {
	langs       []Language
	runner      Runner
	submRepo    subm.Repo
	contestRepo contest.Repo
	publisher   Publisher     // optional
	artifacts   ArtifactStore // optional
}

func NewJudgeSrvc(
	langs []Language,
	runner Runner,
	submRepo subm.Repo,
	contestRepo contest.Repo,
	publisher Publisher,
	artifacts ArtifactStore,
) *JudgeSrvc {
	return &JudgeSrvc{
		langs:       langs,
		runner:      runner,
		submRepo:    submRepo,
		contestRepo: contestRepo,
		publisher:   publisher,
		artifacts:   artifacts,
	}
}

func (j *JudgeSrvc) Languages() []Language {
	return j.langs
}

type SubmitParams struct {
	UserUUID  uuid.UUID
	ContestID uuid.UUID
	ProblemID string
	Code      string
	Language  string
}

// Submit validates the submission, judges it to completion and persists
// the result. Once judging starts it is not cancelled by the caller
// abandoning the request.
func (j *JudgeSrvc) Submit(ctx context.Context, p SubmitParams) (subm.Submission, error) {
	if strings.TrimSpace(p.Code) == "" {
		return subm.Submission{}, subm.ErrEmptySourceCode()
	}
	lang := FindLanguage(j.langs, p.Language)
	if lang == nil {
		return subm.Submission{}, subm.ErrInvalidLanguage(p.Language)
	}

	c, err := j.contestRepo.Get(ctx, p.ContestID)
	if err != nil {
		return subm.Submission{}, err
	}
	if !c.AcceptsSubmissions(time.Now()) {
		return subm.Submission{}, subm.ErrOutsideContestWindow()
	}
	problem := c.Problem(p.ProblemID)
	if problem == nil {
		return subm.Submission{}, contest.ErrProblemNotFound(p.ProblemID)
	}
	if len(problem.Tests) == 0 {
		return subm.Submission{}, subm.ErrNoTestCases()
	}

	s := subm.Submission{
		UUID:      uuid.New(),
		UserUUID:  p.UserUUID,
		ContestID: p.ContestID,
		ProblemID: p.ProblemID,
		Code:      p.Code,
		Language:  p.Language,
		Stage:     subm.StageTesting,
		CreatedAt: time.Now(),
	}

	// judging and persistence run to completion even when the client
	// abandons the request
	ctx = context.WithoutCancel(ctx)
	ctx = logger.WithSubmission(ctx, s.UUID.String())
	log := logger.FromContext(ctx)

	failedBefore, err := j.submRepo.CountFailedAttempts(ctx, p.UserUUID, p.ContestID, p.ProblemID, s.CreatedAt)
	if err != nil {
		return subm.Submission{}, fmt.Errorf("failed to count prior attempts: %w", err)
	}

	s.Results = j.evaluate(ctx, *lang, p.Code, *problem)
	s.Verdict = subm.Aggregate(s.Results)
	s.Stage = subm.StageFinished
	s.PenaltyMin = failedBefore * subm.PenaltyPerFailedAttemptMin
	if s.Verdict == subm.VerdictAccepted {
		s.Points = problem.Points
	}
	judgedAt := time.Now()
	s.JudgedAt = &judgedAt

	if err := j.submRepo.Store(ctx, s); err != nil {
		return subm.Submission{}, fmt.Errorf("failed to store submission: %w", err)
	}

	if err := j.contestRepo.BumpProblemCounters(ctx, p.ContestID, p.ProblemID, s.Accepted()); err != nil {
		// the submission itself is already durable
		log.Error("failed to bump problem counters", "error", err)
	}

	j.archiveOutputs(s, log)

	if j.publisher != nil {
		err := j.publisher.PublishSubmissionUpdate(SubmissionUpdate{
			ContestID: s.ContestID,
			UserUUID:  s.UserUUID,
			ProblemID: s.ProblemID,
			Status:    s.Verdict,
			Timestamp: judgedAt,
		})
		if err != nil {
			log.Warn("failed to broadcast submission update", "error", err)
		}
	}

	log.Info("submission judged",
		"verdict", s.Verdict, "points", s.Points, "tests", len(s.Results))
	return s, nil
}

// evaluate runs the submission against every test case in order. A
// compile failure short-circuits: every case is recorded unattempted. A
// fault on one case never stops the remaining ones.
func (j *JudgeSrvc) evaluate(ctx context.Context, lang Language, code string, problem contest.Problem) []subm.TestResult {
	log := logger.FromContext(ctx)

	results := make([]subm.TestResult, len(problem.Tests))
	for i, tc := range problem.Tests {
		results[i] = subm.TestResult{
			Input:    tc.Input,
			Expected: tc.Expected,
		}
	}

	exec, compile, err := j.runner.Prepare(ctx, lang, code)
	if err != nil {
		log.Error("runner failed to prepare submission", "error", err)
		for i := range results {
			results[i].Attempted = true
			results[i].Verdict = subm.VerdictJudgeError
		}
		return results
	}
	if !compile.Ok {
		// cases stay unattempted but still carry a verdict from the
		// closed set; Aggregate reads this as a compilation error
		log.Info("compilation failed")
		for i := range results {
			results[i].Verdict = subm.VerdictCompilationError
		}
		return results
	}
	defer exec.Close()

	cpuLim := problem.CpuLimMsOrDefault()
	memLim := problem.MemLimKiBOrDefault()

	for i, tc := range problem.Tests {
		run, err := exec.Run(ctx, tc.Input, cpuLim, memLim)
		if err != nil {
			log.Error("runner failed on test case", "test", i+1, "error", err)
			results[i].Attempted = true
			results[i].Verdict = subm.VerdictJudgeError
			continue
		}

		results[i].Attempted = true
		results[i].Actual = run.Stdout
		results[i].CpuMs = run.CpuMs
		results[i].MemKiB = run.MemKiB

		switch {
		case run.TimedOut:
			results[i].Verdict = subm.VerdictTimeLimitExceeded
		case run.ExitCode != 0:
			results[i].Verdict = subm.VerdictRuntimeError
		case memLim > 0 && run.MemKiB > int64(memLim):
			// the verdict set has no memory class; an overrun reads as
			// a runtime error
			results[i].Verdict = subm.VerdictRuntimeError
		case outputsMatch(run.Stdout, tc.Expected):
			results[i].Verdict = subm.VerdictAccepted
			results[i].Passed = true
		default:
			results[i].Verdict = subm.VerdictWrongAnswer
		}
	}

	return results
}

func (j *JudgeSrvc) archiveOutputs(s subm.Submission, log *slog.Logger) {
	if j.artifacts == nil {
		return
	}
	var sb strings.Builder
	for i, r := range s.Results {
		fmt.Fprintf(&sb, "=== test %d: %s ===\n", i+1, r.Verdict)
		if r.Attempted {
			sb.WriteString(r.Actual)
			sb.WriteString("\n")
		}
	}
	key := fmt.Sprintf("submissions/%s/output.txt", s.UUID)
	if _, err := j.artifacts.Upload([]byte(sb.String()), key, "text/plain"); err != nil {
		log.Warn("failed to archive submission outputs", "error", err)
	}
}

// outputsMatch compares program output to the expected output ignoring
// trailing whitespace on each line and trailing blank lines.
func outputsMatch(actual, expected string) bool {
	return normalizeOutput(actual) == normalizeOutput(expected)
}

func normalizeOutput(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	joined := strings.Join(lines, "\n")
	return strings.TrimRight(joined, "\n")
}
