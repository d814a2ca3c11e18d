package model

import "time"

// ConcretePatch is a detokenized source statement derived from one tokenized
// patch and one choice of literal substitution.
type ConcretePatch struct {
	Text       string
	Tokenized  string
	Score      float64
	PatchIndex int // index of the tokenized patch inside its reranked entry
	Index      int // index among the statements reconstructed from that patch
}

// ValidationStatus represents the outcome of compiling one candidate.
type ValidationStatus int

const (
	// Compiled indicates the build tool exited with status zero.
	Compiled ValidationStatus = iota
	// Failed indicates the build tool exited with a non-zero status.
	Failed
	// Skipped indicates the candidate was not attempted (duplicate, journaled or budget).
	Skipped
)

func (s ValidationStatus) String() string {
	switch s {
	case Compiled:
		return "compiled"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ValidationOutcome records what happened to one candidate. PoolID is set only
// for compiled candidates.
type ValidationOutcome struct {
	MutantID  MutantID
	Key       string
	Candidate ConcretePatch
	Status    ValidationStatus
	PoolID    *int
}

// Compiled reports whether the candidate built successfully.
func (o ValidationOutcome) Compiled() bool {
	return o.Status == Compiled
}

// PoolEntry is the metadata stored next to the artifacts of one pooled
// candidate (candidate.json).
type PoolEntry struct {
	ID         int      `json:"id"`
	MutantID   MutantID `json:"mutant_id"`
	Key        string   `json:"key"`
	Line       int      `json:"line"`
	Candidate  string   `json:"candidate"`
	Tokenized  string   `json:"tokenized"`
	Score      float64  `json:"score"`
	SourceFile string   `json:"source_file"`
	ClassFile  string   `json:"class_file"`
	RunID      string   `json:"run_id,omitempty"`
}

// AuditCounts aggregates correctness results for one project or mutator kind.
type AuditCounts struct {
	Mutants    int `json:"mutants" yaml:"mutants"`
	Candidates int `json:"candidates" yaml:"candidates"`
	Fixed      int `json:"fixed" yaml:"fixed"`
}

// Add folds other into c.
func (c *AuditCounts) Add(other AuditCounts) {
	c.Mutants += other.Mutants
	c.Candidates += other.Candidates
	c.Fixed += other.Fixed
}

// FixRate is the share of mutants with at least one exact fix.
func (c AuditCounts) FixRate() float64 {
	if c.Mutants == 0 {
		return 0
	}

	return float64(c.Fixed) / float64(c.Mutants)
}

// MutantAudit is the verdict for a single mutant.
type MutantAudit struct {
	Project     string   `json:"project" yaml:"project"`
	MutantID    MutantID `json:"mutant_id" yaml:"mutant_id"`
	MutatorKind string   `json:"mutator_kind" yaml:"mutator_kind"`
	GroundTruth string   `json:"ground_truth" yaml:"ground_truth"`
	Candidates  int      `json:"candidates" yaml:"candidates"`
	Fixed       bool     `json:"fixed" yaml:"fixed"`
	MatchedBy   string   `json:"matched_by,omitempty" yaml:"matched_by,omitempty"`
}

// AuditReport is the aggregated output of the correctness auditor.
type AuditReport struct {
	Mutants    []MutantAudit          `json:"mutants" yaml:"mutants"`
	PerProject map[string]AuditCounts `json:"per_project" yaml:"per_project"`
	PerMutator map[string]AuditCounts `json:"per_mutator" yaml:"per_mutator"`
	Total      AuditCounts            `json:"total" yaml:"total"`
}

// NewAuditReport returns an empty report ready for aggregation.
func NewAuditReport() *AuditReport {
	return &AuditReport{
		PerProject: map[string]AuditCounts{},
		PerMutator: map[string]AuditCounts{},
	}
}

// Record adds one mutant verdict to every aggregate.
func (r *AuditReport) Record(audit MutantAudit) {
	counts := AuditCounts{Mutants: 1, Candidates: audit.Candidates}
	if audit.Fixed {
		counts.Fixed = 1
	}

	r.Mutants = append(r.Mutants, audit)

	project := r.PerProject[audit.Project]
	project.Add(counts)
	r.PerProject[audit.Project] = project

	mutator := r.PerMutator[audit.MutatorKind]
	mutator.Add(counts)
	r.PerMutator[audit.MutatorKind] = mutator

	r.Total.Add(counts)
}

// Merge folds another report into r.
func (r *AuditReport) Merge(other *AuditReport) {
	for _, audit := range other.Mutants {
		r.Record(audit)
	}
}

// ValidationSummary aggregates the outcomes of one validation run.
type ValidationSummary struct {
	Project   string
	Mutants   int
	Attempted int
	Compiled  int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

// Add counts one outcome.
func (s *ValidationSummary) Add(outcome ValidationOutcome) {
	switch outcome.Status {
	case Compiled:
		s.Attempted++
		s.Compiled++
	case Failed:
		s.Attempted++
		s.Failed++
	case Skipped:
		s.Skipped++
	}
}
