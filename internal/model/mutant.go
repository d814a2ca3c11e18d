package model

// MutantID identifies a mutant inside one project. It is the first field of
// both the kill log and the mutants log.
type MutantID string

// MutantRecord describes one seeded fault. Records are immutable once read
// from the mutation tool's logs.
type MutantRecord struct {
	ID                 MutantID
	SourceLine         int
	MutatorKind        string
	SourcePathAbsolute Path   // isolated copy under mutants/<id>/
	SourcePathRelative string // relative to the project's source class root
}

// InputArtifact is the generation-ready input prepared for one mutant.
type InputArtifact struct {
	MutantID         MutantID
	Dir              Path
	Input            Path
	IdentifierText   Path
	IdentifierTokens Path
}

// Backend names one generation backend, e.g. "gpt_conut_1".
type Backend string

// HypothesisFile is the ranked output of one backend for one mutant (or for a
// whole project in batched mode).
type HypothesisFile struct {
	MutantID MutantID
	Backend  Backend
	Path     Path
}
