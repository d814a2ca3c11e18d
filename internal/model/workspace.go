package model

import "strconv"

// Workspace resolves every artifact path of one project inside the working
// directory, <workspace>/<Name>-mutants.
type Workspace struct {
	Dir Path
}

// NewWorkspace returns the layout for project inside root.
func NewWorkspace(root Path, project string) Workspace {
	return Workspace{Dir: root.Join(project + "-mutants")}
}

// MutantDir is the isolated working directory of one mutant.
func (w Workspace) MutantDir(id MutantID) Path {
	return w.Dir.Join(string(id))
}

// Artifact returns the generation input paths for a mutant.
func (w Workspace) Artifact(id MutantID) InputArtifact {
	return inputArtifact(id, w.MutantDir(id))
}

// AllIn returns the concatenated input of batched mode.
func (w Workspace) AllIn() InputArtifact {
	return inputArtifact("", w.Dir.Join("allin"))
}

// AllInManifest lists the mutant ids of the batched input, one per line, in
// input order.
func (w Workspace) AllInManifest() Path {
	return w.Dir.Join("allin", "mutants.txt")
}

func inputArtifact(id MutantID, dir Path) InputArtifact {
	return InputArtifact{
		MutantID:         id,
		Dir:              dir,
		Input:            dir.Join("input.txt"),
		IdentifierText:   dir.Join("identifier.txt"),
		IdentifierTokens: dir.Join("identifier.tokens"),
	}
}

// Hypotheses is the output of backend inside an artifact directory.
func Hypotheses(dir Path, backend Backend) Path {
	return dir.Join(string(backend) + ".txt")
}

// Merged is the corpus-wide stream of one backend.
func (w Workspace) Merged(backend Backend) Path {
	return Hypotheses(w.Dir, backend)
}

// MergeManifest lists merged mutant ids in ordinal order.
func (w Workspace) MergeManifest() Path {
	return w.Dir.Join("merged_mutants.txt")
}

// Meta is the metadata table consumed by the reranker.
func (w Workspace) Meta() Path {
	return w.Dir.Join("meta.txt")
}

// Reranked is the reranked-patches checkpoint.
func (w Workspace) Reranked() Path {
	return w.Dir.Join("reranked_patches.json")
}

// PoolDir holds one numbered directory per compiled candidate.
func (w Workspace) PoolDir() Path {
	return w.Dir.Join("patches-pool")
}

// PoolEntryDir is the directory of pool id.
func (w Workspace) PoolEntryDir(id int) Path {
	return w.PoolDir().Join(strconv.Itoa(id))
}

// RecoveredDir holds the recovered candidate lists.
func (w Workspace) RecoveredDir() Path {
	return w.Dir.Join("recovered")
}

// Recovered is the candidate list of one mutant.
func (w Workspace) Recovered(id MutantID) Path {
	return w.RecoveredDir().Join(string(id) + ".txt")
}

// JournalDir is the validation journal database.
func (w Workspace) JournalDir() Path {
	return w.Dir.Join("journal")
}

// LogFile is the per-project log.
func (w Workspace) LogFile() Path {
	return w.Dir.Join("mutfix.log")
}
