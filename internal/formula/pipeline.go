package formula

import (
	"go.uber.org/zap"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/obs"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

// Pass is one CNF pipeline transformation: given a formula, produce a
// semantically-equivalent one (under universal closure) and report
// whether it changed. Modeled directly on the teacher's
// internal/ir.OptimizationPass (Name/Apply/Description), generalized
// from "program, bool changed" to "formula, bool changed".
type Pass interface {
	Name() string
	Description() string
	Apply(bank *term.Bank, sg *sig.Signature, f TF) (TF, bool)
}

type simplifyPass struct{}

func (simplifyPass) Name() string        { return "simplify" }
func (simplifyPass) Description() string { return "rewrite catalogue: idempotence, identities, vacuous quantification" }
func (simplifyPass) Apply(bank *term.Bank, _ *sig.Signature, f TF) (TF, bool) {
	return Simplify(bank, f)
}

type nnfPass struct{}

func (nnfPass) Name() string        { return "nnf" }
func (nnfPass) Description() string { return "push negation to the leaves, eliminate →/↔/⊕" }
func (nnfPass) Apply(bank *term.Bank, _ *sig.Signature, f TF) (TF, bool) {
	r := NNF(bank, f, true)
	return r, r != f
}

type miniscopePass struct{}

func (miniscopePass) Name() string        { return "miniscope" }
func (miniscopePass) Description() string { return "push quantifiers past connectives that don't need them" }
func (miniscopePass) Apply(bank *term.Bank, _ *sig.Signature, f TF) (TF, bool) {
	r := Miniscope(bank, f)
	return r, r != f
}

type renamePass struct{}

func (renamePass) Name() string        { return "rename" }
func (renamePass) Description() string { return "give every bound variable a globally fresh identity" }
func (renamePass) Apply(bank *term.Bank, _ *sig.Signature, f TF) (TF, bool) {
	r := Rename(bank, f)
	return r, true
}

type skolemizePass struct{}

func (skolemizePass) Name() string        { return "skolemize" }
func (skolemizePass) Description() string { return "eliminate existentials via fresh Skolem terms" }
func (skolemizePass) Apply(bank *term.Bank, sg *sig.Signature, f TF) (TF, bool) {
	r := Skolemize(bank, sg, f)
	return r, r != f
}

type prenexPass struct{}

func (prenexPass) Name() string        { return "prenex" }
func (prenexPass) Description() string { return "lift all ∀ to the front" }
func (prenexPass) Apply(bank *term.Bank, _ *sig.Signature, f TF) (TF, bool) {
	r := Prenex(bank, f)
	return r, r != f
}

type distributePass struct{}

func (distributePass) Name() string        { return "distribute" }
func (distributePass) Description() string { return "distribute ∨ over ∧ until the matrix is conjunctive" }
func (distributePass) Apply(bank *term.Bank, _ *sig.Signature, f TF) (TF, bool) {
	prefix, matrix := prenexRec(bank, f)
	matrix = Distribute(bank, matrix)
	result := matrix
	for i := len(prefix) - 1; i >= 0; i-- {
		result = All(prefix[i], result, bank)
	}
	return result, result != f
}

// Pipeline runs a fixed ordered sequence of passes, logging each changed
// step, mirroring the teacher's OptimizationPipeline.Run driver loop.
type Pipeline struct {
	passes []Pass
	log    *zap.Logger
}

// StandardPipeline returns the fixed CNF-prefix pipeline spec.md §4.2
// specifies, in order: simplify, NNF, miniscope, rename, skolemize,
// prenex, distribute. Clause extraction is a separate final step (it
// emits clauses into a set rather than returning a formula) and is not
// itself a Pass.
func StandardPipeline(log *zap.Logger) *Pipeline {
	if log == nil {
		log = obs.Nop()
	}
	return &Pipeline{
		log: log,
		passes: []Pass{
			simplifyPass{}, nnfPass{}, miniscopePass{}, renamePass{},
			skolemizePass{}, prenexPass{}, distributePass{},
		},
	}
}

// AddPass appends an additional pass to the end of the pipeline, for
// callers building a non-standard variant.
func (p *Pipeline) AddPass(ps Pass) { p.passes = append(p.passes, ps) }

// Run drives f through every pass in order.
func (p *Pipeline) Run(bank *term.Bank, sg *sig.Signature, f TF) TF {
	for _, ps := range p.passes {
		next, changed := ps.Apply(bank, sg, f)
		if changed {
			p.log.Debug("cnf pass changed formula", zap.String("pass", ps.Name()))
		}
		f = next
	}
	return f
}

// CNFAll runs the standard pipeline over every formula in fs and
// extracts the resulting clauses into target, inheriting each formula's
// role (spec.md §6's cnf_all(formula_set, target_clause_set, term_bank,
// fresh_vars) external interface).
func CNFAll(bank *term.Bank, sg *sig.Signature, fs *Set, target *clause.Set, ids *clause.IDGen) {
	pipeline := StandardPipeline(nil)
	for _, wf := range fs.formulas {
		cnf := pipeline.Run(bank, sg, wf.TF)
		ExtractClauses(bank, cnf, wf.Role, ids, target)
	}
}
