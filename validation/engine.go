package validation

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/liamcoop/churn/catalog"
)

// costLimit bounds a single rule evaluation
const costLimit = 1000000

// RuleEngine holds compiled business rules. It is built once and only read
// afterwards, so it is safe for concurrent use.
type RuleEngine struct {
	env   *cel.Env
	rules []compiledRule
}

type compiledRule struct {
	rule    Rule
	check   cel.Program
	message cel.Program
}

// CreateCELEnvFromCatalog declares one typed CEL variable per catalog field
func CreateCELEnvFromCatalog(cat *catalog.Catalog) (*cel.Env, error) {
	var opts []cel.EnvOption

	for _, f := range cat.Fields() {
		opts = append(opts, cel.Variable(f.Name, celType(f)))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return env, nil
}

func celType(f catalog.FieldSpec) *cel.Type {
	switch {
	case f.Kind == catalog.KindChoice:
		return cel.StringType
	case f.Integer():
		return cel.IntType
	default:
		return cel.DoubleType
	}
}

// NewRuleEngine compiles every rule against the catalog's environment
func NewRuleEngine(cat *catalog.Catalog, rules ...Rule) (*RuleEngine, error) {
	env, err := CreateCELEnvFromCatalog(cat)
	if err != nil {
		return nil, err
	}

	en := &RuleEngine{env: env}
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule %q has no ID", r.Name)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("rule with ID %s already exists", r.ID)
		}
		seen[r.ID] = true

		cr, err := en.compileRule(r)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.ID, err)
		}
		en.rules = append(en.rules, cr)
	}

	return en, nil
}

func (en *RuleEngine) compileRule(r Rule) (compiledRule, error) {
	check, err := en.compile(r.Expression, cel.BoolType)
	if err != nil {
		return compiledRule{}, fmt.Errorf("expression: %w", err)
	}

	msg := r.Message
	if msg == "" {
		msg = fmt.Sprintf("%q", r.Name)
	}
	message, err := en.compile(msg, cel.StringType)
	if err != nil {
		return compiledRule{}, fmt.Errorf("message: %w", err)
	}

	return compiledRule{rule: r, check: check, message: message}, nil
}

// compile type-checks expression and requires the given output type
func (en *RuleEngine) compile(expression string, out *cel.Type) (cel.Program, error) {
	ast, issues := en.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(out) {
		return nil, fmt.Errorf("expression must evaluate to %s, got %s", out, ast.OutputType())
	}

	prog, err := en.env.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}
	return prog, nil
}

// Rules returns the compiled rules in evaluation order
func (en *RuleEngine) Rules() []Rule {
	out := make([]Rule, len(en.rules))
	for i, cr := range en.rules {
		out[i] = cr.rule
	}
	return out
}

// Evaluate runs every rule against a record whose fields already passed their
// own checks. A failing rule yields a violation; an evaluation error is
// returned as an error.
func (en *RuleEngine) Evaluate(rec Record) ([]Violation, error) {
	vars := map[string]any(rec)

	var violations []Violation
	for _, cr := range en.rules {
		out, _, err := cr.check.Eval(vars)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", cr.rule.ID, err)
		}
		ok, isBool := out.Value().(bool)
		if !isBool {
			return nil, fmt.Errorf("rule %s: non-boolean result %v", cr.rule.ID, out.Value())
		}
		if ok {
			continue
		}

		msg, _, err := cr.message.Eval(vars)
		if err != nil {
			return nil, fmt.Errorf("rule %s message: %w", cr.rule.ID, err)
		}
		text, _ := msg.Value().(string)
		violations = append(violations, Violation{
			Kind:    CrossFieldConsistency,
			Rule:    cr.rule.ID,
			Message: text,
		})
	}

	return violations, nil
}
