// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only metrics the importer exports.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/ebay-catalog-importer/tools/dashgen/rules"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses one PromQL expression and checks its metric references.
// Histogram series (_bucket, _sum, _count) resolve to their base name.
func Expr(where, expr string, known map[string]bool) Result {
	var r Result

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("%s: invalid PromQL %q: %v", where, expr, err))
		return r
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		name := vs.Name
		if name == "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: selector without metric name in %q", where, expr))
			return nil
		}
		if !known[baseName(name)] {
			r.Errors = append(r.Errors, fmt.Sprintf("%s: unknown metric %q", where, name))
		}
		return nil
	})

	return r
}

func baseName(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base
		}
	}
	return name
}

// Dashboard validates every query target of a built dashboard. It walks
// the dashboard's JSON form so it does not depend on the SDK's panel types.
func Dashboard(dash any, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("encoding dashboard: %v", err))
		return r
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return r
	}

	exprs := map[string]string{}
	collectExprs(tree, "", exprs)
	if len(exprs) == 0 {
		r.Warnings = append(r.Warnings, "dashboard has no query targets")
	}

	keys := make([]string, 0, len(exprs))
	for k := range exprs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, where := range keys {
		r.merge(Expr(where, exprs[where], known))
	}
	return r
}

// collectExprs records each target expression keyed by its panel title and
// ref id.
func collectExprs(node any, panel string, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		if title, ok := v["title"].(string); ok {
			panel = title
		}
		if expr, ok := v["expr"].(string); ok {
			ref, _ := v["refId"].(string)
			out[panel+"/"+ref] = expr
		}
		for _, child := range v {
			collectExprs(child, panel, out)
		}
	case []any:
		for _, child := range v {
			collectExprs(child, panel, out)
		}
	}
}

// Rules validates every expression in a PrometheusRule. Recording rule
// names are added to known so later rules may reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			where := g.Name + "/" + rule.Alert + rule.Record
			if rule.Record != "" {
				known[rule.Record] = true
			}
			r.merge(Expr(where, rule.Expr, known))
		}
	}
	return r
}
