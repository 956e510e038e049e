// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/rocketsource-go/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings are
// reported only.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Grafana interval macros are not PromQL; they are substituted before parsing.
var grafanaMacros = strings.NewReplacer(
	"$__rate_interval", "5m",
	"$__interval", "1m",
	"$__range", "1h",
)

// Expr parses expr and checks every selector against known.
func Expr(where, expr string, known map[string]bool) Result {
	var r Result
	if strings.TrimSpace(expr) == "" {
		r.errorf("%s: empty expression", where)
		return r
	}

	node, err := parser.ParseExpr(grafanaMacros.Replace(expr))
	if err != nil {
		r.errorf("%s: parsing %q: %v", where, expr, err)
		return r
	}

	selectors := 0
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		selectors++
		if vs.Name == "" {
			r.warnf("%s: selector without a metric name in %q", where, expr)
			return nil
		}
		if !known[vs.Name] {
			r.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
	if selectors == 0 {
		r.warnf("%s: expression %q selects no series", where, expr)
	}
	return r
}

// panelJSON is the subset of the dashboard model the validator walks.
type panelJSON struct {
	Title   string `json:"title"`
	Targets []struct {
		Expr  string `json:"expr"`
		RefID string `json:"refId"`
	} `json:"targets"`
	Panels []panelJSON `json:"panels"`
}

// Dashboard validates every query target in dash, including panels nested
// in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.errorf("marshaling dashboard: %v", err)
		return r
	}
	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		r.errorf("decoding dashboard: %v", err)
		return r
	}

	var walk func([]panelJSON)
	walk = func(ps []panelJSON) {
		for _, p := range ps {
			for _, t := range p.Targets {
				r.merge(Expr(fmt.Sprintf("panel %q target %s", p.Title, t.RefID), t.Expr, known))
			}
			walk(p.Panels)
		}
	}
	walk(doc.Panels)
	return r
}

// Rules validates a PrometheusRule CR. Names recorded by earlier rules count
// as known for later ones.
func Rules(pr rules.PrometheusRule, known map[string]bool) Result {
	var r Result

	seen := maps.Clone(known)
	if seen == nil {
		seen = map[string]bool{}
	}

	for _, g := range pr.Spec.Groups {
		for i, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			if name == "" {
				r.errorf("group %s rule %d: neither record nor alert is set", g.Name, i)
				continue
			}
			r.merge(Expr(fmt.Sprintf("group %s rule %s", g.Name, name), rule.Expr, seen))
			if rule.Record != "" {
				seen[rule.Record] = true
			}
		}
	}
	return r
}
