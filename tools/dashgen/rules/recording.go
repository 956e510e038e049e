package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "rsc-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "rsc-recording",
					Rules: []Rule{
						{
							Record: "rsc:client_requests:rate5m",
							Expr:   `sum by (route) (rate(rsc_client_requests_total[5m]))`,
						},
						{
							Record: "rsc:client_errors:rate5m",
							Expr:   `sum by (kind) (rate(rsc_client_errors_total[5m]))`,
						},
						{
							Record: "rsc:batch_chunks:rate5m",
							Expr:   `sum(rate(rsc_batch_chunks_total[5m]))`,
						},
						{
							Record: "rsc:batch_identifiers:rate5m",
							Expr:   `sum(rate(rsc_batch_identifiers_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
