package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// RocketSource API consumers.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "rsc-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "rsc-alerts",
					Rules: []Rule{
						{
							Alert: "RscHighErrorRate",
							Expr:  `sum(rsc:client_errors:rate5m) / sum(rsc:client_requests:rate5m) > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High RocketSource API error rate",
								"description": "More than 5% of RocketSource API requests have failed over the last 5 minutes.",
							},
						},
						{
							Alert: "RscAuthFailures",
							Expr:  `sum(increase(rsc_client_errors_total{kind=~"authentication|authorization"}[5m])) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "RocketSource API key rejected",
								"description": "Requests are failing with 401 or 403. The API key may be revoked or lack the required plan.",
							},
						},
						{
							Alert: "RscRateLimited",
							Expr:  `sum(increase(rsc_client_errors_total{kind="rate_limit"}[5m])) > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "RocketSource API rate limit reached",
								"description": "Requests have been rejected with 429 for more than 5 minutes. Lower batch.per_second.",
							},
						},
						{
							Alert: "RscServerErrors",
							Expr:  `sum(rsc:client_errors:rate5m{kind="server"}) > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "RocketSource API returning server errors",
								"description": "5xx responses are occurring at more than 0.1/s for the last 5 minutes.",
							},
						},
						{
							Alert: "RscSlowRequests",
							Expr:  `histogram_quantile(0.95, sum(rate(rsc_client_request_duration_seconds_bucket[5m])) by (le)) > 10`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "RocketSource API latency is high",
								"description": "The p95 request duration has been above 10s for 10 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
