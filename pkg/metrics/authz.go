package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuthzMetrics counts authorization decisions and approval workflow transitions.
type AuthzMetrics struct {
	decisions   *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewAuthzMetrics registers the authorization metrics on the provided registerer.
func NewAuthzMetrics(reg prometheus.Registerer) *AuthzMetrics {
	if reg == nil {
		return &AuthzMetrics{}
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authz_decisions_total",
		Help: "Authorization decisions by check and outcome.",
	}, []string{"check", "outcome"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "approval_transitions_total",
		Help: "Approval state transitions applied to societies and memberships.",
	}, []string{"entity", "to"})
	reg.MustRegister(decisions, transitions)
	return &AuthzMetrics{
		decisions:   decisions,
		transitions: transitions,
	}
}

// Allow records a granted decision for the named check.
func (m *AuthzMetrics) Allow(check string) {
	m.decision(check, "allow")
}

// Deny records a rejected decision; outcome is the error code returned.
func (m *AuthzMetrics) Deny(check, outcome string) {
	m.decision(check, outcome)
}

func (m *AuthzMetrics) decision(check, outcome string) {
	if m == nil || m.decisions == nil {
		return
	}
	m.decisions.WithLabelValues(normalizeLabel(check), normalizeLabel(outcome)).Inc()
}

// Transition records a state change such as membership pending -> approved.
func (m *AuthzMetrics) Transition(entity, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(entity), normalizeLabel(to)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
