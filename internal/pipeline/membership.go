// internal/pipeline/membership.go
package pipeline

import "hibf-hashing/internal/hibf"

// Membership is the minimal capability a search worker needs. Each worker
// owns one; implementations need not be safe for concurrent use.
type Membership interface {
	MembershipFor(values []uint64, threshold int) []int
}

// Compile-time check: the filter agent satisfies the contract.
var _ Membership = (*hibf.Agent)(nil)

// AgentSource hands out one Membership per worker.
type AgentSource func() Membership

// FilterAgents adapts a filter to an AgentSource.
func FilterAgents(f *hibf.Filter) AgentSource {
	return func() Membership { return f.MembershipAgent() }
}
