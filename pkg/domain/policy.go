package domain

import "fmt"

// RemovalPolicy selects how orphaned Single neighbors are chosen for deletion.
type RemovalPolicy string

const (
	// PolicyGateway keeps Single neighbors that lead to an Engaged node two
	// steps away or diagonally adjacent. This is the default.
	PolicyGateway RemovalPolicy = "gateway"

	// PolicyDirect deletes every Single cardinal neighbor of the removed node.
	// Kept for compatibility with diagrams built against the older behavior.
	PolicyDirect RemovalPolicy = "direct"
)

// ParseRemovalPolicy validates a policy name. An empty name selects PolicyGateway.
func ParseRemovalPolicy(s string) (RemovalPolicy, error) {
	switch RemovalPolicy(s) {
	case "", PolicyGateway:
		return PolicyGateway, nil
	case PolicyDirect:
		return PolicyDirect, nil
	}
	return "", fmt.Errorf("unknown removal policy %q", s)
}
