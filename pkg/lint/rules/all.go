// Package rules registers the full rule catalog. Import it for its side
// effects:
//
//	import _ "github.com/leapstack-labs/sqlint/pkg/lint/rules"
package rules

import (
	_ "github.com/leapstack-labs/sqlint/pkg/lint/rules/structure" // structure rules
)
