// Package ddl executes the DDL statements the compiler parses: CREATE/DROP
// TABLE, CREATE/DROP/REFRESH VIEW, and the user/database administration
// statements, directly against a catalog.SysCatalog. It bypasses the
// planner entirely, matching spec.md §2's "DDL bypasses the planner and
// hits the catalog directly" data flow.
package ddl

import (
	"github.com/heavyql/analyzer"
	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/compiler"
)

// Executor runs DDL statements against a system catalog on behalf of a
// session. Grounded on planner/create.go's catalog-facing planner shape,
// collapsed to a single pass since DDL execution here has no logical-plan
// / bytecode split to make (unlike the teacher's DML path through the vm
// package) — every statement commits directly to the catalog or fails.
type Executor struct {
	Catalog catalog.SysCatalog
	Session catalog.Session
}

// NewExecutor returns an Executor bound to the given catalog and session.
func NewExecutor(cat catalog.SysCatalog, session catalog.Session) *Executor {
	return &Executor{Catalog: cat, Session: session}
}

// Execute dispatches stmt to the right DDL handler. Anything that isn't a
// DDL statement is an InternalError: the caller is responsible for routing
// DML through analyzer.Analyze instead.
func (e *Executor) Execute(stmt compiler.Stmt) error {
	switch s := stmt.(type) {
	case *compiler.CreateTableStmt:
		return e.createTable(s)
	case *compiler.DropTableStmt:
		return e.dropTable(s)
	case *compiler.CreateViewStmt:
		return e.createView(s)
	case *compiler.DropViewStmt:
		return e.dropView(s)
	case *compiler.RefreshViewStmt:
		return e.refreshView(s)
	case *compiler.CreateUserStmt:
		return e.createUser(s)
	case *compiler.AlterUserStmt:
		return e.alterUser(s)
	case *compiler.DropUserStmt:
		return e.dropUser(s)
	case *compiler.CreateDBStmt:
		return e.createDatabase(s)
	case *compiler.DropDBStmt:
		return e.dropDatabase(s)
	}
	return analyzer.InternalErrorf("%T is not a DDL statement the ddl executor handles", stmt)
}

// requireSystemDB gates user/database mutations on the session being
// connected to the system database (spec.md §4.3, "Users & databases").
func (e *Executor) requireSystemDB() error {
	if !e.Session.IsSystemDB() {
		return analyzer.PermissionErrorf("must be connected to %q to modify users or databases", catalog.SystemDBName)
	}
	return nil
}
