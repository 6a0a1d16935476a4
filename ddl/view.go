package ddl

import (
	"github.com/sirupsen/logrus"

	"github.com/heavyql/analyzer"
	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/compiler"
)

func (e *Executor) createView(s *compiler.CreateViewStmt) error {
	if _, exists := e.Catalog.GetMetadataForTable(s.ViewName); exists {
		if s.IfNotExists {
			logrus.WithField("view", s.ViewName).Warn("ddl: CREATE VIEW IF NOT EXISTS is a no-op, view already exists")
			return nil
		}
		return analyzer.ExistsErrorf("view %q already exists", s.ViewName)
	}

	aq, err := analyzer.Analyze(e.Catalog, s.Query)
	if err != nil {
		return err
	}
	if len(s.ColNames) > 0 {
		if len(s.ColNames) != len(aq.TargetList) {
			return analyzer.ArgErrorf("view %q has %d columns but %d names were given", s.ViewName, len(aq.TargetList), len(s.ColNames))
		}
		for i, name := range s.ColNames {
			aq.TargetList[i].ResName = name
		}
	}
	for _, te := range aq.TargetList {
		if te.ResName == "" {
			return analyzer.ArgErrorf("every view column must have a name; add an AS alias")
		}
	}

	storage, err := storageOptionOrDefault(s.StorageOption)
	if err != nil {
		return err
	}
	refresh, err := refreshOptionFromString(s.RefreshOption)
	if err != nil {
		return err
	}

	cols := make([]catalog.ColumnDescriptor, len(aq.TargetList))
	for i, te := range aq.TargetList {
		cols[i] = catalog.ColumnDescriptor{
			ColumnName: te.ResName,
			ColumnType: te.Expr.GetTypeInfo(),
		}
	}

	td := catalog.TableDescriptor{
		TableName:      s.ViewName,
		IsView:         true,
		IsMaterialized: s.Materialized,
		ViewSQL:        compiler.SelectStmtToString(s.Query),
		CheckOption:    s.CheckOption,
		StorageOption:  storage,
		RefreshOption:  refresh,
		FragType:       catalog.FragInsertOrder,
		// A materialized view's rows are not populated until REFRESH; a
		// plain view has nothing to populate and is ready immediately.
		IsReady: !s.Materialized,
	}
	return e.Catalog.CreateTable(td, cols)
}

func (e *Executor) dropView(s *compiler.DropViewStmt) error {
	td, exists := e.Catalog.GetMetadataForTable(s.ViewName)
	if !exists {
		if s.IfExists {
			logrus.WithField("view", s.ViewName).Warn("ddl: DROP VIEW IF EXISTS is a no-op, view does not exist")
			return nil
		}
		return analyzer.MissingErrorf("view %q does not exist", s.ViewName)
	}
	if !td.IsView {
		return analyzer.ArgErrorf("%q is a table; use DROP TABLE", s.ViewName)
	}
	return e.Catalog.DropTable(td)
}

// refreshView validates a materialized view's refresh by re-parsing and
// analyzing an equivalent `INSERT INTO <view> <viewSQL>` statement, per
// spec.md §4.3, then marks the view ready; no rows are produced. Plan generation and execution against storage are out of
// scope (spec.md §9): a successful refresh here only proves the insert is
// well-typed against the view's current schema, the same validation the
// original performs before handing off to its execution engine.
func (e *Executor) refreshView(s *compiler.RefreshViewStmt) error {
	td, exists := e.Catalog.GetMetadataForTable(s.ViewName)
	if !exists {
		return analyzer.MissingErrorf("view %q does not exist", s.ViewName)
	}
	if !td.IsView || !td.IsMaterialized {
		return analyzer.ArgErrorf("%q is not a materialized view", s.ViewName)
	}

	sql := "INSERT INTO " + s.ViewName + " " + td.ViewSQL
	toks := compiler.NewLexer(sql).Lex()
	stmt, err := compiler.NewParser(toks).Parse()
	if err != nil {
		return analyzer.InternalErrorf("refreshing %q: re-parsing its stored view SQL failed: %v", s.ViewName, err)
	}
	if _, err := analyzer.Analyze(e.Catalog, stmt); err != nil {
		return analyzer.InternalErrorf("refreshing %q: analyzing its stored view SQL failed: %v", s.ViewName, err)
	}
	td.IsReady = true
	logrus.WithField("view", s.ViewName).Info("ddl: view refreshed")
	return nil
}
