package ddl

import (
	"github.com/sirupsen/logrus"

	"github.com/heavyql/analyzer"
	"github.com/heavyql/analyzer/compiler"
)

func (e *Executor) createDatabase(s *compiler.CreateDBStmt) error {
	if err := e.requireSystemDB(); err != nil {
		return err
	}
	ownerID := e.Session.CurrentUserID
	if s.Owner != "" {
		u, ok := e.Catalog.GetMetadataForUser(s.Owner)
		if !ok {
			return analyzer.NameErrorf("owner %q does not exist", s.Owner)
		}
		ownerID = u.UserID
	}
	if err := e.Catalog.CreateDatabase(s.DBName, ownerID); err != nil {
		return err
	}
	logrus.WithField("database", s.DBName).Info("ddl: database created")
	return nil
}

func (e *Executor) dropDatabase(s *compiler.DropDBStmt) error {
	if err := e.requireSystemDB(); err != nil {
		return err
	}
	if err := e.Catalog.DropDatabase(s.DBName); err != nil {
		return err
	}
	logrus.WithField("database", s.DBName).Info("ddl: database dropped")
	return nil
}
