package ddl

import (
	"github.com/sirupsen/logrus"

	"github.com/heavyql/analyzer"
	"github.com/heavyql/analyzer/compiler"
)

// createUser requires a password (spec.md §4.3: "CREATE USER requires
// PASSWORD"); IS_SUPER defaults to false when the clause is absent.
func (e *Executor) createUser(s *compiler.CreateUserStmt) error {
	if err := e.requireSystemDB(); err != nil {
		return err
	}
	if s.Password == "" {
		return analyzer.PermissionErrorf("CREATE USER %q requires PASSWORD", s.UserName)
	}
	if err := e.Catalog.CreateUser(s.UserName, s.Password, s.IsSuper); err != nil {
		return err
	}
	logrus.WithField("user", s.UserName).Info("ddl: user created")
	return nil
}

// alterUser updates whichever fields are present; a nil field means
// "leave unchanged", matching spec.md §4.3's "passing absent for unchanged".
func (e *Executor) alterUser(s *compiler.AlterUserStmt) error {
	if err := e.requireSystemDB(); err != nil {
		return err
	}
	if err := e.Catalog.AlterUser(s.UserName, s.Password, s.IsSuper); err != nil {
		return err
	}
	logrus.WithField("user", s.UserName).Info("ddl: user altered")
	return nil
}

func (e *Executor) dropUser(s *compiler.DropUserStmt) error {
	if err := e.requireSystemDB(); err != nil {
		return err
	}
	if err := e.Catalog.DropUser(s.UserName); err != nil {
		return err
	}
	logrus.WithField("user", s.UserName).Info("ddl: user dropped")
	return nil
}
