package catalog

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// UserMetadata is the catalog's record of one user, the equivalent of the
// original's Catalog_Namespace::UserMetadata.
type UserMetadata struct {
	UserID   int
	UserName string
	Password string
	IsSuper  bool
}

// DatabaseMetadata is the catalog's record of one database.
type DatabaseMetadata struct {
	DBName  string
	OwnerID int
}

// SysCatalog extends Catalog with the user/database administration spec.md
// §6.2 calls out, mirroring the original's separate Catalog_Namespace::
// SysCatalog singleton.
type SysCatalog interface {
	Catalog
	GetMetadataForUser(name string) (*UserMetadata, bool)
	CreateUser(name, password string, isSuper bool) error
	AlterUser(name string, password *string, isSuper *bool) error
	DropUser(name string) error
	GetMetadataForDatabase(name string) (*DatabaseMetadata, bool)
	CreateDatabase(name string, ownerID int) error
	DropDatabase(name string) error
}

// MemSysCatalog embeds MemCatalog and adds the user/database maps the
// original keeps in a distinct system-database-backed table.
type MemSysCatalog struct {
	*MemCatalog

	mu        sync.Mutex
	nextUser  int
	users     map[string]*UserMetadata
	databases map[string]*DatabaseMetadata
}

// NewMemSysCatalog returns an empty in-memory system catalog.
func NewMemSysCatalog() *MemSysCatalog {
	return &MemSysCatalog{
		MemCatalog: NewMemCatalog(),
		nextUser:   1,
		users:      map[string]*UserMetadata{},
		databases:  map[string]*DatabaseMetadata{},
	}
}

func (c *MemSysCatalog) GetMetadataForUser(name string) (*UserMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.users[name]
	return u, ok
}

func (c *MemSysCatalog) CreateUser(name, password string, isSuper bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.users[name]; exists {
		return ExistsErrorf("user %q already exists", name)
	}
	c.users[name] = &UserMetadata{
		UserID:   c.nextUser,
		UserName: name,
		Password: password,
		IsSuper:  isSuper,
	}
	c.nextUser++
	logrus.WithField("user", name).Info("syscatalog: user created")
	return nil
}

func (c *MemSysCatalog) AlterUser(name string, password *string, isSuper *bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.users[name]
	if !ok {
		return MissingErrorf("user %q does not exist", name)
	}
	if password != nil {
		u.Password = *password
	}
	if isSuper != nil {
		u.IsSuper = *isSuper
	}
	logrus.WithField("user", name).Info("syscatalog: user altered")
	return nil
}

func (c *MemSysCatalog) DropUser(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.users[name]; !ok {
		return MissingErrorf("user %q does not exist", name)
	}
	delete(c.users, name)
	logrus.WithField("user", name).Info("syscatalog: user dropped")
	return nil
}

func (c *MemSysCatalog) GetMetadataForDatabase(name string) (*DatabaseMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.databases[name]
	return d, ok
}

func (c *MemSysCatalog) CreateDatabase(name string, ownerID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.databases[name]; exists {
		return ExistsErrorf("database %q already exists", name)
	}
	c.databases[name] = &DatabaseMetadata{DBName: name, OwnerID: ownerID}
	logrus.WithField("database", name).Info("syscatalog: database created")
	return nil
}

func (c *MemSysCatalog) DropDatabase(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.databases[name]; !ok {
		return MissingErrorf("database %q does not exist", name)
	}
	delete(c.databases, name)
	logrus.WithField("database", name).Info("syscatalog: database dropped")
	return nil
}
