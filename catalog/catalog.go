// catalog provides a concrete, in-memory implementation of the metadata
// store the analyzer and ddl packages consume. It generalizes the
// teacher's cdb_schema cache (catalog/catalog.go in the teacher repo) from
// a single fixed table shape to a full table/column/view descriptor model,
// and adds the SysCatalog sibling spec.md §6.2 calls out for users and
// databases.
package catalog

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/heavyql/analyzer/sqltype"
)

// FragType identifies how a table's rows are grouped into fragments.
type FragType int

const (
	FragInsertOrder FragType = iota
)

// StorageOption identifies where a table or materialized view's data lives.
type StorageOption int

const (
	StorageDisk StorageOption = iota
	StorageCPU
	StorageGPU
)

func (s StorageOption) String() string {
	switch s {
	case StorageDisk:
		return "DISK"
	case StorageCPU:
		return "CPU"
	case StorageGPU:
		return "GPU"
	}
	return "UNKNOWN"
}

// RefreshOption identifies when a materialized view's rows are recomputed.
type RefreshOption int

const (
	RefreshManual RefreshOption = iota
	RefreshAuto
	RefreshImmediate
)

func (r RefreshOption) String() string {
	switch r {
	case RefreshManual:
		return "MANUAL"
	case RefreshAuto:
		return "AUTO"
	case RefreshImmediate:
		return "IMMEDIATE"
	}
	return "UNKNOWN"
}

// TableDescriptor is the catalog's record of one table or view.
type TableDescriptor struct {
	TableID        int
	TableName      string
	IsView         bool
	IsMaterialized bool
	// ViewSQL is the pretty-printed SELECT backing a view. Empty for tables.
	ViewSQL       string
	CheckOption   bool
	StorageOption StorageOption
	RefreshOption RefreshOption
	FragType      FragType
	MaxFragRows   int
	FragPageSize  int
	// IsReady is false for a materialized view awaiting its first REFRESH.
	IsReady bool
}

// ColumnDescriptor is the catalog's record of one column.
type ColumnDescriptor struct {
	TableID     int
	ColumnID    int
	ColumnName  string
	ColumnType  sqltype.TypeInfo
	Compression sqltype.Encoding
	CompParam   int
}

// Catalog is the metadata contract the analyzer and ddl packages consume.
// It intentionally exposes nothing about storage layout beyond what
// spec.md §6.2 lists.
type Catalog interface {
	GetMetadataForTable(name string) (*TableDescriptor, bool)
	GetMetadataForColumn(tableID int, name string) (*ColumnDescriptor, bool)
	GetAllColumnMetadataForTable(tableID int) []*ColumnDescriptor
	CreateTable(td TableDescriptor, cols []ColumnDescriptor) error
	DropTable(td *TableDescriptor) error
}

// SystemDBName is the equivalent of the original's MAPD_SYSTEM_DB: the
// database users and other databases may only be mutated from.
var SystemDBName = "system"

// Session carries the ambient "current database"/"current user" context
// the original reads from catalog.get_currentDB()/get_currentUser(). It is
// passed explicitly alongside the catalog rather than read from global
// state, per spec.md §5 and §9 ("Aggregate counter" note's broader
// principle of no ambient mutable state).
type Session struct {
	CurrentDBName string
	CurrentUserID int
}

// IsSystemDB reports whether the session is connected to the system
// database, the precondition for user/database DDL (spec.md §4.3).
func (s Session) IsSystemDB() bool {
	return s.CurrentDBName == SystemDBName
}

// MemCatalog is a map-backed Catalog implementation. It is single-threaded
// by contract (spec.md §5: "concurrent analyses against the same catalog
// require external synchronization — not provided here") but guards its
// maps with a mutex so accidental concurrent use fails safe rather than
// racing silently.
type MemCatalog struct {
	mu         sync.Mutex
	nextTable  int
	tables     map[string]*TableDescriptor
	tablesByID map[int]*TableDescriptor
	columns    map[int][]*ColumnDescriptor
}

// NewMemCatalog returns an empty in-memory catalog.
func NewMemCatalog() *MemCatalog {
	return &MemCatalog{
		nextTable:  1,
		tables:     map[string]*TableDescriptor{},
		tablesByID: map[int]*TableDescriptor{},
		columns:    map[int][]*ColumnDescriptor{},
	}
}

func (c *MemCatalog) GetMetadataForTable(name string) (*TableDescriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	td, ok := c.tables[name]
	return td, ok
}

func (c *MemCatalog) GetMetadataForColumn(tableID int, name string) (*ColumnDescriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cd := range c.columns[tableID] {
		if cd.ColumnName == name {
			return cd, true
		}
	}
	return nil, false
}

func (c *MemCatalog) GetAllColumnMetadataForTable(tableID int) []*ColumnDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Catalog order is preserved by construction since CreateTable appends
	// columns in the order they were supplied.
	out := make([]*ColumnDescriptor, len(c.columns[tableID]))
	copy(out, c.columns[tableID])
	return out
}

// TableNames returns every table and view name currently in the catalog,
// sorted, for callers (the heavyql CLI) that need to enumerate catalog
// state rather than look up one name at a time.
func (c *MemCatalog) TableNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *MemCatalog) CreateTable(td TableDescriptor, cols []ColumnDescriptor) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	td.TableID = c.nextTable
	c.nextTable++
	stored := make([]*ColumnDescriptor, len(cols))
	for i := range cols {
		cols[i].TableID = td.TableID
		cols[i].ColumnID = i + 1
		stored[i] = &cols[i]
	}
	c.tables[td.TableName] = &td
	c.tablesByID[td.TableID] = &td
	c.columns[td.TableID] = stored
	logrus.WithFields(logrus.Fields{
		"table": td.TableName,
		"id":    td.TableID,
		"view":  td.IsView,
	}).Info("catalog: table created")
	return nil
}

func (c *MemCatalog) DropTable(td *TableDescriptor) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tables, td.TableName)
	delete(c.tablesByID, td.TableID)
	delete(c.columns, td.TableID)
	logrus.WithFields(logrus.Fields{
		"table": td.TableName,
		"id":    td.TableID,
	}).Info("catalog: table dropped")
	return nil
}
