package ddl

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/heavyql/analyzer"
	"github.com/heavyql/analyzer/catalog"
	"github.com/heavyql/analyzer/compiler"
	"github.com/heavyql/analyzer/config"
	"github.com/heavyql/analyzer/sqltype"
)

func (e *Executor) createTable(s *compiler.CreateTableStmt) error {
	if _, exists := e.Catalog.GetMetadataForTable(s.TableName); exists {
		if s.IfNotExists {
			logrus.WithField("table", s.TableName).Warn("ddl: CREATE TABLE IF NOT EXISTS is a no-op, table already exists")
			return nil
		}
		return analyzer.ExistsErrorf("table %q already exists", s.TableName)
	}

	cols := make([]catalog.ColumnDescriptor, len(s.ColDefs))
	for i, cd := range s.ColDefs {
		enc, param, err := encodingFromCompressDef(cd.Compress, cd.NotNull)
		if err != nil {
			return err
		}
		cols[i] = catalog.ColumnDescriptor{
			ColumnName:  cd.Name,
			ColumnType:  sqltype.FromSQLType(cd.Type, cd.NotNull),
			Compression: enc,
			CompParam:   param,
		}
	}

	storage, err := storageOptionOrDefault(s.StorageOption)
	if err != nil {
		return err
	}
	fragSize := config.DefaultFragmentSize
	if s.HasFragSize {
		if s.FragSize <= 0 {
			return analyzer.ArgErrorf("FRAGMENT_SIZE must be a positive integer, got %d", s.FragSize)
		}
		fragSize = s.FragSize
	}
	pageSize := config.DefaultPageSize
	if s.HasPageSize {
		if s.PageSize <= 0 {
			return analyzer.ArgErrorf("PAGE_SIZE must be a positive integer, got %d", s.PageSize)
		}
		pageSize = s.PageSize
	}

	td := catalog.TableDescriptor{
		TableName:     s.TableName,
		IsView:        false,
		StorageOption: storage,
		RefreshOption: catalog.RefreshManual,
		FragType:      catalog.FragInsertOrder,
		MaxFragRows:   fragSize,
		FragPageSize:  pageSize,
		IsReady:       true,
	}
	return e.Catalog.CreateTable(td, cols)
}

func (e *Executor) dropTable(s *compiler.DropTableStmt) error {
	td, exists := e.Catalog.GetMetadataForTable(s.TableName)
	if !exists {
		if s.IfExists {
			logrus.WithField("table", s.TableName).Warn("ddl: DROP TABLE IF EXISTS is a no-op, table does not exist")
			return nil
		}
		return analyzer.MissingErrorf("table %q does not exist", s.TableName)
	}
	if td.IsView {
		return analyzer.ArgErrorf("%q is a view; use DROP VIEW", s.TableName)
	}
	return e.Catalog.DropTable(td)
}

// encodingFromCompressDef validates and translates a column's optional
// `ENCODING name [(param)]` clause per spec.md §4.3's encoding table.
func encodingFromCompressDef(cd *compiler.CompressDef, notNull bool) (sqltype.Encoding, int, error) {
	if cd == nil {
		return sqltype.EncodingNone, 0, nil
	}
	switch strings.ToUpper(cd.Name) {
	case "FIXED":
		if !sqltype.ValidFixedBits(cd.Param) {
			return 0, 0, analyzer.ArgErrorf("FIXED encoding requires one of 8,16,24,32,40,48 bits, got %d", cd.Param)
		}
		return sqltype.EncodingFixed, cd.Param, nil
	case "RL":
		return sqltype.EncodingRL, 0, nil
	case "DIFF":
		return sqltype.EncodingDiff, 0, nil
	case "DICT":
		return sqltype.EncodingDict, 0, nil
	case "SPARSE":
		if notNull {
			return 0, 0, analyzer.ArgErrorf("SPARSE encoding requires a nullable column")
		}
		if !sqltype.ValidFixedBits(cd.Param) {
			return 0, 0, analyzer.ArgErrorf("SPARSE encoding requires one of 8,16,24,32,40,48 bits, got %d", cd.Param)
		}
		return sqltype.EncodingSparse, cd.Param, nil
	}
	return 0, 0, analyzer.ArgErrorf("unrecognized encoding %q", cd.Name)
}

// storageOptionOrDefault translates a WITH (STORAGE=...) literal, keeping
// MIC as a case-insensitive alias for GPU (see DESIGN.md open question 4).
// An empty string means the clause was omitted and DISK is used.
func storageOptionOrDefault(raw string) (catalog.StorageOption, error) {
	if raw == "" {
		return catalog.StorageDisk, nil
	}
	switch strings.ToUpper(raw) {
	case "GPU", "MIC":
		return catalog.StorageGPU, nil
	case "CPU":
		return catalog.StorageCPU, nil
	case "DISK":
		return catalog.StorageDisk, nil
	}
	return 0, analyzer.ArgErrorf("unrecognized STORAGE option %q", raw)
}

// refreshOptionFromString translates a WITH (REFRESH=...) literal.
func refreshOptionFromString(raw string) (catalog.RefreshOption, error) {
	if raw == "" {
		return catalog.RefreshManual, nil
	}
	switch strings.ToUpper(raw) {
	case "AUTO":
		return catalog.RefreshAuto, nil
	case "MANUAL":
		return catalog.RefreshManual, nil
	case "IMMEDIATE":
		return catalog.RefreshImmediate, nil
	}
	return 0, analyzer.ArgErrorf("unrecognized REFRESH option %q", raw)
}
