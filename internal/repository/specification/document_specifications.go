package specification

import "gorm.io/gorm"

// ByDomain scopes document queries to one knowledge domain.
type ByDomain struct {
	Domain string
}

func (s ByDomain) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("domain = ?", s.Domain)
}

// BySource filters document chunks by the source file they came from.
type BySource struct {
	SourceName string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_name = ?", s.SourceName)
}
