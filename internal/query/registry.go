package query

import (
	"fmt"
	"sync"

	"gorm.io/gorm/schema"
)

// Registry maps public sort names to database columns of one entity.
// It is built once at startup and never mutated.
type Registry struct {
	table   string
	columns map[string]string
}

// NewRegistry checks every column against the gorm schema of model.
func NewRegistry(model any, columns map[string]string) (*Registry, error) {
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	cols := make(map[string]string, len(columns))
	for name, column := range columns {
		field := s.LookUpField(column)
		if field == nil || field.DBName == "" {
			return nil, fmt.Errorf("%s: column %q for %q does not exist", s.Table, column, name)
		}
		cols[name] = field.DBName
	}
	return &Registry{table: s.Table, columns: cols}, nil
}

func MustRegistry(model any, columns map[string]string) *Registry {
	r, err := NewRegistry(model, columns)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Table() string {
	return r.table
}

func (r *Registry) Column(name string) (string, bool) {
	c, ok := r.columns[name]
	return c, ok
}
