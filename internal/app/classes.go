package app

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/restkit-backend/internal/dto"
	"github.com/yungbote/restkit-backend/internal/form"
	"github.com/yungbote/restkit-backend/internal/rest/class"
	"github.com/yungbote/restkit-backend/internal/rest/resolver"
)

// ClassTables are the resolution tables of one controller.
type ClassTables struct {
	DTOClasses map[string]string `yaml:"dto_classes"`
	FormTypes  map[string]string `yaml:"form_types"`
}

type classesFile struct {
	Resources map[string]ClassTables `yaml:"resources"`
}

// Controller names; also the keys of the classes file.
const (
	ControllerUser      = "user"
	ControllerUserAdmin = "user_admin"
	ControllerUserGroup = "user_group"
	ControllerRole      = "role"
)

// DefaultClassTables maps the non-default classes of each controller.
func DefaultClassTables() map[string]ClassTables {
	return map[string]ClassTables{
		ControllerUser: {
			FormTypes: map[string]string{
				"patch": form.ClassUserPatch,
			},
		},
		ControllerUserAdmin: {
			DTOClasses: map[string]string{
				"admin::create": dto.ClassUserAdmin,
				"admin::update": dto.ClassUserAdmin,
				"admin::patch":  dto.ClassUserAdmin,
			},
			FormTypes: map[string]string{
				"admin::create": form.ClassUserAdmin,
				"admin::update": form.ClassUserAdmin,
				"admin::patch":  form.ClassUserAdminPatch,
			},
		},
		ControllerUserGroup: {
			FormTypes: map[string]string{
				"patch": form.ClassUserGroupPatch,
			},
		},
		ControllerRole: {},
	}
}

// LoadClassTables returns the defaults overlaid with path. Entries in the
// file replace defaults key by key.
func LoadClassTables(path string) (map[string]ClassTables, error) {
	tables := DefaultClassTables()
	if path == "" {
		return tables, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classes file: %w", err)
	}
	var file classesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse classes file %s: %w", path, err)
	}
	for name, override := range file.Resources {
		t, ok := tables[name]
		if !ok {
			return nil, fmt.Errorf("classes file %s: unknown controller %q", path, name)
		}
		tables[name] = ClassTables{
			DTOClasses: merge(t.DTOClasses, override.DTOClasses),
			FormTypes:  merge(t.FormTypes, override.FormTypes),
		}
	}
	return tables, nil
}

func merge(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// NewCatalog registers every DTO and form class.
func NewCatalog() (*class.Catalog, error) {
	c := class.NewCatalog()
	if err := errors.Join(dto.Register(c), form.Register(c)); err != nil {
		return nil, err
	}
	return c, nil
}

// NewResolvers builds and validates one resolver per controller.
func NewResolvers(catalog *class.Catalog, tables map[string]ClassTables) (map[string]*resolver.Resolver, error) {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]*resolver.Resolver, len(tables))
	for _, name := range names {
		t := tables[name]
		r, err := resolver.New(catalog, t.DTOClasses, t.FormTypes)
		if err != nil {
			return nil, fmt.Errorf("controller %s: %w", name, err)
		}
		out[name] = r
	}
	return out, nil
}
