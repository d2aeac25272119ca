package catalog

import "context"

// Course is a single catalog entry. Field order here is the field order of
// the serialized record.
type Course struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Instructor    string `json:"instructor"`
	Semester      string `json:"semester"`
	Schedule      string `json:"schedule"`
	Classroom     string `json:"classroom"`
	Prerequisites string `json:"prerequisites"`
	Grading       string `json:"grading"`
	Description   string `json:"description"`
}

// MissingRequired reports which of the required fields (code, name,
// instructor) are empty, in that order. Stores never call this; validation
// belongs to the add flow.
func (c Course) MissingRequired() []string {
	var missing []string
	if c.Code == "" {
		missing = append(missing, "code")
	}
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Instructor == "" {
		missing = append(missing, "instructor")
	}
	return missing
}

// Store is the catalog's persistence boundary. Catalog order is insertion
// order; duplicate codes are allowed and FindByCode returns the first match.
type Store interface {
	Ping(ctx context.Context) error
	LoadAll(ctx context.Context) ([]Course, error)
	Append(ctx context.Context, c Course) error
	FindByCode(ctx context.Context, code string) (Course, bool, error)
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
