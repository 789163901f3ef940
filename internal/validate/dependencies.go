package validate

import "github.com/SocialCareData/initiatives/internal/registry"

// TableReader loads the raw registry table.
type TableReader interface {
	ReadTable(path string) (registry.Table, error)
}
