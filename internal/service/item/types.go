package item

import "github.com/KasumiMercury/primind-vault/internal/domain"

// Detail is an item together with its classification at the time of the request.
// Classification is nil when the item's relevant date is corrupt.
type Detail struct {
	Item           domain.Item
	Classification *domain.Classification
}
