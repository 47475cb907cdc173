// Package models contains the gorm model definitions.
package models

// All returns every model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Administrator{},
		&ContactMessage{},
		&BlogPost{},
	}
}
