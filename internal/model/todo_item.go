package model

// TodoItem is the persisted todo record.
type TodoItem struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null"`
	Description string
}

func (TodoItem) TableName() string {
	return "todo_items"
}
