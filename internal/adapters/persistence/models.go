package persistence

import "time"

// SaveModel represents the saves table. World and Snapshot hold LZ4
// compressed payloads; the remaining columns are denormalised for listings.
type SaveModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null;index"`
	Version   int       `gorm:"column:version;not null"`
	Turn      int       `gorm:"column:turn;not null"`
	Outcome   string    `gorm:"column:outcome;not null"`
	Hash      string    `gorm:"column:hash;not null"`
	World     []byte    `gorm:"column:world;not null"`
	Snapshot  []byte    `gorm:"column:snapshot;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index"`
}

func (SaveModel) TableName() string {
	return "saves"
}
