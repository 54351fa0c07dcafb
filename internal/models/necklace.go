package models

// Necklace is a wearable sensor device, keyed by the external device id
// reported by the hardware. At most one row exists per DeviceID; the
// unique index plus conflict-ignoring creation in the repository enforce
// that even under concurrent appends.
type Necklace struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	DeviceID string    `json:"idNecklace" gorm:"column:device_id;uniqueIndex;type:varchar(100)"`
	Data     []Reading `json:"data" gorm:"foreignKey:NecklaceID;references:ID"`
}

// Reading is a single sensor sample. Rows only accumulate; the
// auto-increment Seq preserves append order across batches.
type Reading struct {
	Seq        uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	NecklaceID string  `json:"-" gorm:"index;type:varchar(36)"`
	Time       float64 `json:"time"`
	Acc        float64 `json:"acc"`
	Gyr        float64 `json:"gyr"`
	Temp       float64 `json:"temp"`
	Pulse      float64 `json:"pulse"`
}
