package records

// World is a game server registered during bootstrap.
// WorldName is nil when the world directory had no entry for the id.
type World struct {
	WorldID   int64   `gorm:"column:world_id;primaryKey;autoIncrement:false"`
	WorldName *string `gorm:"column:world_name"`
}

func (World) TableName() string { return "worlds" }

// Item maps an item id to its display name.
type Item struct {
	ItemID   int64  `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	ItemName string `gorm:"column:item_name"`
}

func (Item) TableName() string { return "items" }

// Sale is one admitted market transaction.
// The primary key (timestamp, item_id, price) is the dedup key: sales of the same
// item at the same price in the same second collapse into one row.
type Sale struct {
	Timestamp int64  `gorm:"column:timestamp;primaryKey;autoIncrement:false;index:idx_sales_timestamp;index:idx_sales_buyer_timestamp,priority:2"`
	WorldID   int64  `gorm:"column:world_id"`
	ItemID    int64  `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	Price     int64  `gorm:"column:price;primaryKey;autoIncrement:false"`
	Quantity  int64  `gorm:"column:quantity"`
	Buyer     string `gorm:"column:buyer;size:64;index:idx_sales_buyer_timestamp,priority:1"`
}

func (Sale) TableName() string { return "sales" }
