package model

// ProvinceModel mirrors the 'provinces' table.
type ProvinceModel struct {
	ID   string `gorm:"type:varchar(10);primaryKey"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName explicitly sets the table name for GORM.
func (ProvinceModel) TableName() string {
	return "provinces"
}

// CityModel mirrors the 'cities' table.
type CityModel struct {
	ID         string `gorm:"type:varchar(10);primaryKey"`
	ProvinceID string `gorm:"type:varchar(10);index;not null"`
	Name       string `gorm:"type:varchar(100);not null"`
}

// TableName explicitly sets the table name for GORM.
func (CityModel) TableName() string {
	return "cities"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID   string `gorm:"type:varchar(50);primaryKey"`
	Name string `gorm:"type:varchar(100);not null"`
	Icon string `gorm:"type:varchar(50)"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// SubcategoryModel mirrors the 'subcategories' table.
type SubcategoryModel struct {
	ID         string `gorm:"type:varchar(50);primaryKey"`
	CategoryID string `gorm:"type:varchar(50);index;not null"`
	Name       string `gorm:"type:varchar(100);not null"`
}

// TableName explicitly sets the table name for GORM.
func (SubcategoryModel) TableName() string {
	return "subcategories"
}

// All returns every model, in dependency order, for migration and reset.
func All() []any {
	return []any{
		&ProvinceModel{}, &CityModel{}, &CategoryModel{}, &SubcategoryModel{},
		&MerchantModel{}, &PublicUserModel{}, &BusinessModel{}, &BannerModel{},
		&PaymentModel{}, &ConversationModel{}, &MessageModel{}, &TrackingEventModel{},
	}
}
