package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"default:user"`

	Plans []TravelPlanRecord `gorm:"foreignKey:AccountID"`
}
