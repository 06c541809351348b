package domain

// User is an account owner. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	UID               uint    `gorm:"column:uid;primaryKey" json:"uid"`
	Name              string  `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email             string  `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Password          string  `gorm:"column:password;type:varchar(255);not null" json:"-"`
	InvestmentProfile *string `gorm:"column:investment_profile;type:varchar(50)" json:"investment_profile"`
}

func (User) TableName() string {
	return "users"
}
