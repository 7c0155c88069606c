package entity

import "time"

// OTP purposes. A code minted for one purpose can never satisfy the other.
const (
	OtpPurposeVerifyEmail   = "verify_email"
	OtpPurposeResetPassword = "reset_password"
)

// DbOtp is a one-time code row. Rows are keyed by email string, not by a
// user foreign key, and are never deleted: consumption only flips IsUsed.
type DbOtp struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `gorm:"column:email;type:varchar(255);index:idx_otp_email_purpose;not null" json:"email"`
	OtpHash   string    `gorm:"column:otp_hash;type:varchar(255);not null" json:"-"`
	Purpose   string    `gorm:"column:purpose;type:varchar(30);index:idx_otp_email_purpose;not null" json:"purpose"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	IsUsed    bool      `gorm:"column:is_used;not null;default:false" json:"is_used"`
}

// TableName overrides default pluralised name.
func (DbOtp) TableName() string {
	return "otps"
}
