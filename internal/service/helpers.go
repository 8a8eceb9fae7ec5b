package service

import (
	"strconv"
	"time"

	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/pkg/errors"
	"FormUp/utils"
)

const dateLayout = "2006-01-02"

// parsePublicID converts the external string ID into the snowflake value.
func parsePublicID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.InvalidUserID
	}
	return id, nil
}

func formatPublicID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// maskedPhone decrypts and masks a user's phone for display. Returns empty on
// any failure so a bad ciphertext never blocks a login.
func maskedPhone(u *model.User) string {
	if len(u.PhoneCipher) == 0 {
		return ""
	}
	plain, err := utils.DecryptPhone(u.PhoneCipher)
	if err != nil {
		return ""
	}
	return utils.MaskPhone(plain)
}

func userSnapshot(u *model.User, mspName string) dto.UserSnapshot {
	snap := dto.UserSnapshot{
		ID:            formatPublicID(u.PublicID),
		ServiceNumber: u.ServiceNumber,
		FullName:      u.FullName,
		Rank:          u.Rank,
		Role:          string(u.Role),
		MSPID:         u.MSPID,
		MSPName:       mspName,
		Phone:         maskedPhone(u),
		CreditBalance: u.CreditBalance,
		DateOfBirth:   formatDate(u.DateOfBirth),
	}
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.Format(time.RFC3339)
		snap.LastLoginAt = &s
	}
	return snap
}

func userItem(u *model.User, mspName string) dto.UserItem {
	return dto.UserItem{
		ID:            formatPublicID(u.PublicID),
		ServiceNumber: u.ServiceNumber,
		FullName:      u.FullName,
		Rank:          u.Rank,
		Role:          string(u.Role),
		MSPID:         u.MSPID,
		MSPName:       mspName,
		CreditBalance: u.CreditBalance,
	}
}
