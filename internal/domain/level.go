package domain

import (
	"database/sql/driver"
	"fmt"
)

// VerificationLevel is the ordered trust tier derived from verified channels.
type VerificationLevel int

const (
	LevelNone VerificationLevel = iota
	LevelEmail
	LevelPhone
	LevelIDVerified
	LevelTrusted
)

func (l VerificationLevel) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelEmail:
		return "email"
	case LevelPhone:
		return "phone"
	case LevelIDVerified:
		return "id_verified"
	case LevelTrusted:
		return "trusted"
	}
	return "none"
}

func ParseLevel(s string) (VerificationLevel, error) {
	switch s {
	case "none", "":
		return LevelNone, nil
	case "email":
		return LevelEmail, nil
	case "phone":
		return LevelPhone, nil
	case "id_verified":
		return LevelIDVerified, nil
	case "trusted":
		return LevelTrusted, nil
	}
	return LevelNone, fmt.Errorf("unknown verification level: %q", s)
}

// Value реализует интерфейс driver.Valuer для сохранения в БД
func (l VerificationLevel) Value() (driver.Value, error) {
	return l.String(), nil
}

// Scan реализует интерфейс sql.Scanner для чтения из БД
func (l *VerificationLevel) Scan(value interface{}) error {
	if value == nil {
		*l = LevelNone
		return nil
	}

	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("unsupported type for VerificationLevel: %T", value)
	}

	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed

	return nil
}

// ResolveLevel maps channel verification state to a level. Phone counts only
// when email is verified too, and an ID decision counts only on top of both.
// LevelTrusted is never produced here; promotion is an external decision.
func ResolveLevel(emailVerified, phoneVerified bool, idStatus IDVerificationStatus) VerificationLevel {
	switch {
	case idStatus == IDStatusVerified && phoneVerified && emailVerified:
		return LevelIDVerified
	case phoneVerified && emailVerified:
		return LevelPhone
	case emailVerified:
		return LevelEmail
	default:
		return LevelNone
	}
}
