package domain

type VerificationChannel string

const (
	ChannelEmail      VerificationChannel = "email"
	ChannelPhone      VerificationChannel = "phone"
	ChannelIDDocument VerificationChannel = "id_document"
)

func (c VerificationChannel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelPhone, ChannelIDDocument:
		return true
	}
	return false
}
