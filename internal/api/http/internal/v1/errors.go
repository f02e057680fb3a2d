package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	InvalidEmailCode       = 1001
	InvalidEmailMessage    = "invalid email address"
	InvalidPhoneCode       = 1002
	InvalidPhoneMessage    = "invalid phone number"
	CodeNotFoundCode       = 1003
	CodeNotFoundMessage    = "verification code not found"
	CodeExpiredCode        = 1004
	CodeExpiredMessage     = "verification code expired"
	CodeMismatchCode       = 1005
	CodeMismatchMessage    = "verification code does not match"
	CodeConsumedCode       = 1006
	CodeConsumedMessage    = "verification code already used"
	TooManyAttemptsCode    = 1007
	TooManyAttemptsMessage = "too many verification attempts"

	RecordNotFoundCode       = 2001
	RecordNotFoundMessage    = "record not found"
	InvalidTransitionCode    = 2002
	InvalidTransitionMessage = "review is already finalized"

	DispatchFailedCode    = 3001
	DispatchFailedMessage = "notification dispatch failed"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
}

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case InvalidEmailCode:
		errorStruct.ErrorCode = InvalidEmailCode
		errorStruct.ErrorMessage = InvalidEmailMessage
	case InvalidPhoneCode:
		errorStruct.ErrorCode = InvalidPhoneCode
		errorStruct.ErrorMessage = InvalidPhoneMessage
	case CodeNotFoundCode:
		errorStruct.ErrorCode = CodeNotFoundCode
		errorStruct.ErrorMessage = CodeNotFoundMessage
	case CodeExpiredCode:
		errorStruct.ErrorCode = CodeExpiredCode
		errorStruct.ErrorMessage = CodeExpiredMessage
	case CodeMismatchCode:
		errorStruct.ErrorCode = CodeMismatchCode
		errorStruct.ErrorMessage = CodeMismatchMessage
	case CodeConsumedCode:
		errorStruct.ErrorCode = CodeConsumedCode
		errorStruct.ErrorMessage = CodeConsumedMessage
	case TooManyAttemptsCode:
		errorStruct.ErrorCode = TooManyAttemptsCode
		errorStruct.ErrorMessage = TooManyAttemptsMessage
	case RecordNotFoundCode:
		errorStruct.ErrorCode = RecordNotFoundCode
		errorStruct.ErrorMessage = RecordNotFoundMessage
	case InvalidTransitionCode:
		errorStruct.ErrorCode = InvalidTransitionCode
		errorStruct.ErrorMessage = InvalidTransitionMessage
	case DispatchFailedCode:
		errorStruct.ErrorCode = DispatchFailedCode
		errorStruct.ErrorMessage = DispatchFailedMessage
	}

	return errorStruct
}
